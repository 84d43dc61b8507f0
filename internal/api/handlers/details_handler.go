package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/retail-ops/internal/service"
	"github.com/gin-gonic/gin"
)

type DetailsHandler struct {
	service *service.Service
}

func NewDetailsHandler(service *service.Service) *DetailsHandler {
	return &DetailsHandler{service: service}
}

// GetSKUs returns (id, name) pairs for all SKUs.
func (h *DetailsHandler) GetSKUs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"skus": h.service.SKUList(c.Request.Context())})
}

// GetSKU returns the deep-dive read-model for one SKU.
func (h *DetailsHandler) GetSKU(c *gin.Context) {
	skuID := strings.TrimSpace(c.Param("sku_id"))
	details := h.service.SKUDetails(c.Request.Context(), skuID)
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sku not found: " + skuID})
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetSuppliers returns (id, name) pairs for all suppliers.
func (h *DetailsHandler) GetSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suppliers": h.service.SupplierList(c.Request.Context())})
}

// GetSupplier returns the deep-dive read-model for one supplier.
func (h *DetailsHandler) GetSupplier(c *gin.Context) {
	supplierID := strings.TrimSpace(c.Param("supplier_id"))
	details := h.service.SupplierDetails(c.Request.Context(), supplierID)
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found: " + supplierID})
		return
	}
	c.JSON(http.StatusOK, details)
}

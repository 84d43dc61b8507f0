package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *service.Service
}

func NewDashboardHandler(service *service.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard returns the home dashboard read-model.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.HomeDashboard(c.Request.Context()))
}

// GetActions returns the full action center bundle.
func (h *DashboardHandler) GetActions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ActionCenter(c.Request.Context()))
}

// GetStockStatus returns the capped overstock/understock feed.
func (h *DashboardHandler) GetStockStatus(c *gin.Context) {
	alerts := h.service.StockStatus(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// GetStrategy returns the quadrant chart, optionally filtered by store
// and category. Missing or blank filters mean "ALL".
func (h *DashboardHandler) GetStrategy(c *gin.Context) {
	filter := domain.StrategyFilter{
		Store:    strings.TrimSpace(c.DefaultQuery("store", domain.FilterAll)),
		Category: strings.TrimSpace(c.DefaultQuery("category", domain.FilterAll)),
	}
	if filter.Store == "" {
		filter.Store = domain.FilterAll
	}
	if filter.Category == "" {
		filter.Category = domain.FilterAll
	}
	c.JSON(http.StatusOK, h.service.Strategy(c.Request.Context(), filter))
}

// ReloadSnapshot re-reads the datasets from the configured source and
// swaps the in-memory snapshot.
func (h *DashboardHandler) ReloadSnapshot(c *gin.Context) {
	snap := h.service.Reload(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"version":   snap.Version,
		"loaded_at": snap.LoadedAt,
	})
}

// Health reports liveness plus the loaded dataset sizes.
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"snapshot": h.service.SnapshotInfo(),
	})
}

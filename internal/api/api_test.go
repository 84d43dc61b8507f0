package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andresuchdata/retail-ops/internal/cache"
	"github.com/andresuchdata/retail-ops/internal/service"
	"github.com/gin-gonic/gin"
)

type fixtureSource map[string][]byte

func (s fixtureSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	raw, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("no such fixture %s", name)
	}
	return raw, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	src := fixtureSource{
		"stores.json":    []byte(`[{"store_id":"ST001","store_name":"Downtown","store_type":"Flagship","performance_tier":"High"}]`),
		"suppliers.json": []byte(`[{"supplier_id":"SUP001","supplier_name":"Acme","return_window_days":30,"payment_terms":"NET 30"}]`),
		"skus.json":      []byte(`[{"sku_id":"SKU001","product_name":"Widget","category":"Apparel","cost_price":10,"margin":0.6,"supplier_id":"SUP001"}]`),
		"inventory.json": []byte(`[{"store_id":"ST001","sku_id":"SKU001","quantity_on_hand":100,"days_in_stock":30}]`),
	}
	today := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	svc := service.New(context.Background(), src, today, cache.Noop())
	return NewRouter(svc, nil)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router := testRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Status   string         `json:"status"`
		Snapshot map[string]any `json:"snapshot"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("expected ok status, got %s", body.Status)
	}
	if body.Snapshot["stores"] != float64(1) {
		t.Errorf("expected 1 store in snapshot info, got %v", body.Snapshot["stores"])
	}
}

func TestRouter_ReadModelEndpoints(t *testing.T) {
	router := testRouter(t)

	paths := []string{
		"/api/v1/dashboard",
		"/api/v1/actions",
		"/api/v1/actions/stock_status",
		"/api/v1/strategy",
		"/api/v1/strategy?store=ST001&category=Apparel",
		"/api/v1/skus",
		"/api/v1/suppliers",
	}
	for _, path := range paths {
		if w := doRequest(t, router, http.MethodGet, path); w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRouter_DetailLookups(t *testing.T) {
	router := testRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/skus/SKU001")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for known SKU, got %d", w.Code)
	}
	var sku struct {
		Supplier *struct {
			SupplierID string `json:"supplier_id"`
		} `json:"supplier"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sku); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if sku.Supplier == nil || sku.Supplier.SupplierID != "SUP001" {
		t.Error("SKU details should join the supplier")
	}

	if w := doRequest(t, router, http.MethodGet, "/api/v1/skus/SKU999"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown SKU, got %d", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, "/api/v1/suppliers/SUP999"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown supplier, got %d", w.Code)
	}
}

func TestRouter_SnapshotReload(t *testing.T) {
	router := testRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/snapshot/reload")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Version == "" {
		t.Error("reload response should carry the new snapshot version")
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/menuopt/menu-optimizer/internal/models"
	"github.com/menuopt/menu-optimizer/internal/repository"
	"github.com/menuopt/menu-optimizer/internal/service"
	"github.com/menuopt/menu-optimizer/pkg/logger"
)

func newMenuRouter() *chi.Mux {
	repo := repository.NewSeededMenuItemRepository()
	svc := service.NewMenuService(repo)
	log := logger.New("error")
	handler := NewMenuHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/api/restaurant", handler.ListRestaurants)
	r.Get("/api/restaurant/{restaurantId}/menu", handler.GetMenu)
	r.Get("/api/restaurant/{restaurantId}/stats", handler.GetStats)
	return r
}

func TestListRestaurants(t *testing.T) {
	r := newMenuRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var restaurants []string
	if err := json.NewDecoder(w.Body).Decode(&restaurants); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(restaurants) != 2 {
		t.Errorf("expected 2 restaurants, got %v", restaurants)
	}
}

func TestGetMenu_Success(t *testing.T) {
	r := newMenuRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant/R001/menu", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 8 {
		t.Errorf("expected 8 items, got %d", len(items))
	}
	for _, it := range items {
		if it.SellingPrice <= 0 {
			t.Errorf("item %s has no derived selling price", it.ID)
		}
	}
}

func TestGetMenu_NotFound(t *testing.T) {
	r := newMenuRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant/R999/menu", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	r := newMenuRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant/R001/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var stats models.RestaurantStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.TotalItems != 8 {
		t.Errorf("totalItems = %d, want 8", stats.TotalItems)
	}
	if len(stats.Categories) != 3 {
		t.Errorf("expected 3 categories, got %v", stats.Categories)
	}
}

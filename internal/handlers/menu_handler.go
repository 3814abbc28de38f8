package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/menuopt/menu-optimizer/internal/repository"
	"github.com/menuopt/menu-optimizer/internal/service"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListRestaurants handles GET /api/restaurant
// Returns the identifiers of all known restaurants
func (h *MenuHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	restaurants, err := h.service.ListRestaurants(ctx)
	if err != nil {
		h.logger.Error("failed to list restaurants", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, restaurants)
}

// GetMenu handles GET /api/restaurant/{restaurantId}/menu
// Returns one restaurant's menu items:
// - 200: successful operation
// - 404: Restaurant not found
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	restaurantID := chi.URLParam(r, "restaurantId")

	if restaurantID == "" {
		h.logger.Warn("restaurant ID is required")
		h.writeError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	items, err := h.service.ListMenuItems(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			h.logger.Info("restaurant not found", "restaurantId", restaurantID)
			h.writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}

		h.logger.Error("failed to list menu items", "restaurantId", restaurantID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

// GetStats handles GET /api/restaurant/{restaurantId}/stats
// Returns summary statistics for one restaurant's menu
func (h *MenuHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	restaurantID := chi.URLParam(r, "restaurantId")

	if restaurantID == "" {
		h.logger.Warn("restaurant ID is required")
		h.writeError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	stats, err := h.service.Stats(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			h.logger.Info("restaurant not found", "restaurantId", restaurantID)
			h.writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}

		h.logger.Error("failed to compute stats", "restaurantId", restaurantID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

// writeJSON writes a JSON response
func (h *MenuHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response
func (h *MenuHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/menuopt/menu-optimizer/internal/models"
	"github.com/menuopt/menu-optimizer/internal/optimizer"
	"github.com/menuopt/menu-optimizer/internal/service"
)

// OptimizeHandler handles optimization HTTP requests
type OptimizeHandler struct {
	service         *service.OptimizeService
	defaultMinItems int
	logger          *slog.Logger
}

// NewOptimizeHandler creates a new optimize handler. defaultMinItems is used
// when a request does not specify minItemsPerCategory.
func NewOptimizeHandler(service *service.OptimizeService, defaultMinItems int, logger *slog.Logger) *OptimizeHandler {
	return &OptimizeHandler{
		service:         service,
		defaultMinItems: defaultMinItems,
		logger:          logger,
	}
}

// Optimize handles POST /api/optimize
// Runs one menu selection and returns the result:
// - 200: successful operation (including an infeasible model, reported as
//   feasible=false with an explanatory message)
// - 400: malformed request (unknown restaurant, negative budget,
//   non-positive minimum per category)
// - 500: solver failure, reported distinctly from invalid requests
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.OptimizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid optimize request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RestaurantID == "" {
		h.logger.Warn("restaurant ID is required")
		writeError(w, h.logger, http.StatusBadRequest, "restaurantId is required")
		return
	}
	if req.MinItemsPerCategory == 0 {
		req.MinItemsPerCategory = h.defaultMinItems
	}

	resp, err := h.service.Optimize(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRestaurant),
			errors.Is(err, service.ErrInvalidBudget),
			errors.Is(err, service.ErrInvalidMinItems),
			errors.Is(err, optimizer.ErrInvalidBudget),
			errors.Is(err, optimizer.ErrInvalidMinPerCategory):
			h.logger.Warn("invalid optimize request", "restaurantId", req.RestaurantID, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("optimization failed", "restaurantId", req.RestaurantID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Solver failure: "+err.Error())
		}
		return
	}

	h.logger.Info("optimization completed",
		"runId", resp.RunID,
		"restaurantId", resp.RestaurantID,
		"feasible", resp.Feasible,
		"selected", resp.SelectedCount,
		"objective", resp.ObjectiveValue,
	)

	writeJSON(w, h.logger, http.StatusOK, resp)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/menuopt/menu-optimizer/internal/models"
	"github.com/menuopt/menu-optimizer/internal/optimizer"
	"github.com/menuopt/menu-optimizer/internal/repository"
)

var (
	ErrUnknownRestaurant = errors.New("unknown restaurant")
	ErrInvalidBudget     = errors.New("max budget must be a finite, non-negative number")
	ErrInvalidMinItems   = errors.New("minimum items per category must be positive")
)

// infeasibleMessage is shown to callers when no selection satisfies both the
// budget cap and every category's minimum.
const infeasibleMessage = "no feasible menu selection within the given budget and category minimums"

// MenuOptimizer is the optimization core consumed by the service.
type MenuOptimizer interface {
	Optimize(ctx context.Context, items []models.MenuItem, req models.OptimizationRequest) (*models.SelectionResult, error)
}

// OptimizeService validates optimization requests at the boundary, runs the
// optimizer and assembles an enriched response for API and CLI consumers.
type OptimizeService struct {
	repo repository.MenuItemRepository
	opt  MenuOptimizer
}

// NewOptimizeService creates a new optimize service
func NewOptimizeService(repo repository.MenuItemRepository, opt MenuOptimizer) *OptimizeService {
	if opt == nil {
		opt = optimizer.New()
	}
	return &OptimizeService{
		repo: repo,
		opt:  opt,
	}
}

// Optimize runs one menu selection for the given request. Malformed requests
// and unknown restaurants fail fast before any model is built; an infeasible
// model is a normal response with Feasible set to false and an explanatory
// message; a solver breakdown propagates as an error.
func (s *OptimizeService) Optimize(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResponse, error) {
	if math.IsNaN(req.MaxBudget) || math.IsInf(req.MaxBudget, 0) || req.MaxBudget < 0 {
		return nil, ErrInvalidBudget
	}
	if req.MinItemsPerCategory <= 0 {
		return nil, ErrInvalidMinItems
	}

	items, err := s.repo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRestaurant, req.RestaurantID)
		}
		return nil, err
	}

	result, err := s.opt.Optimize(ctx, items, req)
	if err != nil {
		return nil, err
	}

	resp := &models.OptimizationResponse{
		RunID:               uuid.New().String(),
		RestaurantID:        req.RestaurantID,
		MaxBudget:           req.MaxBudget,
		MinItemsPerCategory: req.MinItemsPerCategory,
		Feasible:            result.Feasible,
		Suboptimal:          result.Suboptimal,
		ObjectiveValue:      result.ObjectiveValue,
		SelectedItems:       []models.MenuItem{},
	}

	if !result.Feasible {
		resp.Message = infeasibleMessage
		return resp, nil
	}

	selected := make(map[string]bool, len(result.SelectedItems))
	for _, id := range result.SelectedItems {
		selected[id] = true
	}

	totalCost := decimal.Zero
	categoryCounts := make(map[string]int)
	for _, it := range items {
		if !selected[it.ID] {
			continue
		}
		resp.SelectedItems = append(resp.SelectedItems, it)
		totalCost = totalCost.Add(decimal.NewFromFloat(it.Price))
		categoryCounts[it.Category]++
	}

	resp.SelectedCount = len(resp.SelectedItems)
	resp.TotalCost = totalCost.Round(2).InexactFloat64()
	resp.CategoryCounts = categoryCounts
	return resp, nil
}

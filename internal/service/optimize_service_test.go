package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/menuopt/menu-optimizer/internal/models"
	"github.com/menuopt/menu-optimizer/internal/repository"
)

func TestOptimizeService_Optimize(t *testing.T) {
	repo := repository.NewSeededMenuItemRepository()
	svc := NewOptimizeService(repo, nil)

	resp, err := svc.Optimize(context.Background(), models.OptimizationRequest{
		RestaurantID:        "R001",
		MaxBudget:           100,
		MinItemsPerCategory: 1,
	})
	if err != nil {
		t.Fatalf("Optimize() unexpected error: %v", err)
	}

	if !resp.Feasible {
		t.Fatal("expected feasible result")
	}
	if resp.RunID == "" {
		t.Error("expected a run ID")
	}
	if resp.SelectedCount != len(resp.SelectedItems) {
		t.Errorf("selectedCount = %d, items = %d", resp.SelectedCount, len(resp.SelectedItems))
	}
	if resp.SelectedCount == 0 {
		t.Fatal("expected a non-empty selection")
	}
	if resp.TotalCost > resp.MaxBudget+1e-6 {
		t.Errorf("total cost %v exceeds budget %v", resp.TotalCost, resp.MaxBudget)
	}

	// The response objective must equal the recomputed selling price sum.
	sum := 0.0
	for _, it := range resp.SelectedItems {
		sum += it.SellingPrice
	}
	if math.Abs(sum-resp.ObjectiveValue) > 1e-6 {
		t.Errorf("objective %v does not match selling price sum %v", resp.ObjectiveValue, sum)
	}

	// Every category of the restaurant must meet the minimum.
	for _, cat := range []string{"Waffle", "Salad", "Pizza"} {
		if resp.CategoryCounts[cat] < 1 {
			t.Errorf("category %s has no selected items", cat)
		}
	}
}

func TestOptimizeService_Infeasible(t *testing.T) {
	repo := repository.NewSeededMenuItemRepository()
	svc := NewOptimizeService(repo, nil)

	resp, err := svc.Optimize(context.Background(), models.OptimizationRequest{
		RestaurantID:        "R001",
		MaxBudget:           5,
		MinItemsPerCategory: 1,
	})
	if err != nil {
		t.Fatalf("Optimize() unexpected error: %v", err)
	}

	if resp.Feasible {
		t.Error("expected infeasible result")
	}
	if resp.Message == "" {
		t.Error("expected an explanatory message for an infeasible result")
	}
	if len(resp.SelectedItems) != 0 {
		t.Errorf("expected empty selection, got %v", resp.SelectedItems)
	}
}

func TestOptimizeService_InvalidRequests(t *testing.T) {
	repo := repository.NewSeededMenuItemRepository()
	svc := NewOptimizeService(repo, nil)

	tests := []struct {
		name    string
		req     models.OptimizationRequest
		wantErr error
	}{
		{
			name:    "unknown restaurant",
			req:     models.OptimizationRequest{RestaurantID: "R999", MaxBudget: 100, MinItemsPerCategory: 1},
			wantErr: ErrUnknownRestaurant,
		},
		{
			name:    "negative budget",
			req:     models.OptimizationRequest{RestaurantID: "R001", MaxBudget: -10, MinItemsPerCategory: 1},
			wantErr: ErrInvalidBudget,
		},
		{
			name:    "NaN budget",
			req:     models.OptimizationRequest{RestaurantID: "R001", MaxBudget: math.NaN(), MinItemsPerCategory: 1},
			wantErr: ErrInvalidBudget,
		},
		{
			name:    "non-positive min per category",
			req:     models.OptimizationRequest{RestaurantID: "R001", MaxBudget: 100, MinItemsPerCategory: 0},
			wantErr: ErrInvalidMinItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Optimize(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Optimize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

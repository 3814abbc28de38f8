package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/menuopt/menu-optimizer/internal/repository"
)

func TestMenuService_Stats(t *testing.T) {
	repo := repository.NewSeededMenuItemRepository()
	svc := NewMenuService(repo)

	stats, err := svc.Stats(context.Background(), "R001")
	if err != nil {
		t.Fatalf("Stats() unexpected error: %v", err)
	}

	if stats.TotalItems != 8 {
		t.Errorf("totalItems = %d, want 8", stats.TotalItems)
	}
	if stats.Categories["Waffle"] != 3 || stats.Categories["Salad"] != 3 || stats.Categories["Pizza"] != 2 {
		t.Errorf("unexpected category distribution: %v", stats.Categories)
	}
	// (12.99+10.99+11.99+8.99+9.49+7.99+14.99+16.99) / 8 = 11.8025 -> 11.80
	if math.Abs(stats.AveragePrice-11.80) > 1e-9 {
		t.Errorf("averagePrice = %v, want 11.80", stats.AveragePrice)
	}
}

func TestMenuService_StatsUnknownRestaurant(t *testing.T) {
	repo := repository.NewSeededMenuItemRepository()
	svc := NewMenuService(repo)

	_, err := svc.Stats(context.Background(), "R999")
	if !errors.Is(err, repository.ErrRestaurantNotFound) {
		t.Errorf("Stats() error = %v, want ErrRestaurantNotFound", err)
	}
}

func TestMenuService_ListMenuItems(t *testing.T) {
	repo := repository.NewSeededMenuItemRepository()
	svc := NewMenuService(repo)

	items, err := svc.ListMenuItems(context.Background(), "R002")
	if err != nil {
		t.Fatalf("ListMenuItems() unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("expected 4 items for R002, got %d", len(items))
	}
}

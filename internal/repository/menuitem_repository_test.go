package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/menuopt/menu-optimizer/internal/models"
)

func TestInMemoryMenuItemRepository_GetByRestaurant(t *testing.T) {
	repo := NewSeededMenuItemRepository()

	items, err := repo.GetByRestaurant(context.Background(), "R001")
	if err != nil {
		t.Fatalf("GetByRestaurant() unexpected error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected items for R001")
	}
	for _, it := range items {
		if it.RestaurantID != "R001" {
			t.Errorf("item %s belongs to %s, want R001", it.ID, it.RestaurantID)
		}
		want := models.DeriveSellingPrice(it.Price, it.Profitability)
		if it.SellingPrice != want {
			t.Errorf("item %s selling price = %v, want derived %v", it.ID, it.SellingPrice, want)
		}
	}
}

func TestInMemoryMenuItemRepository_UnknownRestaurant(t *testing.T) {
	repo := NewSeededMenuItemRepository()

	_, err := repo.GetByRestaurant(context.Background(), "R999")
	if !errors.Is(err, ErrRestaurantNotFound) {
		t.Errorf("GetByRestaurant() error = %v, want ErrRestaurantNotFound", err)
	}
}

func TestInMemoryMenuItemRepository_ListRestaurants(t *testing.T) {
	repo := NewSeededMenuItemRepository()

	ids, err := repo.ListRestaurants(context.Background())
	if err != nil {
		t.Fatalf("ListRestaurants() unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "R001" || ids[1] != "R002" {
		t.Errorf("ListRestaurants() = %v, want [R001 R002]", ids)
	}
}

func TestInMemoryMenuItemRepository_GetAll(t *testing.T) {
	items := []models.MenuItem{
		{ID: "1", RestaurantID: "A"},
		{ID: "2", RestaurantID: "B"},
	}
	repo := NewInMemoryMenuItemRepository(items)

	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAll() returned %d items, want 2", len(all))
	}

	// Mutating the returned slice must not affect the repository.
	all[0].ID = "mutated"
	again, _ := repo.GetAll(context.Background())
	if again[0].ID != "1" {
		t.Error("GetAll() exposes internal storage")
	}
}

package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/menuopt/menu-optimizer/internal/models"
	"github.com/menuopt/menu-optimizer/internal/repository"
)

// MenuService handles business logic for menu data
type MenuService struct {
	repo repository.MenuItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuItemRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// ListRestaurants returns all known restaurant identifiers.
func (s *MenuService) ListRestaurants(ctx context.Context) ([]string, error) {
	return s.repo.ListRestaurants(ctx)
}

// ListMenuItems returns one restaurant's menu items.
func (s *MenuService) ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	return s.repo.GetByRestaurant(ctx, restaurantID)
}

// Stats summarizes a restaurant's menu: item count, average price and the
// per-category item distribution.
func (s *MenuService) Stats(ctx context.Context, restaurantID string) (*models.RestaurantStats, error) {
	items, err := s.repo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	stats := &models.RestaurantStats{
		RestaurantID: restaurantID,
		TotalItems:   len(items),
		Categories:   make(map[string]int),
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Price))
		stats.Categories[it.Category]++
	}
	if len(items) > 0 {
		avg := total.Div(decimal.NewFromInt(int64(len(items))))
		stats.AveragePrice = avg.Round(2).InexactFloat64()
	}

	return stats, nil
}

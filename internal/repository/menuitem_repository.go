package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/menuopt/menu-optimizer/internal/models"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// MenuItemRepository defines the interface for menu item data access. Items
// returned by it are already deduplicated and carry derived selling prices.
type MenuItemRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	ListRestaurants(ctx context.Context) ([]string, error)
}

// InMemoryMenuItemRepository implements MenuItemRepository with in-memory storage
type InMemoryMenuItemRepository struct {
	items        []models.MenuItem
	byRestaurant map[string][]models.MenuItem
}

// NewInMemoryMenuItemRepository creates an in-memory repository over the
// given items, indexing them by restaurant.
func NewInMemoryMenuItemRepository(items []models.MenuItem) *InMemoryMenuItemRepository {
	byRestaurant := make(map[string][]models.MenuItem)
	for _, it := range items {
		byRestaurant[it.RestaurantID] = append(byRestaurant[it.RestaurantID], it)
	}
	return &InMemoryMenuItemRepository{
		items:        items,
		byRestaurant: byRestaurant,
	}
}

// NewSeededMenuItemRepository creates an in-memory repository with sample
// menu data for two restaurants.
func NewSeededMenuItemRepository() *InMemoryMenuItemRepository {
	return NewInMemoryMenuItemRepository(seedMenuItems())
}

func seedMenuItems() []models.MenuItem {
	items := []models.MenuItem{
		{ID: "1", RestaurantID: "R001", Name: "Chicken Waffle", Category: "Waffle", Price: 12.99, Profitability: models.ProfitabilityHigh},
		{ID: "2", RestaurantID: "R001", Name: "Belgian Waffle", Category: "Waffle", Price: 10.99, Profitability: models.ProfitabilityMedium},
		{ID: "3", RestaurantID: "R001", Name: "Chocolate Waffle", Category: "Waffle", Price: 11.99, Profitability: models.ProfitabilityLow},
		{ID: "4", RestaurantID: "R001", Name: "Caesar Salad", Category: "Salad", Price: 8.99, Profitability: models.ProfitabilityMedium},
		{ID: "5", RestaurantID: "R001", Name: "Greek Salad", Category: "Salad", Price: 9.49, Profitability: models.ProfitabilityHigh},
		{ID: "6", RestaurantID: "R001", Name: "Garden Salad", Category: "Salad", Price: 7.99, Profitability: models.ProfitabilityLow},
		{ID: "7", RestaurantID: "R001", Name: "Margherita Pizza", Category: "Pizza", Price: 14.99, Profitability: models.ProfitabilityMedium},
		{ID: "8", RestaurantID: "R001", Name: "Pepperoni Pizza", Category: "Pizza", Price: 16.99, Profitability: models.ProfitabilityHigh},
		{ID: "1", RestaurantID: "R002", Name: "Classic Burger", Category: "Burger", Price: 13.99, Profitability: models.ProfitabilityHigh},
		{ID: "2", RestaurantID: "R002", Name: "Veggie Burger", Category: "Burger", Price: 11.49, Profitability: models.ProfitabilityLow},
		{ID: "3", RestaurantID: "R002", Name: "Fries", Category: "Side", Price: 4.99, Profitability: models.ProfitabilityMedium},
		{ID: "4", RestaurantID: "R002", Name: "Onion Rings", Category: "Side", Price: 5.49, Profitability: models.ProfitabilityHigh},
	}
	for i := range items {
		items[i].SellingPrice = models.DeriveSellingPrice(items[i].Price, items[i].Profitability)
	}
	return items
}

// GetAll returns all menu items across restaurants.
func (r *InMemoryMenuItemRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

// GetByRestaurant returns one restaurant's items, or ErrRestaurantNotFound
// if the identifier matches nothing.
func (r *InMemoryMenuItemRepository) GetByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	items, exists := r.byRestaurant[restaurantID]
	if !exists {
		return nil, ErrRestaurantNotFound
	}
	out := make([]models.MenuItem, len(items))
	copy(out, items)
	return out, nil
}

// ListRestaurants returns the known restaurant identifiers, sorted.
func (r *InMemoryMenuItemRepository) ListRestaurants(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.byRestaurant))
	for id := range r.byRestaurant {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/shopspring/decimal"

	"github.com/menuopt/menu-optimizer/internal/models"
)

// itemsHeader is the required column layout of a menu items CSV file.
var itemsHeader = []string{"restaurant_id", "item_id", "name", "category", "price", "profitability"}

// Loader reads menu item data from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadMenuItems loads menu items from a CSV file. Rows are deduplicated by
// (restaurant_id, item_id) keeping the first occurrence, and each item's
// selling price is derived from its price and profitability tier.
func (l *Loader) LoadMenuItems(filename string) ([]models.MenuItem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open items file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read items CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("items CSV must have header and at least one data row")
	}

	if !headerMatches(records[0], itemsHeader) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", itemsHeader, records[0])
	}

	// Bloom filter in front of the exact set: the filter rules out most
	// non-duplicates cheaply, the map confirms the rest.
	filter := bloom.NewWithEstimates(uint(len(records)), 0.01)
	seen := make(map[string]struct{})

	var items []models.MenuItem
	for i, record := range records[1:] {
		if len(record) != len(itemsHeader) {
			return nil, fmt.Errorf("items CSV row %d: expected %d columns, got %d", i+2, len(itemsHeader), len(record))
		}

		item, err := parseMenuItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}

		key := item.RestaurantID + "\x00" + item.ID
		if filter.TestAndAdd([]byte(key)) {
			if _, dup := seen[key]; dup {
				continue
			}
		}
		seen[key] = struct{}{}

		items = append(items, item)
	}

	return items, nil
}

func parseMenuItem(record []string) (models.MenuItem, error) {
	restaurantID := strings.TrimSpace(record[0])
	if restaurantID == "" {
		return models.MenuItem{}, fmt.Errorf("restaurant_id is required")
	}

	itemID := strings.TrimSpace(record[1])
	if itemID == "" {
		return models.MenuItem{}, fmt.Errorf("item_id is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("invalid price %q: %w", record[4], err)
	}
	if price.IsNegative() {
		return models.MenuItem{}, fmt.Errorf("price must be non-negative, got %s", price)
	}

	tier, err := models.ParseProfitability(strings.TrimSpace(record[5]))
	if err != nil {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{
		ID:            itemID,
		RestaurantID:  restaurantID,
		Name:          strings.TrimSpace(record[2]),
		Category:      strings.TrimSpace(record[3]),
		Price:         price.InexactFloat64(),
		Profitability: tier,
	}
	item.SellingPrice = models.DeriveSellingPrice(item.Price, item.Profitability)
	return item, nil
}

func headerMatches(got, expected []string) bool {
	if len(got) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(got[i])) != col {
			return false
		}
	}
	return true
}

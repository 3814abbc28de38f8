package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Profitability classifies how profitable a menu item is expected to be.
// The tier determines the multiplier applied to the base price when deriving
// the selling price.
type Profitability string

const (
	ProfitabilityLow    Profitability = "Low"
	ProfitabilityMedium Profitability = "Medium"
	ProfitabilityHigh   Profitability = "High"
)

// tier multipliers are fixed: Low=2, Medium=3, High=4
var multipliers = map[Profitability]int64{
	ProfitabilityLow:    2,
	ProfitabilityMedium: 3,
	ProfitabilityHigh:   4,
}

// ParseProfitability converts a string label into a Profitability tier.
func ParseProfitability(s string) (Profitability, error) {
	p := Profitability(s)
	if _, ok := multipliers[p]; !ok {
		return "", fmt.Errorf("unknown profitability tier %q", s)
	}
	return p, nil
}

// Multiplier returns the tier multiplier, or 0 for an unknown tier.
func (p Profitability) Multiplier() int64 {
	return multipliers[p]
}

// Valid reports whether p is one of the known tiers.
func (p Profitability) Valid() bool {
	_, ok := multipliers[p]
	return ok
}

// DeriveSellingPrice computes the selling price of an item as
// price * tier multiplier. The selling price is always derived, never
// supplied directly.
func DeriveSellingPrice(price float64, p Profitability) float64 {
	sell := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(p.Multiplier()))
	return sell.InexactFloat64()
}

// MenuItem represents a single priced, categorized item on a restaurant's menu.
// Items are read-only during an optimization run.
type MenuItem struct {
	ID            string        `json:"id"`
	RestaurantID  string        `json:"restaurantId"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	Price         float64       `json:"price"`
	Profitability Profitability `json:"profitability"`
	SellingPrice  float64       `json:"sellingPrice"`
}

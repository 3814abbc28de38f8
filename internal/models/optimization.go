package models

// OptimizationRequest describes one menu selection run: which restaurant's
// items to consider, the spending cap, and the minimum number of selected
// items required per menu category.
type OptimizationRequest struct {
	RestaurantID        string  `json:"restaurantId"`
	MaxBudget           float64 `json:"maxBudget"`
	MinItemsPerCategory int     `json:"minItemsPerCategory"`
}

// SelectionResult is the outcome of a single optimization run.
// An infeasible run is a normal outcome, not an error: Feasible is false,
// SelectedItems is empty and ObjectiveValue is zero.
type SelectionResult struct {
	SelectedItems  []string `json:"selectedItems"`
	ObjectiveValue float64  `json:"objectiveValue"`
	Feasible       bool     `json:"feasible"`
	// Suboptimal is set when the solve was stopped by a time limit and the
	// reported selection is the best incumbent rather than a proven optimum.
	Suboptimal bool `json:"suboptimal,omitempty"`
}

// OptimizationResponse is the enriched result returned to API and CLI
// consumers: the core result plus the resolved items and summary figures.
type OptimizationResponse struct {
	RunID               string         `json:"runId"`
	RestaurantID        string         `json:"restaurantId"`
	MaxBudget           float64        `json:"maxBudget"`
	MinItemsPerCategory int            `json:"minItemsPerCategory"`
	Feasible            bool           `json:"feasible"`
	Suboptimal          bool           `json:"suboptimal,omitempty"`
	ObjectiveValue      float64        `json:"objectiveValue"`
	SelectedItems       []MenuItem     `json:"selectedItems"`
	SelectedCount       int            `json:"selectedCount"`
	TotalCost           float64        `json:"totalCost"`
	CategoryCounts      map[string]int `json:"categoryCounts,omitempty"`
	Message             string         `json:"message,omitempty"`
}

// RestaurantStats summarizes one restaurant's menu for dashboard consumers.
type RestaurantStats struct {
	RestaurantID string         `json:"restaurantId"`
	TotalItems   int            `json:"totalItems"`
	AveragePrice float64        `json:"averagePrice"`
	Categories   map[string]int `json:"categories"`
}

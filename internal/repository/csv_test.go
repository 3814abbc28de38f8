package repository

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeItemsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write items file: %v", err)
	}
	return path
}

func TestLoadMenuItems(t *testing.T) {
	path := writeItemsFile(t, `restaurant_id,item_id,name,category,price,profitability
R001,1,Chicken Waffle,Waffle,12.99,High
R001,2,Caesar Salad,Salad,8.99,Medium
R002,1,Classic Burger,Burger,13.99,Low
`)

	items, err := NewLoader().LoadMenuItems(path)
	if err != nil {
		t.Fatalf("LoadMenuItems() unexpected error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	first := items[0]
	if first.ID != "1" || first.RestaurantID != "R001" {
		t.Errorf("unexpected first item: %+v", first)
	}
	if first.Name != "Chicken Waffle" || first.Category != "Waffle" {
		t.Errorf("unexpected first item fields: %+v", first)
	}
	if math.Abs(first.Price-12.99) > 1e-9 {
		t.Errorf("price = %v, want 12.99", first.Price)
	}
	// Selling price is derived as price * tier multiplier (High = 4)
	if math.Abs(first.SellingPrice-51.96) > 1e-9 {
		t.Errorf("selling price = %v, want 51.96", first.SellingPrice)
	}
}

func TestLoadMenuItems_DeduplicatesKeepingFirst(t *testing.T) {
	path := writeItemsFile(t, `restaurant_id,item_id,name,category,price,profitability
R001,1,Chicken Waffle,Waffle,12.99,High
R001,1,Chicken Waffle Again,Waffle,1.00,Low
R002,1,Classic Burger,Burger,13.99,Low
`)

	items, err := NewLoader().LoadMenuItems(path)
	if err != nil {
		t.Fatalf("LoadMenuItems() unexpected error: %v", err)
	}

	// The same item_id under another restaurant is not a duplicate.
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Name != "Chicken Waffle" {
		t.Errorf("dedup kept %q, want the first occurrence", items[0].Name)
	}
}

func TestLoadMenuItems_BlankCategoryAllowed(t *testing.T) {
	path := writeItemsFile(t, `restaurant_id,item_id,name,category,price,profitability
R001,1,Mystery Special,,9.99,Medium
`)

	items, err := NewLoader().LoadMenuItems(path)
	if err != nil {
		t.Fatalf("LoadMenuItems() unexpected error: %v", err)
	}
	if items[0].Category != "" {
		t.Errorf("category = %q, want blank preserved", items[0].Category)
	}
}

func TestLoadMenuItems_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "header mismatch",
			content: "id,name,price\n1,Waffle,9.99\n",
			wantErr: "header mismatch",
		},
		{
			name:    "missing data rows",
			content: "restaurant_id,item_id,name,category,price,profitability\n",
			wantErr: "at least one data row",
		},
		{
			name: "invalid price",
			content: `restaurant_id,item_id,name,category,price,profitability
R001,1,Waffle,Waffle,notaprice,High
`,
			wantErr: "row 2",
		},
		{
			name: "negative price",
			content: `restaurant_id,item_id,name,category,price,profitability
R001,1,Waffle,Waffle,-5,High
`,
			wantErr: "non-negative",
		},
		{
			name: "unknown profitability tier",
			content: `restaurant_id,item_id,name,category,price,profitability
R001,1,Waffle,Waffle,9.99,Extreme
`,
			wantErr: "profitability",
		},
		{
			name: "missing restaurant id",
			content: `restaurant_id,item_id,name,category,price,profitability
,1,Waffle,Waffle,9.99,High
`,
			wantErr: "restaurant_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeItemsFile(t, tt.content)
			_, err := NewLoader().LoadMenuItems(path)
			if err == nil {
				t.Fatal("LoadMenuItems() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMenuItems_FileNotFound(t *testing.T) {
	_, err := NewLoader().LoadMenuItems(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("LoadMenuItems() expected error for a missing file")
	}
}

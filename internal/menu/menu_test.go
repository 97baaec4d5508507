package menu

import (
	"testing"

	"chriscakes/internal/models"
)

func ptr(f float64) *float64 { return &f }

// TestFormatPrice pins the zero-price boundary: zero is treated like a
// missing price, matching the "price && price > 0" display rule.
func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		want  string
	}{
		{"nil", nil, CallForPricing},
		{"zero", ptr(0), CallForPricing},
		{"negative", ptr(-3), CallForPricing},
		{"whole", ptr(12), "$12.00"},
		{"one decimal", ptr(12.5), "$12.50"},
		{"rounds to cents", ptr(9.999), "$10.00"},
		{"thousands", ptr(1250), "$1,250.00"},
		{"small", ptr(0.5), "$0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price); got != tt.want {
				t.Errorf("FormatPrice = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroupByCategory(t *testing.T) {
	categories := []models.MenuCategory{
		{ID: "breakfast", Title: "Breakfast", Slug: models.Slug{Current: "breakfast"}, Order: 1},
		{ID: "empty", Title: "Empty", Slug: models.Slug{Current: "empty"}, Order: 2},
		{ID: "lunch", Title: "Lunch", Slug: models.Slug{Current: "lunch"}, Order: 3},
	}
	items := []models.MenuItem{
		{Name: "Burger", Category: &models.CategoryRef{ID: "lunch", Title: "Lunch"}},
		{Name: "Pancakes", Category: &models.CategoryRef{ID: "breakfast"}},
		{Name: "Mystery"},
		{Name: "Eggs", Category: &models.CategoryRef{Slug: models.Slug{Current: "breakfast"}}},
		{Name: "Retired", Category: &models.CategoryRef{ID: "gone", Title: "Gone"}},
	}

	groups := GroupByCategory(items, categories)

	wantTitles := []string{"Breakfast", "Lunch", OtherItems}
	if len(groups) != len(wantTitles) {
		t.Fatalf("got %d groups, want %d: %+v", len(groups), len(wantTitles), groups)
	}
	for i, title := range wantTitles {
		if groups[i].Title != title {
			t.Errorf("group %d: got %q, want %q", i, groups[i].Title, title)
		}
	}

	if n := len(groups[0].Items); n != 2 || groups[0].Items[0].Name != "Pancakes" || groups[0].Items[1].Name != "Eggs" {
		t.Errorf("breakfast items: %+v", groups[0].Items)
	}
	if n := len(groups[2].Items); n != 2 {
		t.Errorf("other items: got %d, want 2", n)
	}
}

func TestGroupByCategoryEmpty(t *testing.T) {
	if groups := GroupByCategory(nil, nil); len(groups) != 0 {
		t.Errorf("got %d groups", len(groups))
	}
}

func TestFeatured(t *testing.T) {
	items := make([]models.MenuItem, 8)
	if got := len(Featured(items, 6)); got != 6 {
		t.Errorf("limit 6: got %d", got)
	}
	if got := len(Featured(items[:3], 6)); got != 3 {
		t.Errorf("fewer than limit: got %d", got)
	}
	if got := len(Featured(items, 0)); got != 8 {
		t.Errorf("no limit: got %d", got)
	}
}

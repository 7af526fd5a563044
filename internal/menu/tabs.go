package menu

import "strings"

// Ordering tabs on the quick-order screen.
const (
	TabAll      = "All"
	TabStarters = "Starters"
	TabMains    = "Mains"
	TabDessert  = "Dessert"
	TabDrinks   = "Drinks"
)

// Tabs lists the ordering tabs in display order.
var Tabs = []string{TabAll, TabStarters, TabMains, TabDessert, TabDrinks}

// OrderingTab maps a free-form category to a coarse ordering tab. Items
// without a category only appear under All; unrecognised categories are
// treated as mains.
func OrderingTab(category string) string {
	if category == "" {
		return TabAll
	}
	lc := strings.ToLower(category)
	switch {
	case strings.Contains(lc, "start") || strings.Contains(lc, "app"):
		return TabStarters
	case strings.Contains(lc, "main") || strings.Contains(lc, "entr"):
		return TabMains
	case strings.Contains(lc, "des") || strings.Contains(lc, "sweet"):
		return TabDessert
	case strings.Contains(lc, "drink"), strings.Contains(lc, "bev"), strings.Contains(lc, "wine"), strings.Contains(lc, "cocktail"):
		return TabDrinks
	}
	return TabMains
}

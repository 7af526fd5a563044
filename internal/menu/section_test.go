package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/club-dining/internal/model"
)

func TestSectionKeyExplicitCategoryWins(t *testing.T) {
	item := model.MenuItem{Name: "Grilled Chicken Sandwich", Category: "  Desserts "}
	assert.Equal(t, Desserts, SectionKey(item))

	item = model.MenuItem{Name: "Add Avocado", Section: "SIDES"}
	assert.Equal(t, Sides, SectionKey(item))
}

func TestSectionKeyUnknownCategoryFallsBackToName(t *testing.T) {
	item := model.MenuItem{Name: "Lemon Tart", Category: "house specials"}
	assert.Equal(t, Desserts, SectionKey(item))
}

func TestSectionKeyByName(t *testing.T) {
	cases := map[string]string{
		"Add Avocado":              Addons,
		"Extra Dressing":           Addons,
		"Kids Chicken Fingers":     Kids,
		"Chocolate Brownie Sundae": Desserts,
		"Iced Tea":                 Drinks,
		"Club Soda":                Drinks,
		"New England Clam Chowder": Soups,
		"Chicken Caesar Salad":     Salads,
		"Buffalo Wings":            Starters,
		"Side of Fries":            Sides,
		"Onion Rings":              Sides,
		"Grilled Chicken Sandwich": Mains,
		"Ribeye Steak":             Mains,
		"Mystery Plate":            Other,
		"":                         Other,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, SectionKey(model.MenuItem{Name: name}))
		})
	}
}

func TestSteakIsNotTea(t *testing.T) {
	assert.Equal(t, Mains, SectionKey(model.MenuItem{Name: "Steak Frites"}))
}

func TestGroupBySectionKeepsDisplayOrder(t *testing.T) {
	items := []model.MenuItem{
		{ID: 1, Name: "Mystery Plate"},
		{ID: 2, Name: "Ribeye Steak"},
		{ID: 3, Name: "Tomato Soup"},
		{ID: 4, Name: "Salmon Fillet"},
	}
	groups := GroupBySection(items)
	require.Len(t, groups, 3)
	assert.Equal(t, Soups, groups[0].Key)
	assert.Equal(t, Mains, groups[1].Key)
	assert.Equal(t, []int64{2, 4}, []int64{groups[1].Items[0].ID, groups[1].Items[1].ID})
	assert.Equal(t, Other, groups[2].Key)
	assert.Equal(t, "Other", groups[2].Title)
}

func TestPublicFiltersInactiveAndSorts(t *testing.T) {
	items := []model.MenuItem{
		{ID: 1, Name: "zucchini fritters", IsActive: true},
		{ID: 2, Name: "Apple Pie", IsActive: true},
		{ID: 3, Name: "Old Special", IsActive: false},
	}
	out := Public(items)
	require.Len(t, out, 2)
	assert.Equal(t, "Apple Pie", out[0].Name)
	assert.Equal(t, "zucchini fritters", out[1].Name)
}

func TestOrderingTab(t *testing.T) {
	assert.Equal(t, TabAll, OrderingTab(""))
	assert.Equal(t, TabStarters, OrderingTab("Appetizers"))
	assert.Equal(t, TabMains, OrderingTab("Entrees"))
	assert.Equal(t, TabDessert, OrderingTab("Sweets"))
	assert.Equal(t, TabDrinks, OrderingTab("Beverages"))
	assert.Equal(t, TabMains, OrderingTab("Sandwiches"))
}

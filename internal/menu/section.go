// Package menu groups menu items into display sections.
package menu

import (
	"regexp"
	"sort"
	"strings"

	"github.com/iliyamo/club-dining/internal/model"
)

// Section keys in display order.
const (
	Starters = "starters"
	Soups    = "soups"
	Salads   = "salads"
	Mains    = "mains"
	Sides    = "sides"
	Kids     = "kids"
	Desserts = "desserts"
	Drinks   = "drinks"
	Addons   = "addons"
	Other    = "other"
)

// Sections lists every section key in display order.
var Sections = []string{Starters, Soups, Salads, Mains, Sides, Kids, Desserts, Drinks, Addons, Other}

var sectionTitles = map[string]string{
	Starters: "Starters",
	Soups:    "Soups",
	Salads:   "Salads",
	Mains:    "Mains",
	Sides:    "Sides",
	Kids:     "Kids",
	Desserts: "Desserts",
	Drinks:   "Drinks",
	Addons:   "Add-ons",
	Other:    "Other",
}

// Title returns the heading for a section key.
func Title(section string) string {
	if t, ok := sectionTitles[section]; ok {
		return t
	}
	return sectionTitles[Other]
}

type rule struct {
	match   func(name string) bool
	section string
}

func prefix(ps ...string) func(string) bool {
	return func(name string) bool {
		for _, p := range ps {
			if strings.HasPrefix(name, p) {
				return true
			}
		}
		return false
	}
}

func words(ws ...string) func(string) bool {
	re := regexp.MustCompile(`\b(` + strings.Join(ws, "|") + `)\b`)
	return re.MatchString
}

// rules are tried in order against the lower-cased item name; first match wins.
var rules = []rule{
	{prefix("add ", "extra "), Addons},
	{words("add-on", "addon", "add on"), Addons},
	{words("kids", "kid's", "kid", "children's", "child"), Kids},
	{words("dessert", "cake", "cheesecake", "pie", "brownie", "sundae", "ice cream", "gelato", "sorbet", "cookies?", "tart", "cobbler", "pudding", "crème brûlée", "creme brulee", "mousse", "tiramisu"), Desserts},
	{words("coffee", "espresso", "latte", "cappuccino", "tea", "iced tea", "juice", "soda", "lemonade", "wine", "beer", "cocktail", "martini", "spritz", "water", "sparkling", "milkshake"), Drinks},
	{words("soup", "chowder", "bisque", "gumbo", "chili", "consomme", "gazpacho"), Soups},
	{words("salad", "caesar", "cobb"), Salads},
	{words("appetizer", "starter", "wings", "nachos", "dip", "calamari", "bruschetta", "crostini", "deviled eggs", "oysters", "shrimp cocktail", "sliders", "flatbread", "charcuterie"), Starters},
	{prefix("side ", "side of "), Sides},
	{words("fries", "chips", "coleslaw", "slaw", "mashed potatoes", "rice", "onion rings", "steamed vegetables", "mac and cheese", "baked potato"), Sides},
	{words("sandwich", "burger", "wrap", "club", "melt", "panini", "steak", "chicken", "salmon", "cod", "halibut", "trout", "pork", "lamb", "ribs", "pasta", "risotto", "entree", "entrée", "tacos?", "quiche"), Mains},
}

var known = func() map[string]bool {
	m := make(map[string]bool, len(Sections))
	for _, s := range Sections {
		m[s] = true
	}
	return m
}()

// SectionKey assigns an item to exactly one section. An explicit category or
// section naming a known key wins; otherwise the name is matched against the
// rules and anything unmatched lands in Other.
func SectionKey(item model.MenuItem) string {
	for _, hint := range []string{item.Category, item.Section} {
		if k := strings.ToLower(strings.TrimSpace(hint)); known[k] {
			return k
		}
	}
	name := strings.ToLower(strings.TrimSpace(item.Name))
	for _, r := range rules {
		if r.match(name) {
			return r.section
		}
	}
	return Other
}

// Group is one rendered section.
type Group struct {
	Key   string           `json:"key"`
	Title string           `json:"title"`
	Items []model.MenuItem `json:"items"`
}

// GroupBySection buckets items by section in display order, keeping input
// order within a section and omitting empty sections.
func GroupBySection(items []model.MenuItem) []Group {
	buckets := make(map[string][]model.MenuItem, len(Sections))
	for _, it := range items {
		k := SectionKey(it)
		buckets[k] = append(buckets[k], it)
	}
	out := make([]Group, 0, len(buckets))
	for _, k := range Sections {
		if len(buckets[k]) == 0 {
			continue
		}
		out = append(out, Group{Key: k, Title: Title(k), Items: buckets[k]})
	}
	return out
}

// Public returns the active items sorted by name, as shown on the public menu.
func Public(items []model.MenuItem) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		if it.IsActive {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

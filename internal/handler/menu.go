package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/format"
	"github.com/iliyamo/club-dining/internal/menu"
	"github.com/iliyamo/club-dining/internal/model"
)

// MenuHandler serves the public menu. Responses are cached by the Redis
// cache middleware.
type MenuHandler struct {
	API *apiclient.Client
}

func NewMenuHandler(api *apiclient.Client) *MenuHandler {
	if api == nil {
		panic("nil api client passed to NewMenuHandler")
	}
	return &MenuHandler{API: api}
}

type menuItemView struct {
	model.MenuItem
	Price      string   `json:"price"`
	Labels     []string `json:"dietary_labels,omitempty"`
	Tab        string   `json:"tab"`
	SectionKey string   `json:"section_key"`
}

type menuSection struct {
	Key   string         `json:"key"`
	Title string         `json:"title"`
	Items []menuItemView `json:"items"`
}

// List handles GET /v1/menu: active items grouped into sections, in section
// order.
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.API.MenuItems(c.Request().Context())
	if err != nil {
		return fail(c, nil, err, "Failed to load menu")
	}
	groups := menu.GroupBySection(menu.Public(items))
	out := make([]menuSection, 0, len(groups))
	for _, g := range groups {
		sec := menuSection{Key: g.Key, Title: g.Title, Items: make([]menuItemView, 0, len(g.Items))}
		for _, it := range g.Items {
			sec.Items = append(sec.Items, viewMenuItem(it))
		}
		out = append(out, sec)
	}
	return c.JSON(http.StatusOK, echo.Map{"sections": out, "tabs": menu.Tabs})
}

func viewMenuItem(it model.MenuItem) menuItemView {
	v := menuItemView{
		MenuItem:   it,
		Price:      format.Price(it.PriceCents),
		Tab:        menu.OrderingTab(it.Category),
		SectionKey: menu.SectionKey(it),
	}
	for _, d := range it.DietaryRestrictions {
		v.Labels = append(v.Labels, model.DietaryLabel(d))
	}
	return v
}

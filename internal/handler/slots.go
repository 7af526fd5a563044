package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/club-dining/internal/format"
	"github.com/iliyamo/club-dining/internal/timeslot"
)

type slot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Slots handles GET /v1/slots?date=&meal=. Without a meal both lunch and,
// when served, dinner are listed. The date defaults to today.
func Slots(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	meal := c.QueryParam("meal")

	served, err := timeslot.DinnerServed(date)
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	var values []string
	if meal == "" {
		values, err = timeslot.ForDate(date)
	} else {
		values, err = timeslot.ForMeal(meal, date)
	}
	if errors.Is(err, timeslot.ErrUnknownMeal) {
		return badRequest(c, "meal must be lunch or dinner")
	}
	if err != nil {
		return badRequest(c, err.Error())
	}

	out := make([]slot, 0, len(values))
	for _, v := range values {
		out = append(out, slot{Value: v, Label: format.Time(v)})
	}
	resp := echo.Map{"date": date, "meal": meal, "dinner_served": served, "slots": out}
	if meal == timeslot.Dinner && !served {
		resp["notice"] = "Dinner is only available Thu–Sat"
	}
	return c.JSON(http.StatusOK, resp)
}

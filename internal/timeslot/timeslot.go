// Package timeslot lists the arrival times offered by the booking form.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// Meals served by the club.
const (
	Lunch  = "lunch"
	Dinner = "dinner"
)

// ErrUnknownMeal is returned for a meal other than lunch or dinner.
var ErrUnknownMeal = errors.New("unknown meal")

// Interval between two offered arrival times.
const Interval = 15 * time.Minute

type window struct{ start, end int } // minutes after midnight, inclusive

var windows = map[string]window{
	Lunch:  {start: 11 * 60, end: 14*60 + 45},
	Dinner: {start: 17 * 60, end: 18*60 + 45},
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, nil
}

// DinnerServed reports whether dinner is served on the date (Thursday through
// Saturday).
func DinnerServed(date string) (bool, error) {
	d, err := parseDate(date)
	if err != nil {
		return false, err
	}
	switch d.Weekday() {
	case time.Thursday, time.Friday, time.Saturday:
		return true, nil
	}
	return false, nil
}

// ForMeal returns the HH:MM arrival times for one meal on a date. Dinner on a
// day without dinner service yields an empty list.
func ForMeal(meal, date string) ([]string, error) {
	w, ok := windows[meal]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeal, meal)
	}
	served, err := DinnerServed(date)
	if err != nil {
		return nil, err
	}
	if meal == Dinner && !served {
		return []string{}, nil
	}
	step := int(Interval / time.Minute)
	out := make([]string, 0, (w.end-w.start)/step+1)
	for m := w.start; m <= w.end; m += step {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out, nil
}

// ForDate returns every arrival time on a date: lunch, then dinner when served.
func ForDate(date string) ([]string, error) {
	lunch, err := ForMeal(Lunch, date)
	if err != nil {
		return nil, err
	}
	dinner, err := ForMeal(Dinner, date)
	if err != nil {
		return nil, err
	}
	return append(lunch, dinner...), nil
}

// Offered reports whether slot is one of the arrival times for the date.
func Offered(date, slot string) (bool, error) {
	all, err := ForDate(date)
	if err != nil {
		return false, err
	}
	for _, s := range all {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}

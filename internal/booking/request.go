package booking

import (
	"errors"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/club-dining/internal/format"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/timeslot"
)

// AttendeeInput is one person in a booking request: a linked member or a
// named guest.
type AttendeeInput struct {
	MemberID  *int64   `json:"member_id"`
	GuestName string   `json:"guest_name" validate:"max=120"`
	Dietary   []string `json:"dietary_restrictions" validate:"dive,dietary"`
}

// Request is the booking form.
type Request struct {
	Date       string          `json:"date" validate:"required,datetime=2006-01-02"`
	Meal       string          `json:"meal" validate:"required,oneof=lunch dinner"`
	StartTime  string          `json:"start_time"`
	RoomID     int64           `json:"room_id"`
	Notes      string          `json:"notes" validate:"max=2000"`
	ConfirmNow bool            `json:"confirm_now"`
	Attendees  []AttendeeInput `json:"attendees" validate:"dive"`
}

// Limits are the club settings a booking is checked against. A nil Rooms
// list skips the room availability check.
type Limits struct {
	Rooms        []model.DiningRoom
	MaxPartySize int
}

// Validate checks a booking request and returns a ValidationError
// describing the first problem found.
func (s *Service) Validate(req Request, lim Limits) error {
	if len(req.Attendees) == 0 {
		return invalid("At least one attendee required")
	}
	if req.StartTime == "" {
		return invalid("Please select a time")
	}
	if err := s.validate.Struct(req); err != nil {
		return fieldError(err)
	}
	if req.Meal == timeslot.Dinner {
		if served, _ := timeslot.DinnerServed(req.Date); !served {
			return invalid("Dinner is only available Thu–Sat")
		}
	}
	slots, err := timeslot.ForMeal(req.Meal, req.Date)
	if err != nil {
		return invalid("Please select a valid date")
	}
	if !slices.Contains(slots, req.StartTime) {
		return invalid("%s is not an available %s time", displayTime(req.StartTime), req.Meal)
	}
	if req.RoomID == 0 {
		return invalid("Please select a room")
	}
	if lim.Rooms != nil && !roomOpen(lim.Rooms, req.RoomID) {
		return invalid("That room is not available")
	}
	if lim.MaxPartySize > 0 && len(req.Attendees) > lim.MaxPartySize {
		return invalid("Party size is limited to %d", lim.MaxPartySize)
	}
	for _, a := range req.Attendees {
		if a.MemberID == nil && strings.TrimSpace(a.GuestName) == "" {
			return invalid("Each attendee needs a member or a guest name")
		}
	}
	return nil
}

func displayTime(t string) string {
	if d := format.Time(t); d != "" {
		return d
	}
	return t
}

func roomOpen(rooms []model.DiningRoom, id int64) bool {
	for _, r := range rooms {
		if r.ID == id {
			return r.IsActive
		}
	}
	return false
}

func fieldError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return invalid("Invalid reservation")
	}
	fe := errs[0]
	switch fe.Tag() {
	case "dietary":
		return invalid("Unknown dietary restriction %q", fe.Value())
	case "datetime":
		return invalid("Date must be YYYY-MM-DD")
	case "oneof":
		return invalid("Meal must be lunch or dinner")
	case "max":
		return invalid("%s is too long", fe.Field())
	case "required":
		return invalid("%s is required", fe.Field())
	}
	return invalid("%s is invalid", fe.Field())
}

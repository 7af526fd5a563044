package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/queue"
)

// PartialFailure reports a reservation that was created upstream but whose
// attendees could not all be added. The reservation is cancelled as a
// compensating step; Compensated tells whether that worked.
type PartialFailure struct {
	ReservationID   int64
	Added           int
	Total           int
	Cause           error
	Compensated     bool
	CompensationErr error
}

func (e *PartialFailure) Error() string {
	s := fmt.Sprintf("reservation %d: added %d of %d attendees: %v", e.ReservationID, e.Added, e.Total, e.Cause)
	if !e.Compensated {
		s += fmt.Sprintf("; cancel failed: %v", e.CompensationErr)
	}
	return s
}

func (e *PartialFailure) Unwrap() error { return e.Cause }

// UserMessage explains the outcome in words a member can act on.
func (e *PartialFailure) UserMessage() string {
	cause := apiclient.MessageOr(e.Cause, "Failed to add attendee")
	if e.Compensated {
		return fmt.Sprintf("%s. The reservation was not kept; please try again.", cause)
	}
	return fmt.Sprintf("%s. Reservation #%d was created without every attendee; please review it.", cause, e.ReservationID)
}

// Create validates req, creates the reservation and then each attendee in
// order. Attendee failures trigger the compensating cancel described on
// PartialFailure.
func (s *Service) Create(ctx context.Context, api *apiclient.Client, userID int64, req Request, lim Limits) (*model.Reservation, error) {
	if err := s.Validate(req, lim); err != nil {
		return nil, err
	}

	status := model.ReservationDraft
	if req.ConfirmNow {
		status = model.ReservationConfirmed
	}
	body := apiclient.CreateReservationRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		Status:    status,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		body.Notes = &notes
	}
	if req.RoomID != 0 {
		room := req.RoomID
		body.RoomID = &room
	}

	res, err := api.CreateReservation(ctx, body)
	if err != nil {
		return nil, err
	}

	for i, a := range req.Attendees {
		in := apiclient.CreateAttendeeRequest{
			ReservationID:       res.ID,
			MemberID:            a.MemberID,
			DietaryRestrictions: a.Dietary,
		}
		if in.DietaryRestrictions == nil {
			in.DietaryRestrictions = []string{}
		}
		if a.MemberID == nil {
			name := strings.TrimSpace(a.GuestName)
			in.GuestName = &name
		}
		if _, err := api.CreateAttendee(ctx, in); err != nil {
			pf := &PartialFailure{ReservationID: res.ID, Added: i, Total: len(req.Attendees), Cause: err}
			if _, cerr := api.SetReservationStatus(ctx, res.ID, model.ReservationCancelled); cerr != nil {
				pf.CompensationErr = cerr
			} else {
				pf.Compensated = true
			}
			return nil, pf
		}
	}

	ev := queue.NewEvent(queue.ReservationCreated)
	ev.ReservationID = res.ID
	ev.UserID = userID
	ev.Status = res.Status
	ev.Date = res.Date
	ev.StartTime = res.StartTime
	s.publish(ctx, ev)
	return res, nil
}

// CreatedMessage is the toast shown after a successful booking.
func CreatedMessage(confirmed bool) string {
	if confirmed {
		return "Reservation confirmed"
	}
	return "Reservation saved as draft"
}

package apiclient

import (
	"context"
	"fmt"

	"github.com/iliyamo/club-dining/internal/model"
)

// CreateReservationRequest is the body of POST /api/reservations.
type CreateReservationRequest struct {
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	Notes     *string `json:"notes"`
	RoomID    *int64  `json:"room_id,omitempty"`
	Status    string  `json:"status"`
}

// CreateAttendeeRequest is the body of POST /api/reservation-attendees.
// Exactly one of MemberID and GuestName is set.
type CreateAttendeeRequest struct {
	ReservationID       int64    `json:"reservation_id"`
	MemberID            *int64   `json:"member_id"`
	GuestName           *string  `json:"guest_name"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// ListReservations returns the caller's reservations.
func (c *Client) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	if err := c.get(ctx, "/api/reservations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReservation returns one reservation.
func (c *Client) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	var out model.Reservation
	if err := c.get(ctx, fmt.Sprintf("/api/reservations/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Bootstrap returns a reservation with its attendees, orders, items,
// seating and messages in one round trip.
func (c *Client) Bootstrap(ctx context.Context, id int64) (*model.Bootstrap, error) {
	var raw []byte
	if err := c.get(ctx, fmt.Sprintf("/api/reservations/%d/bootstrap", id), &raw); err != nil {
		return nil, err
	}
	return DecodeBootstrap(raw)
}

// CreateReservation books a reservation.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest) (*model.Reservation, error) {
	var out model.Reservation
	if err := c.post(ctx, "/api/reservations", req, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("%w: created reservation has no id", ErrUnexpectedShape)
	}
	return &out, nil
}

// SetReservationStatus patches the status of the caller's reservation.
func (c *Client) SetReservationStatus(ctx context.Context, id int64, status string) (*model.Reservation, error) {
	var out model.Reservation
	if err := c.patch(ctx, fmt.Sprintf("/api/reservations/%d", id), map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReservation removes a reservation. The API only allows staff.
func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/reservations/%d", id))
}

// CreateAttendee adds an attendee to a reservation.
func (c *Client) CreateAttendee(ctx context.Context, req CreateAttendeeRequest) (*model.Attendee, error) {
	var out model.Attendee
	if err := c.post(ctx, "/api/reservation-attendees", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostMessage attaches a note to a reservation.
func (c *Client) PostMessage(ctx context.Context, reservationID int64, body string) (*model.Message, error) {
	var out model.Message
	in := map[string]any{"reservation_id": reservationID, "body": body}
	if err := c.post(ctx, "/api/messages", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

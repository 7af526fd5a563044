package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/iliyamo/club-dining/internal/model"
)

// AdminDaily returns the staff board for a date.
func (c *Client) AdminDaily(ctx context.Context, date string) ([]model.AdminRow, error) {
	var raw []byte
	if err := c.get(ctx, "/api/admin/daily?date="+url.QueryEscape(date), &raw); err != nil {
		return nil, err
	}
	return DecodeAdminRows(raw)
}

// AdminSetReservationStatus changes any reservation's status.
func (c *Client) AdminSetReservationStatus(ctx context.Context, id int64, status string) (*model.Reservation, error) {
	var out model.Reservation
	if err := c.patch(ctx, fmt.Sprintf("/api/admin/reservations/%d", id), map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminAttendees lists the attendees of any reservation.
func (c *Client) AdminAttendees(ctx context.Context, reservationID int64) ([]model.Attendee, error) {
	var out []model.Attendee
	if err := c.get(ctx, fmt.Sprintf("/api/admin/attendees?reservation_id=%d", reservationID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminDeleteAttendee removes an attendee from any reservation.
func (c *Client) AdminDeleteAttendee(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/attendees/%d", id))
}

func decodeSeatAssignments(raw []byte) ([]model.SeatAssignment, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: seat assignments are not JSON", ErrUnexpectedShape)
	}
	list := gjson.ParseBytes(raw)
	if list.IsObject() {
		list = list.Get("seat_assignments")
	}
	out := []model.SeatAssignment{}
	for _, e := range list.Array() {
		sa, err := decodeSeatAssignment(e)
		if err != nil {
			return nil, err
		}
		if sa != nil {
			out = append(out, *sa)
		}
	}
	return out, nil
}

package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iliyamo/club-dining/internal/model"
)

// SeatRequest is the body for creating or moving a seat assignment.
type SeatRequest struct {
	ReservationID int64  `json:"reservation_id"`
	TableID       int64  `json:"table_id"`
	Date          string `json:"date"`
}

// CreateSeatAssignment seats a reservation at a table.
func (c *Client) CreateSeatAssignment(ctx context.Context, req SeatRequest) (*model.SeatAssignment, error) {
	var out model.SeatAssignment
	if err := c.post(ctx, "/api/seat-assignments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSeatAssignment moves an existing assignment to another table.
func (c *Client) UpdateSeatAssignment(ctx context.Context, id int64, req SeatRequest) (*model.SeatAssignment, error) {
	var out model.SeatAssignment
	if err := c.patch(ctx, fmt.Sprintf("/api/seat-assignments/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSeatAssignment unseats a reservation.
func (c *Client) DeleteSeatAssignment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/seat-assignments/%d", id))
}

// AdminSeatAssignments lists every assignment for a date.
func (c *Client) AdminSeatAssignments(ctx context.Context, date string) ([]model.SeatAssignment, error) {
	var raw []byte
	if err := c.get(ctx, "/api/admin/seat-assignments?date="+url.QueryEscape(date), &raw); err != nil {
		return nil, err
	}
	return decodeSeatAssignments(raw)
}

package booking

import (
	"context"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/model"
)

// AssignTable seats a reservation at a table for a date. An existing
// assignment is moved instead of a second one being created.
func (s *Service) AssignTable(ctx context.Context, api *apiclient.Client, reservationID, tableID int64, date string, existing *model.SeatAssignment) (*model.SeatAssignment, error) {
	if tableID <= 0 {
		return nil, invalid("Please choose a table")
	}
	req := apiclient.SeatRequest{ReservationID: reservationID, TableID: tableID, Date: date}
	if existing != nil && existing.ID != 0 {
		return api.UpdateSeatAssignment(ctx, existing.ID, req)
	}
	return api.CreateSeatAssignment(ctx, req)
}

// Unassign removes a seat assignment. A nil assignment is a no-op.
func (s *Service) Unassign(ctx context.Context, api *apiclient.Client, existing *model.SeatAssignment) error {
	if existing == nil || existing.ID == 0 {
		return nil
	}
	return api.DeleteSeatAssignment(ctx, existing.ID)
}

// FindAssignment returns the assignment for reservationID among all, or nil.
func FindAssignment(all []model.SeatAssignment, reservationID int64) *model.SeatAssignment {
	for i := range all {
		if all[i].ReservationID == reservationID {
			return &all[i]
		}
	}
	return nil
}

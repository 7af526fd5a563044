package booking

import (
	"context"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/queue"
)

var statusMessages = map[string]string{
	model.ReservationConfirmed: "Reservation confirmed",
	model.ReservationCancelled: "Reservation cancelled",
	model.ReservationDraft:     "Restored to draft",
}

// StatusMessage is the toast shown after moving a reservation to status.
func StatusMessage(status string) string {
	return statusMessages[status]
}

// SetStatus moves one of the caller's reservations to draft, confirmed or
// cancelled.
func (s *Service) SetStatus(ctx context.Context, api *apiclient.Client, userID, id int64, status string) (*model.Reservation, error) {
	return s.changeStatus(ctx, userID, id, status, api.SetReservationStatus)
}

// AdminSetStatus is SetStatus through the staff endpoint, which accepts any
// member's reservation.
func (s *Service) AdminSetStatus(ctx context.Context, api *apiclient.Client, staffID, id int64, status string) (*model.Reservation, error) {
	return s.changeStatus(ctx, staffID, id, status, api.AdminSetReservationStatus)
}

type patchFunc func(ctx context.Context, id int64, status string) (*model.Reservation, error)

func (s *Service) changeStatus(ctx context.Context, actorID, id int64, status string, patch patchFunc) (*model.Reservation, error) {
	if _, ok := statusMessages[status]; !ok {
		return nil, invalid("Unknown reservation status %q", status)
	}
	res, err := patch(ctx, id, status)
	if err != nil {
		return nil, err
	}
	ev := queue.NewEvent(queue.ReservationStatusChanged)
	ev.ReservationID = id
	ev.UserID = actorID
	ev.Status = res.Status
	ev.Date = res.Date
	ev.StartTime = res.StartTime
	s.publish(ctx, ev)
	return res, nil
}

// Confirm moves a draft reservation to confirmed.
func (s *Service) Confirm(ctx context.Context, api *apiclient.Client, userID, id int64) (*model.Reservation, error) {
	return s.SetStatus(ctx, api, userID, id, model.ReservationConfirmed)
}

// Cancel cancels a reservation; Restore can bring it back.
func (s *Service) Cancel(ctx context.Context, api *apiclient.Client, userID, id int64) (*model.Reservation, error) {
	return s.SetStatus(ctx, api, userID, id, model.ReservationCancelled)
}

// Restore moves a reservation back to draft.
func (s *Service) Restore(ctx context.Context, api *apiclient.Client, userID, id int64) (*model.Reservation, error) {
	return s.SetStatus(ctx, api, userID, id, model.ReservationDraft)
}

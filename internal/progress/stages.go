// Package progress derives the six-step reservation progress indicator
// (created, attendees, orders, seated, fired, fulfilled) from whatever
// reservation data a screen happens to have loaded.
package progress

import "github.com/iliyamo/club-dining/internal/model"

// Stage names one milestone of a reservation.
type Stage string

const (
	Created   Stage = "created"
	Attendees Stage = "attendees"
	Orders    Stage = "orders"
	Seated    Stage = "seated"
	Fired     Stage = "fired"
	Fulfilled Stage = "fulfilled"
)

// Stages lists every stage in display order.
var Stages = []Stage{Created, Attendees, Orders, Seated, Fired, Fulfilled}

// Label returns the display label of a stage.
func (s Stage) Label() string {
	switch s {
	case Created:
		return "Created"
	case Attendees:
		return "Attendees"
	case Orders:
		return "Orders"
	case Seated:
		return "Seated"
	case Fired:
		return "Fired"
	case Fulfilled:
		return "Fulfilled"
	}
	return string(s)
}

// State is the qualitative progress of a stage.
type State string

const (
	Done    State = "done"
	Partial State = "partial"
	Pending State = "pending"
	Blocked State = "blocked"
)

// Result holds one state per stage.
type Result struct {
	Created   State `json:"created"`
	Attendees State `json:"attendees"`
	Orders    State `json:"orders"`
	Seated    State `json:"seated"`
	Fired     State `json:"fired"`
	Fulfilled State `json:"fulfilled"`
}

// Of returns the state of one stage.
func (r Result) Of(s Stage) State {
	switch s {
	case Created:
		return r.Created
	case Attendees:
		return r.Attendees
	case Orders:
		return r.Orders
	case Seated:
		return r.Seated
	case Fired:
		return r.Fired
	case Fulfilled:
		return r.Fulfilled
	}
	return Pending
}

// Compute derives the progress of a reservation. Every argument may be nil.
// Stages are evaluated independently: inconsistent input can yield fired=done
// while orders=partial, and that is reported as is.
func Compute(res *model.Reservation, admin *model.AdminRow, detail *model.Bootstrap, seat *model.SeatAssignment) Result {
	if res.IsCancelled() {
		return Result{Blocked, Blocked, Blocked, Blocked, Blocked, Blocked}
	}
	status := ""
	if res != nil {
		status = res.Status
	}
	confirmed := status == model.ReservationConfirmed

	r := Result{
		Created:   Pending,
		Attendees: Pending,
		Orders:    Pending,
		Seated:    Pending,
		Fired:     Pending,
		Fulfilled: Pending,
	}

	if (res != nil && res.ID != 0) || confirmed {
		r.Created = Done
	}

	if (detail != nil && len(detail.Attendees) > 0) || (admin != nil && admin.PartySize > 0) || confirmed {
		r.Attendees = Done
	}

	var orders []model.Order
	if detail != nil {
		orders = detail.Orders
	}
	if len(orders) > 0 {
		r.Orders = orderItemsState(orders, detail.OrderItems)
		r.Fired = share(orders, model.Order.FiredOrFulfilled)
		r.Fulfilled = share(orders, func(o model.Order) bool { return o.Status == model.OrderFulfilled })
	}

	if seatSignal(seat) || adminSeatSignal(admin) || detailSeatSignal(detail) {
		r.Seated = Done
	}
	return r
}

// orderItemsState is done when every order has an item and partial otherwise,
// including when no items are linked at all.
func orderItemsState(orders []model.Order, items []model.OrderItem) State {
	linked := make(map[int64]bool, len(items))
	for _, it := range items {
		linked[it.OrderID] = true
	}
	for _, o := range orders {
		if !linked[o.ID] {
			return Partial
		}
	}
	return Done
}

func share(orders []model.Order, pred func(model.Order) bool) State {
	n := 0
	for _, o := range orders {
		if pred(o) {
			n++
		}
	}
	switch {
	case n == len(orders):
		return Done
	case n > 0:
		return Partial
	}
	return Pending
}

func seatSignal(seat *model.SeatAssignment) bool {
	// Any supplied assignment counts; table ids are not checked further.
	return seat != nil
}

func adminSeatSignal(admin *model.AdminRow) bool {
	if admin == nil {
		return false
	}
	return admin.Table != nil || admin.TableID > 0 || admin.SeatAssignment != nil || admin.SeatAssignmentID > 0
}

func detailSeatSignal(detail *model.Bootstrap) bool {
	if detail == nil {
		return false
	}
	if detail.SeatAssignment != nil || len(detail.SeatAssignments) > 0 {
		return true
	}
	if res := detail.Reservation; res != nil {
		return res.SeatAssignment != nil || res.TableID > 0
	}
	return false
}

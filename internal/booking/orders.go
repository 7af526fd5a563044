package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/format"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/queue"
)

// OpenOrder starts an order for an attendee.
func (s *Service) OpenOrder(ctx context.Context, api *apiclient.Client, attendeeID int64) (*model.Order, error) {
	if attendeeID <= 0 {
		return nil, invalid("Please choose an attendee")
	}
	return api.CreateOrder(ctx, attendeeID)
}

// AddItem puts one menu item on an open order.
func (s *Service) AddItem(ctx context.Context, api *apiclient.Client, orderID, menuItemID int64) (*model.OrderItem, error) {
	if menuItemID <= 0 {
		return nil, invalid("Please choose a menu item")
	}
	return api.AddOrderItem(ctx, orderID, menuItemID)
}

// RemoveItem deletes an order item.
func (s *Service) RemoveItem(ctx context.Context, api *apiclient.Client, itemID int64) error {
	return api.DeleteOrderItem(ctx, itemID)
}

// FireOrder sends one order to the kitchen. b is the reservation the order
// belongs to and only feeds the published event; it may be nil.
func (s *Service) FireOrder(ctx context.Context, api *apiclient.Client, b *model.Bootstrap, orderID int64) (*model.Order, error) {
	o, err := api.FireOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, firedEvent(b, orderID))
	return o, nil
}

// Unfired lists the open orders that have at least one item.
func Unfired(b *model.Bootstrap) []model.Order {
	if b == nil {
		return nil
	}
	var out []model.Order
	for _, o := range b.Orders {
		if o.Status == model.OrderOpen && len(b.ItemsFor(o.ID)) > 0 {
			out = append(out, o)
		}
	}
	return out
}

// FireAllUnfired fires every unfired order one at a time and returns how many
// were fired. It stops at the first failure.
func (s *Service) FireAllUnfired(ctx context.Context, api *apiclient.Client, b *model.Bootstrap) (int, error) {
	orders := Unfired(b)
	if len(orders) == 0 {
		return 0, ErrNothingToFire
	}
	fired := 0
	for _, o := range orders {
		if _, err := s.FireOrder(ctx, api, b, o.ID); err != nil {
			return fired, err
		}
		fired++
	}
	return fired, nil
}

// FiredMessage is the toast shown after firing n orders.
func FiredMessage(n int) string {
	if n == 1 {
		return "Fired 1 order"
	}
	return fmt.Sprintf("Fired %d orders", n)
}

// Fulfill marks a fired order as served. Staff only upstream.
func (s *Service) Fulfill(ctx context.Context, api *apiclient.Client, orderID int64) (*model.Order, error) {
	o, err := api.FulfillOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ev := queue.NewEvent(queue.OrderFulfilled)
	ev.OrderID = orderID
	ev.ReservationID = o.ReservationID
	s.publish(ctx, ev)
	return o, nil
}

func firedEvent(b *model.Bootstrap, orderID int64) queue.Event {
	ev := queue.NewEvent(queue.OrderFired)
	ev.OrderID = orderID
	if b == nil {
		return ev
	}
	if b.Reservation != nil {
		ev.ReservationID = b.Reservation.ID
		ev.Date = b.Reservation.Date
		ev.StartTime = b.Reservation.StartTime
	}
	if a := attendeeFor(b, orderID); a != nil {
		ev.Attendee = a.DisplayName()
	}
	for _, it := range b.ItemsFor(orderID) {
		ev.Items = append(ev.Items, it.Name)
	}
	return ev
}

func attendeeFor(b *model.Bootstrap, orderID int64) *model.Attendee {
	for _, o := range b.Orders {
		if o.ID != orderID {
			continue
		}
		for i := range b.Attendees {
			if b.Attendees[i].ID == o.AttendeeID {
				return &b.Attendees[i]
			}
		}
	}
	return nil
}

// Chit renders the kitchen ticket for one order of the reservation.
func Chit(b *model.Bootstrap, orderID int64) (string, error) {
	if b == nil {
		return "", ErrOrderNotFound
	}
	var order *model.Order
	for i := range b.Orders {
		if b.Orders[i].ID == orderID {
			order = &b.Orders[i]
		}
	}
	if order == nil {
		return "", ErrOrderNotFound
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ORDER #%d  [%s]\n", order.ID, strings.ToUpper(order.Status))
	if r := b.Reservation; r != nil {
		fmt.Fprintf(&sb, "Reservation #%d  %s %s\n", r.ID, r.Date, format.Time(r.StartTime))
	}
	if a := attendeeFor(b, orderID); a != nil {
		fmt.Fprintf(&sb, "For: %s\n", a.DisplayName())
		if len(a.DietaryRestrictions) > 0 {
			labels := make([]string, len(a.DietaryRestrictions))
			for i, d := range a.DietaryRestrictions {
				labels[i] = model.DietaryLabel(d)
			}
			fmt.Fprintf(&sb, "Diet: %s\n", strings.Join(labels, ", "))
		}
	}
	sb.WriteString(strings.Repeat("-", 32) + "\n")
	var total int64
	for _, it := range b.ItemsFor(orderID) {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		line := it.PriceCents * int64(qty)
		total += line
		fmt.Fprintf(&sb, "%d x %-20s %8s\n", qty, it.Name, format.Price(line))
	}
	sb.WriteString(strings.Repeat("-", 32) + "\n")
	fmt.Fprintf(&sb, "%-24s %8s\n", "TOTAL", format.Price(total))
	return sb.String(), nil
}

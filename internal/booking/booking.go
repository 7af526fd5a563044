// Package booking runs the multi-step writes behind the member and staff
// screens: creating a reservation with its attendees, status changes,
// ordering, firing and seating. Successful writes publish domain events.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/queue"
)

// Publisher delivers domain events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// ValidationError is a request problem worth showing to the user verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string       { return e.Msg }
func (e *ValidationError) UserMessage() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ErrNothingToFire is returned by FireAllUnfired when no open order has items.
var ErrNothingToFire = &ValidationError{Msg: "No unfired orders with items"}

// ErrOrderNotFound is returned when an order is not part of the reservation.
var ErrOrderNotFound = errors.New("order not found")

// Service holds the validator and event publisher. The API client is passed
// per call because it carries the caller's token.
type Service struct {
	pub      Publisher
	validate *validator.Validate
}

// NewService builds a Service. A nil publisher drops events.
func NewService(pub Publisher) *Service {
	if pub == nil {
		pub = queue.Nop{}
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("dietary", func(fl validator.FieldLevel) bool {
		return model.ValidDietary(fl.Field().String())
	})
	return &Service{pub: pub, validate: v}
}

func (s *Service) publish(ctx context.Context, ev queue.Event) {
	if err := s.pub.Publish(ctx, ev); err != nil {
		log.Printf("booking: publish %s failed: %v", ev.Type, err)
	}
}

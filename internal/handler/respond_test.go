package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/booking"
	"github.com/iliyamo/club-dining/internal/model"
)

type evictions []string

func (e *evictions) Logout(_ context.Context, token string) { *e = append(*e, token) }

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&booking.ValidationError{Msg: "nope"}, http.StatusUnprocessableEntity},
		{booking.ErrNothingToFire, http.StatusUnprocessableEntity},
		{&booking.PartialFailure{Cause: errors.New("x"), Compensated: true}, http.StatusBadGateway},
		{booking.ErrOrderNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: dial", apiclient.ErrTransport), http.StatusBadGateway},
		{&apiclient.APIError{Status: http.StatusConflict}, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestFailClearsSessionOn401(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/data", nil), rec)
	c.Set("token", "tok")

	var ev evictions
	_ = fail(c, &ev, &apiclient.APIError{Status: http.StatusUnauthorized}, "x")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"session expired","redirect":"/login?from=%2Fv1%2Fdata"}`, rec.Body.String())
	assert.Equal(t, evictions{"tok"}, ev)
}

func TestFailUsesDetailThenFallback(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	_ = fail(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), nil,
		&apiclient.APIError{Status: 400, Detail: "Date is in the past"}, "Failed to create reservation")
	assert.JSONEq(t, `{"error":"Date is in the past"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	_ = fail(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), nil,
		&apiclient.APIError{Status: 500}, "Failed to create reservation")
	assert.JSONEq(t, `{"error":"Failed to create reservation"}`, rec.Body.String())
}

func TestDetailResponseTotalsWithoutUpstreamTotals(t *testing.T) {
	name := "Pat Lee"
	b := &model.Bootstrap{
		Reservation: &model.Reservation{ID: 5, StartTime: "18:15", Status: "cancelled"},
		Attendees:   []model.Attendee{{ID: 1, GuestName: &name, DietaryRestrictions: []string{"nut_allergy"}}},
		Orders:      []model.Order{{ID: 10, AttendeeID: 1, Status: "fired"}},
		OrderItems:  []model.OrderItem{{OrderID: 10, PriceCents: 500, Quantity: 3}},
	}
	resp := detailResponse(b)
	orders := resp["orders"].([]orderView)
	assert.Equal(t, "$15.00", orders[0].Total)
	assert.Equal(t, "Pat Lee", orders[0].Attendee)
	assert.True(t, orders[0].Locked)
	assert.Equal(t, []string{"No Nuts"}, resp["attendees"].([]attendeeView)[0].DietaryLabels)
	assert.Equal(t, "6:15 PM", resp["time_label"])
	assert.Equal(t, "✗─✗─✗─✗─✗─✗", resp["bar"])
	assert.Equal(t, false, resp["can_fire"])
}

func TestIDParam(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, ok := idParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	c.SetParamValues("-1")
	_, ok = idParam(c, "id")
	assert.False(t, ok)
}

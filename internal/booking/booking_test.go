package booking

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/model"
	"github.com/iliyamo/club-dining/internal/queue"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type call struct {
	Method, Path, Body string
}

// fakeAPI answers with routes[method+" "+path]; unknown routes are 404.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []call
	routes map[string]func(body string) (int, string)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *apiclient.Client) {
	t.Helper()
	f := &fakeAPI{routes: map[string]func(string) (int, string){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.calls = append(f.calls, call{r.Method, r.URL.Path, string(b)})
		defer f.mu.Unlock()
		h := f.routes[r.Method+" "+r.URL.Path]
		if h == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Not found"}`)
			return
		}
		status, body := h(string(b))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return f, apiclient.New(srv.URL, time.Second).WithToken("tok")
}

func (f *fakeAPI) on(route string, status int, body string) {
	f.routes[route] = func(string) (int, string) { return status, body }
}

func (f *fakeAPI) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

var rooms = []model.DiningRoom{
	{ID: 1, Name: "Main Room", IsActive: true},
	{ID: 2, Name: "Library", IsActive: false},
}

func validRequest() Request {
	return Request{
		Date:      "2026-10-15", // Thursday
		Meal:      "lunch",
		StartTime: "12:00",
		RoomID:    1,
		Attendees: []AttendeeInput{
			{MemberID: ptr(int64(9)), Dietary: []string{"vegan"}},
			{GuestName: " Pat Lee "},
		},
	}
}

func TestValidate(t *testing.T) {
	s := NewService(nil)
	lim := Limits{Rooms: rooms, MaxPartySize: 4}

	cases := []struct {
		name string
		mut  func(*Request)
		msg  string
	}{
		{"no attendees", func(r *Request) { r.Attendees = nil }, "At least one attendee required"},
		{"no time", func(r *Request) { r.StartTime = "" }, "Please select a time"},
		{"dinner on monday", func(r *Request) { r.Date = "2026-10-19"; r.Meal = "dinner"; r.StartTime = "17:00" }, "Dinner is only available Thu–Sat"},
		{"slot not offered", func(r *Request) { r.StartTime = "16:00" }, "4:00 PM is not an available lunch time"},
		{"dinner slot for lunch", func(r *Request) { r.StartTime = "17:30" }, "5:30 PM is not an available lunch time"},
		{"no room", func(r *Request) { r.RoomID = 0 }, "Please select a room"},
		{"inactive room", func(r *Request) { r.RoomID = 2 }, "That room is not available"},
		{"unknown room", func(r *Request) { r.RoomID = 7 }, "That room is not available"},
		{"party too big", func(r *Request) {
			for i := 0; i < 3; i++ {
				r.Attendees = append(r.Attendees, AttendeeInput{GuestName: "Extra"})
			}
		}, "Party size is limited to 4"},
		{"nameless guest", func(r *Request) { r.Attendees[1].GuestName = "  " }, "Each attendee needs a member or a guest name"},
		{"bad diet", func(r *Request) { r.Attendees[0].Dietary = []string{"paleo"} }, `Unknown dietary restriction "paleo"`},
		{"bad date", func(r *Request) { r.Date = "15/10/2026" }, "Date must be YYYY-MM-DD"},
		{"bad meal", func(r *Request) { r.Meal = "brunch" }, "Meal must be lunch or dinner"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mut(&req)
			err := s.Validate(req, lim)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.msg, verr.UserMessage())
		})
	}

	assert.NoError(t, s.Validate(validRequest(), lim))

	dinner := validRequest()
	dinner.Meal = "dinner"
	dinner.StartTime = "18:45"
	assert.NoError(t, s.Validate(dinner, lim))

	// Without a room list only the presence of a room is checked.
	unknown := validRequest()
	unknown.RoomID = 7
	assert.NoError(t, s.Validate(unknown, Limits{}))
}

func TestCreateHappyPath(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("POST /api/reservations", 201, `{"id":50,"date":"2026-10-15","start_time":"12:00","status":"confirmed"}`)
	var bodies []string
	f.routes["POST /api/reservation-attendees"] = func(b string) (int, string) {
		bodies = append(bodies, b)
		return 201, `{"id":1,"reservation_id":50}`
	}
	pub := &recordingPublisher{}
	s := NewService(pub)

	req := validRequest()
	req.ConfirmNow = true
	req.Notes = "window please"
	res, err := s.Create(context.Background(), api, 3, req, Limits{Rooms: rooms, MaxPartySize: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.ID)

	require.Len(t, bodies, 2)
	var member, guest apiclient.CreateAttendeeRequest
	require.NoError(t, json.Unmarshal([]byte(bodies[0]), &member))
	require.NoError(t, json.Unmarshal([]byte(bodies[1]), &guest))
	assert.Equal(t, int64(9), *member.MemberID)
	assert.Nil(t, member.GuestName)
	assert.Equal(t, []string{"vegan"}, member.DietaryRestrictions)
	assert.Nil(t, guest.MemberID)
	assert.Equal(t, "Pat Lee", *guest.GuestName)
	assert.Equal(t, []string{}, guest.DietaryRestrictions)

	var created apiclient.CreateReservationRequest
	require.NoError(t, json.Unmarshal([]byte(f.calls[0].Body), &created))
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, "window please", *created.Notes)

	require.Equal(t, []string{queue.ReservationCreated}, pub.types())
	assert.Equal(t, int64(3), pub.events[0].UserID)
}

func TestCreateStopsOnValidationError(t *testing.T) {
	f, api := newFakeAPI(t)
	s := NewService(nil)
	req := validRequest()
	req.Attendees = nil
	_, err := s.Create(context.Background(), api, 3, req, Limits{})
	assert.Error(t, err)
	assert.Empty(t, f.paths())
}

func TestCreateCompensatesOnAttendeeFailure(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("POST /api/reservations", 201, `{"id":50,"status":"draft"}`)
	n := 0
	f.routes["POST /api/reservation-attendees"] = func(string) (int, string) {
		n++
		if n == 2 {
			return 422, `{"detail":[{"msg":"guest_name too long"}]}`
		}
		return 201, `{"id":1}`
	}
	f.on("PATCH /api/reservations/50", 200, `{"id":50,"status":"cancelled"}`)
	pub := &recordingPublisher{}
	s := NewService(pub)

	_, err := s.Create(context.Background(), api, 3, validRequest(), Limits{})
	var pf *PartialFailure
	require.ErrorAs(t, err, &pf)
	assert.True(t, pf.Compensated)
	assert.Equal(t, 1, pf.Added)
	assert.Equal(t, 2, pf.Total)
	assert.Equal(t, "guest_name too long. The reservation was not kept; please try again.", apiclient.Message(err))
	assert.Equal(t, []string{
		"POST /api/reservations",
		"POST /api/reservation-attendees",
		"POST /api/reservation-attendees",
		"PATCH /api/reservations/50",
	}, f.paths())
	assert.Contains(t, f.calls[3].Body, `"cancelled"`)
	assert.Empty(t, pub.types())
}

func TestCreateReportsFailedCompensation(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("POST /api/reservations", 201, `{"id":50,"status":"draft"}`)
	f.on("POST /api/reservation-attendees", 500, `{}`)
	f.on("PATCH /api/reservations/50", 503, `{}`)
	s := NewService(nil)

	_, err := s.Create(context.Background(), api, 3, validRequest(), Limits{})
	var pf *PartialFailure
	require.ErrorAs(t, err, &pf)
	assert.False(t, pf.Compensated)
	assert.Error(t, pf.CompensationErr)
	assert.Contains(t, pf.UserMessage(), "Reservation #50 was created without every attendee")
	assert.Contains(t, pf.Error(), "cancel failed")
}

func TestSetStatus(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("PATCH /api/reservations/5", 200, `{"id":5,"status":"cancelled","date":"2026-10-15"}`)
	pub := &recordingPublisher{err: errors.New("broker down")}
	s := NewService(pub)

	res, err := s.Cancel(context.Background(), api, 3, 5)
	require.NoError(t, err, "publish failures never fail the write")
	assert.Equal(t, "cancelled", res.Status)
	assert.Equal(t, []string{queue.ReservationStatusChanged}, pub.types())
	assert.Equal(t, "Reservation cancelled", StatusMessage(res.Status))
	assert.Equal(t, "Restored to draft", StatusMessage("draft"))

	_, err = s.SetStatus(context.Background(), api, 3, 5, "seated")
	assert.Error(t, err)
}

func TestAdminSetStatusUsesStaffEndpoint(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("PATCH /api/admin/reservations/5", 200, `{"id":5,"status":"confirmed"}`)
	pub := &recordingPublisher{}

	res, err := NewService(pub).AdminSetStatus(context.Background(), api, 8, 5, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)
	assert.Equal(t, []string{"PATCH /api/admin/reservations/5"}, f.paths())
	require.Len(t, pub.events, 1)
	assert.Equal(t, int64(8), pub.events[0].UserID)
}

func TestOpenOrder(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("POST /api/orders", 201, `{"id":12,"attendee_id":1,"status":"open"}`)
	s := NewService(nil)

	o, err := s.OpenOrder(context.Background(), api, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), o.ID)
	assert.JSONEq(t, `{"attendee_id":1}`, f.calls[0].Body)

	_, err = s.OpenOrder(context.Background(), api, 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func bootstrap() *model.Bootstrap {
	return &model.Bootstrap{
		Reservation: &model.Reservation{ID: 5, Date: "2026-10-15", StartTime: "12:30", Status: "confirmed"},
		Attendees: []model.Attendee{
			{ID: 1, GuestName: ptr("Pat Lee"), DietaryRestrictions: []string{"gluten_free", "low_salt"}},
			{ID: 2, Member: &model.Member{Name: "Robin Ames"}},
		},
		Orders: []model.Order{
			{ID: 10, AttendeeID: 1, Status: "open"},
			{ID: 11, AttendeeID: 2, Status: "open"},
			{ID: 12, AttendeeID: 2, Status: "fired"},
			{ID: 13, AttendeeID: 1, Status: "open"},
		},
		OrderItems: []model.OrderItem{
			{ID: 100, OrderID: 10, Name: "Tomato Soup", PriceCents: 900, Quantity: 1},
			{ID: 101, OrderID: 10, Name: "Club Sandwich", PriceCents: 1450, Quantity: 2},
			{ID: 102, OrderID: 11, Name: "Caesar Salad", PriceCents: 1100, Quantity: 1},
			{ID: 103, OrderID: 12, Name: "Brownie", PriceCents: 700, Quantity: 1},
		},
	}
}

func TestFireAllUnfired(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("POST /api/orders/10/fire", 200, `{"id":10,"status":"fired"}`)
	f.on("POST /api/orders/11/fire", 200, `{"id":11,"status":"fired"}`)
	pub := &recordingPublisher{}
	s := NewService(pub)

	n, err := s.FireAllUnfired(context.Background(), api, bootstrap())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"POST /api/orders/10/fire", "POST /api/orders/11/fire"}, f.paths())
	require.Len(t, pub.events, 2)
	assert.Equal(t, "Pat Lee", pub.events[0].Attendee)
	assert.Equal(t, []string{"Tomato Soup", "Club Sandwich"}, pub.events[0].Items)
	assert.Equal(t, int64(5), pub.events[1].ReservationID)
	assert.Equal(t, "Fired 2 orders", FiredMessage(n))
	assert.Equal(t, "Fired 1 order", FiredMessage(1))
}

func TestFireAllStopsAtFirstFailure(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("POST /api/orders/10/fire", 409, `{"detail":"Order already fired"}`)
	s := NewService(nil)

	n, err := s.FireAllUnfired(context.Background(), api, bootstrap())
	assert.Zero(t, n)
	assert.Equal(t, "Order already fired", apiclient.Message(err))
	assert.Len(t, f.paths(), 1)
}

func TestFireAllNothingToFire(t *testing.T) {
	_, api := newFakeAPI(t)
	s := NewService(nil)
	b := bootstrap()
	b.OrderItems = nil

	_, err := s.FireAllUnfired(context.Background(), api, b)
	assert.ErrorIs(t, err, ErrNothingToFire)
	assert.Equal(t, "No unfired orders with items", apiclient.Message(err))
}

func TestFulfill(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("PATCH /api/admin/orders/12/fulfill", 200, `{"id":12,"reservation_id":5,"status":"fulfilled"}`)
	pub := &recordingPublisher{}
	s := NewService(pub)

	o, err := s.Fulfill(context.Background(), api, 12)
	require.NoError(t, err)
	assert.Equal(t, "fulfilled", o.Status)
	require.Equal(t, []string{queue.OrderFulfilled}, pub.types())
	assert.Equal(t, int64(5), pub.events[0].ReservationID)
}

func TestChit(t *testing.T) {
	chit, err := Chit(bootstrap(), 10)
	require.NoError(t, err)
	assert.Contains(t, chit, "ORDER #10  [OPEN]")
	assert.Contains(t, chit, "Reservation #5  2026-10-15 12:30 PM")
	assert.Contains(t, chit, "For: Pat Lee")
	assert.Contains(t, chit, "Diet: GF, low salt")
	assert.Contains(t, chit, "2 x Club Sandwich")
	assert.Contains(t, chit, "$29.00")
	lines := strings.Split(strings.TrimSpace(chit), "\n")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "TOTAL"))
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "$38.00"))

	_, err = Chit(bootstrap(), 99)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = Chit(nil, 10)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAddItemRequiresMenuItem(t *testing.T) {
	f, api := newFakeAPI(t)
	s := NewService(nil)
	_, err := s.AddItem(context.Background(), api, 10, 0)
	assert.Error(t, err)
	assert.Empty(t, f.paths())
}

func TestAssignTable(t *testing.T) {
	f, api := newFakeAPI(t)
	f.on("POST /api/seat-assignments", 201, `{"id":70,"reservation_id":5,"table_id":3}`)
	f.on("PATCH /api/seat-assignments/70", 200, `{"id":70,"reservation_id":5,"table_id":4}`)
	f.on("DELETE /api/seat-assignments/70", 204, ``)
	s := NewService(nil)
	ctx := context.Background()

	sa, err := s.AssignTable(ctx, api, 5, 3, "2026-10-15", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(70), sa.ID)

	sa, err = s.AssignTable(ctx, api, 5, 4, "2026-10-15", sa)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sa.TableID)

	require.NoError(t, s.Unassign(ctx, api, sa))
	require.NoError(t, s.Unassign(ctx, api, nil))

	assert.Equal(t, []string{
		"POST /api/seat-assignments",
		"PATCH /api/seat-assignments/70",
		"DELETE /api/seat-assignments/70",
	}, f.paths())

	_, err = s.AssignTable(ctx, api, 5, 0, "2026-10-15", nil)
	assert.Error(t, err)
}

func TestFindAssignment(t *testing.T) {
	all := []model.SeatAssignment{{ID: 1, ReservationID: 4}, {ID: 2, ReservationID: 5}}
	assert.Equal(t, int64(2), FindAssignment(all, 5).ID)
	assert.Nil(t, FindAssignment(all, 6))
}

package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBootstrapFull(t *testing.T) {
	raw := []byte(`{
		"reservation": {"id": 4, "date": "2026-10-15", "start_time": "12:00", "status": "confirmed", "table_id": 7},
		"attendees": [{"id": 1, "reservation_id": 4, "guest_name": "Pat", "dietary_restrictions": ["vegan"]}],
		"orders": [{"id": 10, "attendee_id": 1, "status": "fired"}],
		"order_items": [{"id": 100, "order_id": 10, "name": "Soup", "price_cents": 900, "quantity": 1}],
		"seat_assignments": [{"id": 2, "reservation_id": 4, "table": {"id": 7, "name": "T7"}}],
		"messages": [],
		"order_totals": {"10": 900},
		"reservation_total": 900
	}`)
	b, err := DecodeBootstrap(raw)
	require.NoError(t, err)
	require.NotNil(t, b.Reservation)
	assert.Equal(t, int64(7), b.Reservation.TableID)
	assert.Len(t, b.Attendees, 1)
	assert.Equal(t, "Pat", b.Attendees[0].DisplayName())
	require.Len(t, b.SeatAssignments, 1)
	assert.Equal(t, int64(7), b.SeatAssignments[0].TableID)
	assert.Equal(t, int64(900), b.OrderTotals[10])
	assert.Len(t, b.ItemsFor(10), 1)
	assert.Empty(t, b.ItemsFor(11))
}

func TestDecodeBootstrapSeatVariants(t *testing.T) {
	b, err := DecodeBootstrap([]byte(`{"reservation":{"id":1,"status":"draft","seat_assignment":5},"seat_assignment":null}`))
	require.NoError(t, err)
	require.NotNil(t, b.Reservation.SeatAssignment)
	assert.Equal(t, int64(5), b.Reservation.SeatAssignment.ID)
	assert.Nil(t, b.SeatAssignment)

	b, err = DecodeBootstrap([]byte(`{"reservation":{"id":1,"table":{"id":3}}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.Reservation.TableID)
}

func TestDecodeBootstrapRejectsGarbage(t *testing.T) {
	_, err := DecodeBootstrap([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
	_, err = DecodeBootstrap([]byte(`nope`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestDecodeAdminRows(t *testing.T) {
	raw := []byte(`{"reservations":[
		{"id": 1, "status": "confirmed", "date": "2026-10-15", "party_size": 3, "table": "Window"},
		{"reservation": {"id": 2, "status": "draft"}, "member": {"name": "Lee"}, "table": 9, "seat_assignment_id": 4},
		{"id": 3, "status": "draft", "attendees": [{}, {}]}
	]}`)
	rows, err := DecodeAdminRows(raw)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int64(1), rows[0].Reservation.ID)
	assert.Equal(t, 3, rows[0].PartySize)
	require.NotNil(t, rows[0].Table)
	assert.Equal(t, "Window", rows[0].Table.Name)

	assert.Equal(t, int64(2), rows[1].Reservation.ID)
	assert.Equal(t, "Lee", rows[1].MemberName)
	assert.Equal(t, int64(9), rows[1].TableID)
	assert.Equal(t, int64(4), rows[1].SeatAssignmentID)

	assert.Equal(t, 2, rows[2].PartySize)
	assert.Nil(t, rows[2].Table)
}

func TestDecodeAdminRowsBareList(t *testing.T) {
	rows, err := DecodeAdminRows([]byte(`[{"id":5,"status":"cancelled"}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Reservation.IsCancelled())

	_, err = DecodeAdminRows([]byte(`{"unexpected":true}`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestMaxPartySize(t *testing.T) {
	assert.Equal(t, 6, MaxPartySize([]byte(`{"_config":{"max_party_size":6}}`)))
	assert.Equal(t, DefaultMaxPartySize, MaxPartySize([]byte(`{}`)))
	assert.Equal(t, DefaultMaxPartySize, MaxPartySize(nil))
}

func TestDecodeSeatAssignmentsObject(t *testing.T) {
	out, err := decodeSeatAssignments([]byte(`{"seat_assignments":[{"id":1,"reservation_id":2,"table_id":3}]}`))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].TableID)
}

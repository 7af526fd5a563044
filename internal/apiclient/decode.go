package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iliyamo/club-dining/internal/model"
)

// The API is loose about a few payloads: the same fact may arrive under
// different field names, as an object or as a bare id. Everything below
// settles those variants so the rest of the code sees one shape.

func decodeInto(r gjson.Result, out any) error {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if err := json.Unmarshal([]byte(r.Raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

// decodeTableRef accepts {"id":..,"name":..}, a bare id or a bare name.
func decodeTableRef(r gjson.Result) *model.TableRef {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return nil
	case r.IsObject():
		return &model.TableRef{ID: r.Get("id").Int(), Name: r.Get("name").String()}
	case r.Type == gjson.Number:
		return &model.TableRef{ID: r.Int()}
	case r.Type == gjson.String:
		if r.String() == "" {
			return nil
		}
		return &model.TableRef{Name: r.String()}
	case r.Type == gjson.True:
		return &model.TableRef{}
	}
	return nil
}

func decodeSeatAssignment(r gjson.Result) (*model.SeatAssignment, error) {
	if !r.Exists() || r.Type == gjson.Null || r.Type == gjson.False {
		return nil, nil
	}
	if !r.IsObject() {
		// a bare id still means the reservation has an assignment
		return &model.SeatAssignment{ID: r.Int()}, nil
	}
	var sa model.SeatAssignment
	if err := decodeInto(r, &sa); err != nil {
		return nil, err
	}
	if sa.TableID == 0 && sa.Table != nil {
		sa.TableID = sa.Table.ID
	}
	return &sa, nil
}

func decodeReservation(r gjson.Result) (*model.Reservation, error) {
	if !r.IsObject() {
		return nil, nil
	}
	var res model.Reservation
	if err := json.Unmarshal([]byte(r.Raw), &struct {
		*model.Reservation
		SeatAssignment json.RawMessage `json:"seat_assignment"`
		Table          json.RawMessage `json:"table"`
	}{Reservation: &res}); err != nil {
		return nil, fmt.Errorf("%w: reservation: %v", ErrUnexpectedShape, err)
	}
	sa, err := decodeSeatAssignment(r.Get("seat_assignment"))
	if err != nil {
		return nil, err
	}
	res.SeatAssignment = sa
	if res.TableID == 0 {
		if t := decodeTableRef(r.Get("table")); t != nil {
			res.TableID = t.ID
		}
	}
	return &res, nil
}

// DecodeBootstrap parses a /bootstrap payload.
func DecodeBootstrap(raw []byte) (*model.Bootstrap, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: bootstrap is not JSON", ErrUnexpectedShape)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: bootstrap is not an object", ErrUnexpectedShape)
	}

	b := &model.Bootstrap{}
	var err error
	if b.Reservation, err = decodeReservation(doc.Get("reservation")); err != nil {
		return nil, err
	}
	for path, dst := range map[string]any{
		"attendees":   &b.Attendees,
		"orders":      &b.Orders,
		"order_items": &b.OrderItems,
		"messages":    &b.Messages,
	} {
		if err := decodeInto(doc.Get(path), dst); err != nil {
			return nil, fmt.Errorf("bootstrap %s: %w", path, err)
		}
	}
	if b.SeatAssignment, err = decodeSeatAssignment(doc.Get("seat_assignment")); err != nil {
		return nil, err
	}
	for _, e := range doc.Get("seat_assignments").Array() {
		sa, err := decodeSeatAssignment(e)
		if err != nil {
			return nil, err
		}
		if sa != nil {
			b.SeatAssignments = append(b.SeatAssignments, *sa)
		}
	}
	if totals := doc.Get("order_totals"); totals.IsObject() {
		b.OrderTotals = make(map[int64]int64)
		totals.ForEach(func(k, v gjson.Result) bool {
			b.OrderTotals[k.Int()] = v.Int()
			return true
		})
	}
	b.ReservationTotal = doc.Get("reservation_total").Int()
	return b, nil
}

func decodeAdminRow(r gjson.Result) (model.AdminRow, error) {
	var row model.AdminRow
	src := r.Get("reservation")
	if !src.IsObject() {
		src = r
	}
	res, err := decodeReservation(src)
	if err != nil {
		return row, err
	}
	if res != nil {
		row.Reservation = *res
	}
	row.MemberName = firstString(r, "member_name", "member.name")
	row.PartySize = int(firstInt(r, "party_size", "attendee_count", "reservation.party_size"))
	if row.PartySize == 0 {
		row.PartySize = len(r.Get("attendees").Array())
	}
	row.Table = decodeTableRef(r.Get("table"))
	row.TableID = firstInt(r, "table_id", "table.id")
	if row.TableID == 0 && row.Table != nil {
		row.TableID = row.Table.ID
	}
	if row.SeatAssignment, err = decodeSeatAssignment(r.Get("seat_assignment")); err != nil {
		return row, err
	}
	row.SeatAssignmentID = firstInt(r, "seat_assignment_id", "seat_assignment.id")
	return row, nil
}

// DecodeAdminRows parses the staff daily board, which is either a bare list
// or an object holding the list under "reservations" or "rows".
func DecodeAdminRows(raw []byte) ([]model.AdminRow, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: daily board is not JSON", ErrUnexpectedShape)
	}
	doc := gjson.ParseBytes(raw)
	list := doc
	if doc.IsObject() {
		list = doc.Get("reservations")
		if !list.Exists() {
			list = doc.Get("rows")
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: daily board has no rows", ErrUnexpectedShape)
	}
	rows := make([]model.AdminRow, 0, len(list.Array()))
	for _, e := range list.Array() {
		row, err := decodeAdminRow(e)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DefaultMaxPartySize applies when the schema does not say.
const DefaultMaxPartySize = 4

// MaxPartySize reads _config.max_party_size from a /api/schema payload.
func MaxPartySize(schema []byte) int {
	if n := gjson.GetBytes(schema, "_config.max_party_size").Int(); n > 0 {
		return int(n)
	}
	return DefaultMaxPartySize
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func firstInt(r gjson.Result, paths ...string) int64 {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Int() != 0 {
			return v.Int()
		}
	}
	return 0
}

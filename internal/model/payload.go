package model

// Bootstrap is the aggregated reservation payload returned by
// /api/reservations/:id/bootstrap.
type Bootstrap struct {
    Reservation      *Reservation     `json:"reservation"`
    Attendees        []Attendee       `json:"attendees"`
    Orders           []Order          `json:"orders"`
    OrderItems       []OrderItem      `json:"order_items"`
    SeatAssignment   *SeatAssignment  `json:"seat_assignment,omitempty"`
    SeatAssignments  []SeatAssignment `json:"seat_assignments,omitempty"`
    Messages         []Message        `json:"messages"`
    OrderTotals      map[int64]int64  `json:"order_totals,omitempty"`
    ReservationTotal int64            `json:"reservation_total"`
}

// ItemsFor returns the items linked to an order.
func (b *Bootstrap) ItemsFor(orderID int64) []OrderItem {
    if b == nil {
        return nil
    }
    var out []OrderItem
    for _, it := range b.OrderItems {
        if it.OrderID == orderID {
            out = append(out, it)
        }
    }
    return out
}

// AdminRow is one denormalized reservation row from the staff daily board.
// Table and SeatAssignment are nil when the API omits them.
type AdminRow struct {
    Reservation      Reservation     `json:"reservation"`
    MemberName       string          `json:"member_name,omitempty"`
    PartySize        int             `json:"party_size"`
    Table            *TableRef       `json:"table,omitempty"`
    TableID          int64           `json:"table_id,omitempty"`
    SeatAssignment   *SeatAssignment `json:"seat_assignment,omitempty"`
    SeatAssignmentID int64           `json:"seat_assignment_id,omitempty"`
}

package model

// Reservation statuses as reported by the club API.
const (
    ReservationDraft     = "draft"
    ReservationConfirmed = "confirmed"
    ReservationCancelled = "cancelled"
)

// Reservation is a member's booking for a date and arrival time.
//
// Fields:
//  ID             – reservations.id; zero when not yet created.
//  Date           – service date, YYYY-MM-DD.
//  StartTime      – arrival time, HH:MM.
//  EndTime        – optional end time, HH:MM.
//  Status         – draft, confirmed or cancelled.
//  RoomID         – optional dining room preference.
//  PartySize      – optional party size reported by the API.
//  TableID        – table the party was seated at, zero when unseated.
//  SeatAssignment – embedded assignment when the API includes one.
type Reservation struct {
    ID             int64           `json:"id"`
    MemberID       *int64          `json:"member_id,omitempty"`
    Date           string          `json:"date"`
    StartTime      string          `json:"start_time"`
    EndTime        string          `json:"end_time,omitempty"`
    Status         string          `json:"status"`
    Notes          *string         `json:"notes,omitempty"`
    RoomID         *int64          `json:"room_id,omitempty"`
    PartySize      *int            `json:"party_size,omitempty"`
    TableID        int64           `json:"table_id,omitempty"`
    SeatAssignment *SeatAssignment `json:"seat_assignment,omitempty"`
}

// IsCancelled reports whether the reservation was cancelled.
func (r *Reservation) IsCancelled() bool {
    return r != nil && r.Status == ReservationCancelled
}

// Attendee is one person in a reservation: a linked member or a free-text guest.
type Attendee struct {
    ID                  int64    `json:"id"`
    ReservationID       int64    `json:"reservation_id"`
    MemberID            *int64   `json:"member_id,omitempty"`
    GuestName           *string  `json:"guest_name,omitempty"`
    DietaryRestrictions []string `json:"dietary_restrictions"`
    Member              *Member  `json:"member,omitempty"`
}

// DisplayName returns the member name, then the guest name, then "Guest".
func (a Attendee) DisplayName() string {
    if a.Member != nil && a.Member.Name != "" {
        return a.Member.Name
    }
    if a.GuestName != nil && *a.GuestName != "" {
        return *a.GuestName
    }
    return "Guest"
}

// Order statuses. Fired orders are locked against item edits.
const (
    OrderOpen      = "open"
    OrderFired     = "fired"
    OrderFulfilled = "fulfilled"
)

// Order belongs to exactly one attendee and aggregates order items.
type Order struct {
    ID            int64  `json:"id"`
    AttendeeID    int64  `json:"attendee_id"`
    ReservationID int64  `json:"reservation_id,omitempty"`
    Status        string `json:"status"`
}

// FiredOrFulfilled reports whether the order has reached the kitchen.
func (o Order) FiredOrFulfilled() bool {
    return o.Status == OrderFired || o.Status == OrderFulfilled
}

// OrderItem snapshots a menu item (name, price) at the time it was ordered.
type OrderItem struct {
    ID         int64  `json:"id"`
    OrderID    int64  `json:"order_id"`
    MenuItemID int64  `json:"menu_item_id"`
    Name       string `json:"name"`
    PriceCents int64  `json:"price_cents"`
    Quantity   int    `json:"quantity"`
    Status     string `json:"status,omitempty"`
}

// TableRef is the nested table object some payloads embed.
type TableRef struct {
    ID   int64  `json:"id"`
    Name string `json:"name,omitempty"`
}

// SeatAssignment maps a reservation to a table for a date. The API keeps at
// most one active assignment per reservation per date.
type SeatAssignment struct {
    ID            int64     `json:"id"`
    ReservationID int64     `json:"reservation_id"`
    TableID       int64     `json:"table_id"`
    Table         *TableRef `json:"table,omitempty"`
    Date          string    `json:"date,omitempty"`
}

// Message is a note attached to a reservation.
type Message struct {
    ID            int64  `json:"id"`
    ReservationID int64  `json:"reservation_id"`
    Body          string `json:"body"`
    CreatedAt     string `json:"created_at,omitempty"`
}

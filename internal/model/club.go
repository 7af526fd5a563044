package model

// User roles. Staff and admin share the staff console.
const (
    RoleMember = "member"
    RoleStaff  = "staff"
    RoleAdmin  = "admin"
)

// User is the authenticated account returned by /api/auth/me.
type User struct {
    ID    int64  `json:"id"`
    Email string `json:"email"`
    Name  string `json:"name,omitempty"`
    Role  string `json:"role"`
}

// IsStaff reports whether the user may open staff screens.
func (u *User) IsStaff() bool {
    return u != nil && (u.Role == RoleAdmin || u.Role == RoleStaff)
}

// Member is a club member who can be linked to attendees.
type Member struct {
    ID                  int64    `json:"id"`
    Name                string   `json:"name"`
    Email               string   `json:"email,omitempty"`
    DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
}

// MenuItem is an orderable dish. Section and Category are both optional
// hints used for grouping.
type MenuItem struct {
    ID                  int64    `json:"id"`
    Name                string   `json:"name"`
    Description         string   `json:"description,omitempty"`
    PriceCents          int64    `json:"price_cents"`
    Category            string   `json:"category,omitempty"`
    Section             string   `json:"section,omitempty"`
    IsActive            bool     `json:"is_active"`
    DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
}

// DiningRoom is a bookable room.
type DiningRoom struct {
    ID       int64  `json:"id"`
    Name     string `json:"name"`
    IsActive bool   `json:"is_active"`
}

// Table belongs to a dining room.
type Table struct {
    ID           int64  `json:"id"`
    DiningRoomID int64  `json:"dining_room_id"`
    Name         string `json:"name"`
    Capacity     int    `json:"capacity"`
}

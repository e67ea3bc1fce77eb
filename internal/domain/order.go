package domain

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusRejected  OrderStatus = "rejected"
)

// Order represents a user's reservation of a prepared sandwich against one time slot
type Order struct {
	ID         int64
	UserID     int64
	TimeSlotID int64

	// Denormalized for daily numbering and operator views
	WorkingDayID int64

	// DailyNumber is unique within the working day, assigned at admission,
	// monotonically increasing and never reused
	DailyNumber int
	Status      OrderStatus

	// Ingredients is the immutable snapshot captured at creation time,
	// independent of the live ingredient catalog
	Ingredients []IngredientSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IngredientSnapshot is an ingredient captured into an order at creation time
type IngredientSnapshot struct {
	IngredientID int64
	Name         string
	Category     string
}

// IsPending returns true if the order is still awaiting confirmation
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsRejected returns true if the order is in the terminal rejected state
func (o *Order) IsRejected() bool {
	return o.Status == StatusRejected
}

// CountsAgainstCapacity returns true if the order occupies a spot in its slot
func (o *Order) CountsAgainstCapacity() bool {
	return o.Status != StatusRejected
}

// IsValidStatus returns true if s is one of the known order statuses
func IsValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusReady, StatusPickedUp, StatusRejected:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a status change from one status to another is allowed.
// A transition into pending is always forbidden (pending is the sole entry point),
// and rejected is terminal. Every other pair is permitted, including skips
// such as pending -> picked_up.
func CanTransition(from, to OrderStatus) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return false
	}
	if to == StatusPending {
		return false
	}
	if from == StatusRejected {
		return false
	}
	return true
}

package domain

import (
	"time"

	"github.com/v1adych/SWB-OrderService/pkg/types"
)

// DeadlineCandidate is a pending order joined with the slot timing data the
// deadline sweep needs to decide whether the order should auto-confirm
type DeadlineCandidate struct {
	OrderID         int64
	UserID          int64
	Date            time.Time
	SlotStart       types.TimeString
	DeadlineMinutes int
}

// DeadlineAt returns the moment after which the candidate auto-confirms
func (c *DeadlineCandidate) DeadlineAt(loc *time.Location) (time.Time, error) {
	start, err := c.SlotStart.At(c.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-time.Duration(c.DeadlineMinutes) * time.Minute), nil
}

package domain

import (
	"time"

	"github.com/v1adych/SWB-OrderService/pkg/types"
)

// WorkingDay is a single calendar day on which the service operates.
// There is at most one working day per calendar date. A working day is
// immutable once created; schedule changes go through delete-and-recreate.
type WorkingDay struct {
	ID              int64
	Date            time.Time // calendar date, time part is zero
	Location        string
	Capacity        int // max non-rejected orders per slot
	DeadlineMinutes int // minutes before slot start after which a pending order locks
	OpenTime        types.TimeString
	CloseTime       types.TimeString
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deadline returns the moment after which a pending order for a slot of this
// day can no longer be user-modified and becomes eligible for automatic
// confirmation: slot start minus the day's deadline minutes.
func (d *WorkingDay) Deadline(slot *TimeSlot, loc *time.Location) (time.Time, error) {
	start, err := slot.StartTime.At(d.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-time.Duration(d.DeadlineMinutes) * time.Minute), nil
}

// IsOnDate returns true if the working day falls on the same calendar date as t
func (d *WorkingDay) IsOnDate(t time.Time) bool {
	y1, m1, d1 := d.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

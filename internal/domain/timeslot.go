package domain

import (
	"errors"
	"fmt"

	"github.com/v1adych/SWB-OrderService/pkg/types"
)

// TimeSlot is a fixed-duration bookable interval within a working day.
// Slots are created only by slot generation right after the working day
// itself and are never mutated afterwards.
type TimeSlot struct {
	ID           int64
	WorkingDayID int64
	StartTime    types.TimeString
	EndTime      types.TimeString
}

var (
	// ErrInvalidWorkingHours is returned when open/close times cannot produce slots
	ErrInvalidWorkingHours = errors.New("domain: open time must be before close time")

	// ErrUnalignedWorkingHours is returned when open/close times are not multiples
	// of the slot duration; the generator never rounds on behalf of the caller
	ErrUnalignedWorkingHours = errors.New("domain: working hours are not aligned to slot duration")
)

// GenerateSlots expands a working day into its fixed-duration slots.
// One slot per duration-sized interval from open to close, the last slot
// ending at or before close; zero slots if the window is shorter than one
// duration. Pure function of its inputs; persistence-level uniqueness of
// (working day, start, end) makes repeated generation a no-op.
func GenerateSlots(day *WorkingDay, slotDurationMinutes int) ([]TimeSlot, error) {
	if slotDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: non-positive slot duration %d", ErrInvalidWorkingHours, slotDurationMinutes)
	}

	openMinutes, err := day.OpenTime.Minutes()
	if err != nil {
		return nil, err
	}
	closeMinutes, err := day.CloseTime.Minutes()
	if err != nil {
		return nil, err
	}

	if openMinutes >= closeMinutes {
		return nil, ErrInvalidWorkingHours
	}
	if openMinutes%slotDurationMinutes != 0 || closeMinutes%slotDurationMinutes != 0 {
		return nil, ErrUnalignedWorkingHours
	}

	slots := make([]TimeSlot, 0, (closeMinutes-openMinutes)/slotDurationMinutes)

	current := day.OpenTime
	for {
		end, err := current.AddMinutes(slotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(day.CloseTime) {
			break
		}

		slots = append(slots, TimeSlot{
			WorkingDayID: day.ID,
			StartTime:    current,
			EndTime:      end,
		})

		if !end.IsBefore(day.CloseTime) {
			break
		}
		current = end
	}

	return slots, nil
}

package apply_weekly_schedule

import (
	"fmt"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/pkg/types"
)

// validateRequest валидирует недельный шаблон
// Времена включенных дней должны парситься, идти по возрастанию
// и быть кратными длительности слота (генератор слотов не округляет)
func validateRequest(req *Request, slotDurationMinutes int) error {
	if req.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if len(req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location is too long, max %d", ErrInvalidInput, domain.MaxLocationLength)
	}

	if req.Capacity < domain.MinCapacityPerSlot || req.Capacity > domain.MaxCapacityPerSlot {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}

	if req.DeadlineMinutes < domain.MinDeadlineMinutes || req.DeadlineMinutes > domain.MaxDeadlineMinutes {
		return fmt.Errorf("%w: deadline minutes must be between %d and %d",
			ErrInvalidInput, domain.MinDeadlineMinutes, domain.MaxDeadlineMinutes)
	}

	for _, day := range req.weekdayTemplates() {
		if !day.Template.Enabled {
			continue
		}
		if err := validateDayTemplate(day.Weekday, day.Template, slotDurationMinutes); err != nil {
			return err
		}
	}

	return nil
}

func validateDayTemplate(weekday time.Weekday, tmpl DayTemplate, slotDurationMinutes int) error {
	openTime, err := types.NewTimeStringFromString(tmpl.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: %s open time: %v", ErrInvalidInput, weekday, err)
	}

	closeTime, err := types.NewTimeStringFromString(tmpl.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: %s close time: %v", ErrInvalidInput, weekday, err)
	}

	openMinutes, err := openTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s open time: %v", ErrInvalidInput, weekday, err)
	}
	closeMinutes, err := closeTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s close time: %v", ErrInvalidInput, weekday, err)
	}

	if openMinutes >= closeMinutes {
		return fmt.Errorf("%w: %s open time must be before close time", ErrInvalidInput, weekday)
	}

	if openMinutes%slotDurationMinutes != 0 || closeMinutes%slotDurationMinutes != 0 {
		return fmt.Errorf("%w: %s working hours must be aligned to %d-minute slots",
			ErrInvalidInput, weekday, slotDurationMinutes)
	}

	return nil
}

// nextOccurrence возвращает ближайшую дату с указанным днем недели
// строго после сегодняшней: сегодняшний день недели переносится на следующую неделю,
// сегодняшние и прошедшие дни никогда не затрагиваются
func nextOccurrence(now time.Time, weekday time.Weekday) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	daysAhead := (int(weekday) - int(today.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}

	return today.AddDate(0, 0, daysAhead)
}

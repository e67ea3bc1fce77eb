package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
	"github.com/v1adych/SWB-OrderService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubWorkingDayRepo struct {
	day *domain.WorkingDay
}

func (s *stubWorkingDayRepo) GetByDate(_ context.Context, date time.Time) (*domain.WorkingDay, error) {
	if s.day == nil {
		return nil, workingdayRepo.ErrWorkingDayNotFound
	}
	return s.day, nil
}

type stubTimeSlotRepo struct {
	slots []*domain.TimeSlot
}

func (s *stubTimeSlotRepo) ListByWorkingDay(_ context.Context, workingDayID int64) ([]*domain.TimeSlot, error) {
	return s.slots, nil
}

type stubOrderRepo struct {
	counts map[int64]int
}

func (s *stubOrderRepo) CountActiveBySlots(_ context.Context, slotIDs []int64) (map[int64]int, error) {
	return s.counts, nil
}

type stubTxManager struct {
	calls int
}

func (s *stubTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	day := &domain.WorkingDay{ID: 5, Date: date, Location: "Кафе на Тверской", Capacity: 3}
	slots := []*domain.TimeSlot{
		{ID: 10, WorkingDayID: 5, StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "10:30")},
		{ID: 11, WorkingDayID: 5, StartTime: mustTime(t, "10:30"), EndTime: mustTime(t, "11:00")},
		{ID: 12, WorkingDayID: 5, StartTime: mustTime(t, "11:00"), EndTime: mustTime(t, "11:30")},
	}

	t.Run("reports remaining spots per slot", func(t *testing.T) {
		txMgr := &stubTxManager{}
		uc := NewUseCase(
			&stubWorkingDayRepo{day: day},
			&stubTimeSlotRepo{slots: slots},
			&stubOrderRepo{counts: map[int64]int{10: 1, 11: 3}},
			txMgr,
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{Date: date})
		require.NoError(t, err)

		// Все чтения выполняются в одной read-only транзакции
		assert.Equal(t, 1, txMgr.calls)

		assert.Equal(t, "Кафе на Тверской", resp.Location)
		require.Len(t, resp.Slots, 3)

		assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
		assert.Equal(t, 0, resp.Slots[1].AvailableSpots)
		assert.Equal(t, 3, resp.Slots[2].AvailableSpots)

		for _, slot := range resp.Slots {
			assert.Equal(t, 3, slot.TotalSpots)
		}
	})

	t.Run("overbooked slot is floored at zero", func(t *testing.T) {
		uc := NewUseCase(
			&stubWorkingDayRepo{day: day},
			&stubTimeSlotRepo{slots: slots[:1]},
			&stubOrderRepo{counts: map[int64]int{10: 5}},
			&stubTxManager{},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{Date: date})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Slots[0].AvailableSpots)
	})

	t.Run("missing working day", func(t *testing.T) {
		uc := NewUseCase(
			&stubWorkingDayRepo{},
			&stubTimeSlotRepo{},
			&stubOrderRepo{},
			&stubTxManager{},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{Date: date})
		assert.ErrorIs(t, err, ErrWorkingDayNotFound)
	})

	t.Run("day without slots", func(t *testing.T) {
		uc := NewUseCase(
			&stubWorkingDayRepo{day: day},
			&stubTimeSlotRepo{},
			&stubOrderRepo{},
			&stubTxManager{},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{Date: date})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})
}

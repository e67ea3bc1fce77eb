package apply_weekly_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type stubWorkingDayRepo struct {
	days    map[string]*domain.WorkingDay
	nextID  int64
	deleted []string
}

func newStubWorkingDayRepo() *stubWorkingDayRepo {
	return &stubWorkingDayRepo{days: map[string]*domain.WorkingDay{}}
}

func (s *stubWorkingDayRepo) key(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (s *stubWorkingDayRepo) Create(_ context.Context, day *domain.WorkingDay) (*domain.WorkingDay, error) {
	s.nextID++
	out := *day
	out.ID = s.nextID
	s.days[s.key(day.Date)] = &out
	return &out, nil
}

func (s *stubWorkingDayRepo) GetByDate(_ context.Context, date time.Time) (*domain.WorkingDay, error) {
	day, ok := s.days[s.key(date)]
	if !ok {
		return nil, workingdayRepo.ErrWorkingDayNotFound
	}
	return day, nil
}

func (s *stubWorkingDayRepo) ExistsByDate(_ context.Context, date time.Time) (bool, error) {
	_, ok := s.days[s.key(date)]
	return ok, nil
}

func (s *stubWorkingDayRepo) DeleteByDate(_ context.Context, date time.Time) error {
	delete(s.days, s.key(date))
	s.deleted = append(s.deleted, s.key(date))
	return nil
}

type stubTimeSlotRepo struct {
	batches [][]domain.TimeSlot
}

func (s *stubTimeSlotRepo) CreateBatch(_ context.Context, slots []domain.TimeSlot) (int, error) {
	s.batches = append(s.batches, slots)
	return len(slots), nil
}

type stubOrderRepo struct {
	countByDay map[int64]int
}

func (s *stubOrderRepo) CountByWorkingDay(_ context.Context, workingDayID int64) (int, error) {
	return s.countByDay[workingDayID], nil
}

func TestNextOccurrence(t *testing.T) {
	// Вторник 1 сентября 2026
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, now.Weekday())

	t.Run("future weekday this week", func(t *testing.T) {
		got := nextOccurrence(now, time.Friday)
		assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("today moves to next week", func(t *testing.T) {
		got := nextOccurrence(now, time.Tuesday)
		assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("passed weekday moves to next week", func(t *testing.T) {
		got := nextOccurrence(now, time.Monday)
		assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("result is always strictly in the future", func(t *testing.T) {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			got := nextOccurrence(now, wd)
			assert.True(t, got.After(now.Truncate(24*time.Hour)), "weekday=%s date=%s", wd, got)
			assert.Equal(t, wd, got.Weekday())
		}
	})
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	// Вторник 1 сентября 2026
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	baseRequest := func() *Request {
		return &Request{
			Location:        "Кафе на Тверской",
			Capacity:        5,
			DeadlineMinutes: 30,
			Monday:          DayTemplate{Enabled: true, OpenTime: "10:00", CloseTime: "18:00"},
			Wednesday:       DayTemplate{Enabled: true, OpenTime: "10:00", CloseTime: "12:00"},
		}
	}

	newTestUseCase := func(dayRepo *stubWorkingDayRepo, slotRepo *stubTimeSlotRepo, orderRepo *stubOrderRepo) *UseCase {
		return NewUseCase(
			dayRepo,
			slotRepo,
			orderRepo,
			stubTxManager{},
			fixedTimeProvider{now: now},
			30,
			time.UTC,
			nopLogger{},
		)
	}

	t.Run("creates enabled days with slots", func(t *testing.T) {
		dayRepo := newStubWorkingDayRepo()
		slotRepo := &stubTimeSlotRepo{}
		uc := newTestUseCase(dayRepo, slotRepo, &stubOrderRepo{})

		resp, err := uc.Execute(ctx, baseRequest())
		require.NoError(t, err)

		assert.Equal(t, 2, resp.DaysCreated)
		assert.Equal(t, 0, resp.DaysDeleted)
		require.Len(t, resp.Days, 7)

		// Monday -> 7 сентября, Wednesday -> 2 сентября
		monday := resp.Days[0]
		assert.Equal(t, ActionCreated, monday.Action)
		assert.Equal(t, "2026-09-07", monday.Date.Format(domain.DateFormat))
		assert.Equal(t, 16, monday.SlotsCreated)

		wednesday := resp.Days[2]
		assert.Equal(t, ActionCreated, wednesday.Action)
		assert.Equal(t, "2026-09-02", wednesday.Date.Format(domain.DateFormat))
		assert.Equal(t, 4, wednesday.SlotsCreated)

		// Выключенные дни без существующих дат не тронуты
		assert.Equal(t, ActionUntouched, resp.Days[1].Action)

		created, err := dayRepo.GetByDate(ctx, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, created.IsActive)
		assert.Equal(t, "Кафе на Тверской", created.Location)
	})

	t.Run("existing enabled day is kept untouched", func(t *testing.T) {
		dayRepo := newStubWorkingDayRepo()
		existing := &domain.WorkingDay{
			Date:     time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			Capacity: 99,
		}
		_, err := dayRepo.Create(ctx, existing)
		require.NoError(t, err)

		slotRepo := &stubTimeSlotRepo{}
		uc := newTestUseCase(dayRepo, slotRepo, &stubOrderRepo{})

		resp, err := uc.Execute(ctx, baseRequest())
		require.NoError(t, err)

		assert.Equal(t, ActionKept, resp.Days[0].Action)
		assert.Equal(t, 1, resp.DaysCreated)

		// Существующий день не перезаписан шаблоном
		kept, err := dayRepo.GetByDate(ctx, existing.Date)
		require.NoError(t, err)
		assert.Equal(t, 99, kept.Capacity)
	})

	t.Run("disabled day with orders is deleted destructively", func(t *testing.T) {
		dayRepo := newStubWorkingDayRepo()
		// Пятница 4 сентября существует, но в шаблоне выключена
		existing, err := dayRepo.Create(ctx, &domain.WorkingDay{
			Date: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		orderRepo := &stubOrderRepo{countByDay: map[int64]int{existing.ID: 3}}
		uc := newTestUseCase(dayRepo, &stubTimeSlotRepo{}, orderRepo)

		resp, err := uc.Execute(ctx, baseRequest())
		require.NoError(t, err)

		friday := resp.Days[4]
		assert.Equal(t, ActionDeleted, friday.Action)
		assert.Equal(t, 3, friday.OrdersDeleted)
		assert.Equal(t, 1, resp.DaysDeleted)
		assert.Equal(t, 3, resp.OrdersDeleted)
		assert.Contains(t, dayRepo.deleted, "2026-09-04")
	})

	t.Run("invalid template is rejected before any writes", func(t *testing.T) {
		dayRepo := newStubWorkingDayRepo()
		uc := newTestUseCase(dayRepo, &stubTimeSlotRepo{}, &stubOrderRepo{})

		req := baseRequest()
		req.Monday.OpenTime = "10:15" // не кратно 30 минутам

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, dayRepo.days)
	})

	t.Run("capacity out of bounds", func(t *testing.T) {
		uc := newTestUseCase(newStubWorkingDayRepo(), &stubTimeSlotRepo{}, &stubOrderRepo{})

		req := baseRequest()
		req.Capacity = 0

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

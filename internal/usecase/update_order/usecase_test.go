package update_order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
	"github.com/v1adych/SWB-OrderService/pkg/types"
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

type stubOrderRepo struct {
	order    *domain.Order
	replaced []domain.IngredientSnapshot
}

func (s *stubOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	return s.order, nil
}

func (s *stubOrderRepo) ReplaceIngredients(_ context.Context, orderID int64, ingredients []domain.IngredientSnapshot) error {
	s.replaced = ingredients
	return nil
}

type stubTimeSlotRepo struct {
	slot *domain.TimeSlot
}

func (s *stubTimeSlotRepo) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	return s.slot, nil
}

type stubWorkingDayRepo struct {
	day *domain.WorkingDay
}

func (s *stubWorkingDayRepo) GetByID(_ context.Context, id int64) (*domain.WorkingDay, error) {
	return s.day, nil
}

type stubIngredientClient struct {
	ingredients []ingredientservice.Ingredient
}

func (s *stubIngredientClient) GetIngredients(_ context.Context, ids []int64) ([]ingredientservice.Ingredient, error) {
	return s.ingredients, nil
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	loc := time.UTC

	// Слот 12:00, дедлайн 30 минут -> заказ можно менять строго до 11:30
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	slot := &domain.TimeSlot{ID: 10, WorkingDayID: 5, StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "12:30")}
	day := &domain.WorkingDay{ID: 5, Date: date, Capacity: 5, DeadlineMinutes: 30}

	ingredients := []ingredientservice.Ingredient{
		{ID: 1, Name: "Багет", Category: "bread", IsAvailable: true},
		{ID: 5, Name: "Тунец", Category: "fish", IsAvailable: true},
	}

	newUseCase := func(order *domain.Order, now time.Time) (*UseCase, *stubOrderRepo) {
		repo := &stubOrderRepo{order: order}
		return NewUseCase(
			repo,
			&stubTimeSlotRepo{slot: slot},
			&stubWorkingDayRepo{day: day},
			&stubIngredientClient{ingredients: ingredients},
			stubTxManager{},
			fixedTimeProvider{now: now},
			loc,
			nopLogger{},
		), repo
	}

	pendingOrder := func() *domain.Order {
		return &domain.Order{
			ID:           1,
			UserID:       42,
			TimeSlotID:   10,
			WorkingDayID: 5,
			DailyNumber:  3,
			Status:       domain.StatusPending,
			Ingredients: []domain.IngredientSnapshot{
				{IngredientID: 1, Name: "Багет", Category: "bread"},
			},
		}
	}

	t.Run("replaces ingredients before deadline", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 11, 29, 0, 0, time.UTC)
		uc, repo := newUseCase(pendingOrder(), now)

		resp, err := uc.Execute(ctx, &Request{OrderID: 1, UserID: 42, IngredientIDs: []int64{1, 5}})
		require.NoError(t, err)

		require.Len(t, repo.replaced, 2)
		assert.Equal(t, "Тунец", repo.replaced[1].Name)
		assert.Equal(t, 3, resp.DailyNumber)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
	})

	t.Run("rejected exactly at deadline", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 11, 30, 0, 0, time.UTC)
		uc, repo := newUseCase(pendingOrder(), now)

		_, err := uc.Execute(ctx, &Request{OrderID: 1, UserID: 42, IngredientIDs: []int64{1, 5}})
		assert.ErrorIs(t, err, ErrOrderNotModifiable)
		assert.Nil(t, repo.replaced)
	})

	t.Run("rejected after deadline", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 11, 45, 0, 0, time.UTC)
		uc, _ := newUseCase(pendingOrder(), now)

		_, err := uc.Execute(ctx, &Request{OrderID: 1, UserID: 42, IngredientIDs: []int64{1, 5}})
		assert.ErrorIs(t, err, ErrOrderNotModifiable)
	})

	t.Run("only owner can modify", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		uc, _ := newUseCase(pendingOrder(), now)

		_, err := uc.Execute(ctx, &Request{OrderID: 1, UserID: 99, IngredientIDs: []int64{1, 5}})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("confirmed order is not modifiable", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		order := pendingOrder()
		order.Status = domain.StatusConfirmed
		uc, _ := newUseCase(order, now)

		_, err := uc.Execute(ctx, &Request{OrderID: 1, UserID: 42, IngredientIDs: []int64{1, 5}})
		assert.ErrorIs(t, err, ErrOrderNotModifiable)
	})

	t.Run("new selection is validated", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		uc, repo := newUseCase(pendingOrder(), now)
		uc.ingredientClient = &stubIngredientClient{ingredients: []ingredientservice.Ingredient{
			{ID: 5, Name: "Тунец", Category: "fish", IsAvailable: true},
		}}

		_, err := uc.Execute(ctx, &Request{OrderID: 1, UserID: 42, IngredientIDs: []int64{5}})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, repo.replaced)
	})
}

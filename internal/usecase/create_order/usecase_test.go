package create_order

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
	"github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
	"github.com/v1adych/SWB-OrderService/pkg/dbmetrics"
	"github.com/v1adych/SWB-OrderService/pkg/txmanager"
	"github.com/v1adych/SWB-OrderService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubOrderRepo struct {
	activeBySlot map[int64]int
	maxNumber    map[int64]int
	created      []*domain.Order
}

func (s *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	out := *o
	out.ID = int64(len(s.created) + 1)
	s.created = append(s.created, &out)
	s.activeBySlot[o.TimeSlotID]++
	s.maxNumber[o.WorkingDayID] = o.DailyNumber
	return &out, nil
}

func (s *stubOrderRepo) CountActiveBySlot(_ context.Context, timeSlotID int64) (int, error) {
	return s.activeBySlot[timeSlotID], nil
}

func (s *stubOrderRepo) MaxDailyNumber(_ context.Context, workingDayID int64) (int, error) {
	return s.maxNumber[workingDayID], nil
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

type fakeTx struct{}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

type fakeTxBeginner struct{}

func (fakeTxBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return &fakeTx{}, nil
}

// contendedWorkingDayRepo имитирует заявку, проигравшую гонку за строку дня:
// первое чтение падает с serialization failure, повтор видит день
type contendedWorkingDayRepo struct {
	day   *domain.WorkingDay
	calls int
}

func (s *contendedWorkingDayRepo) GetByID(_ context.Context, id int64) (*domain.WorkingDay, error) {
	s.calls++
	if s.calls == 1 {
		return nil, fmt.Errorf("%w: getOne - scan working day: %w",
			workingdayRepo.ErrScanRow, &pq.Error{Code: "40001"})
	}
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

func validIngredients() []ingredientservice.Ingredient {
	return []ingredientservice.Ingredient{
		{ID: 1, Name: "Багет", Category: "bread", IsAvailable: true},
		{ID: 2, Name: "Ветчина", Category: "meat", IsAvailable: true},
		{ID: 3, Name: "Сыр", Category: "cheese", IsAvailable: true},
	}
}

func newTestUseCase(t *testing.T, capacity int, ingredients []ingredientservice.Ingredient) (*UseCase, *stubOrderRepo) {
	t.Helper()

	orderRepo := &stubOrderRepo{
		activeBySlot: map[int64]int{},
		maxNumber:    map[int64]int{},
	}
	slotRepo := &stubTimeSlotRepo{
		slot: &domain.TimeSlot{ID: 10, WorkingDayID: 5, StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "12:30")},
	}
	dayRepo := &stubWorkingDayRepo{
		day: &domain.WorkingDay{ID: 5, Capacity: capacity, DeadlineMinutes: 30},
	}

	return NewUseCase(
		orderRepo,
		slotRepo,
		dayRepo,
		&stubIngredientClient{ingredients: ingredients},
		stubTxManager{},
		nopLogger{},
	), orderRepo
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending order with first daily number", func(t *testing.T) {
		uc, _ := newTestUseCase(t, 5, validIngredients())

		resp, err := uc.Execute(ctx, &Request{UserID: 42, TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, 1, resp.DailyNumber)
		assert.Equal(t, int64(42), resp.UserID)
		assert.Equal(t, "12:00", resp.StartTime.String())
		require.Len(t, resp.Ingredients, 3)
		assert.Equal(t, "Багет", resp.Ingredients[0].Name)
	})

	t.Run("daily numbers are sequential", func(t *testing.T) {
		uc, _ := newTestUseCase(t, 5, validIngredients())

		for want := 1; want <= 3; want++ {
			resp, err := uc.Execute(ctx, &Request{UserID: int64(want), TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
			require.NoError(t, err)
			assert.Equal(t, want, resp.DailyNumber)
		}
	})

	t.Run("slot full", func(t *testing.T) {
		uc, _ := newTestUseCase(t, 1, validIngredients())

		_, err := uc.Execute(ctx, &Request{UserID: 1, TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, &Request{UserID: 2, TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
		assert.ErrorIs(t, err, ErrSlotFull)
	})

	t.Run("no bread in selection", func(t *testing.T) {
		ingredients := []ingredientservice.Ingredient{
			{ID: 2, Name: "Ветчина", Category: "meat", IsAvailable: true},
		}
		uc, repo := newTestUseCase(t, 5, ingredients)

		_, err := uc.Execute(ctx, &Request{UserID: 1, TimeSlotID: 10, IngredientIDs: []int64{2}})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, repo.created)
	})

	t.Run("two breads in selection", func(t *testing.T) {
		ingredients := []ingredientservice.Ingredient{
			{ID: 1, Name: "Багет", Category: "bread", IsAvailable: true},
			{ID: 4, Name: "Чиабатта", Category: "bread", IsAvailable: true},
		}
		uc, _ := newTestUseCase(t, 5, ingredients)

		_, err := uc.Execute(ctx, &Request{UserID: 1, TimeSlotID: 10, IngredientIDs: []int64{1, 4}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate ingredient", func(t *testing.T) {
		ingredients := []ingredientservice.Ingredient{
			{ID: 1, Name: "Багет", Category: "bread", IsAvailable: true},
			{ID: 1, Name: "Багет", Category: "bread", IsAvailable: true},
		}
		uc, _ := newTestUseCase(t, 5, ingredients)

		_, err := uc.Execute(ctx, &Request{UserID: 1, TimeSlotID: 10, IngredientIDs: []int64{1, 1}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unavailable ingredient", func(t *testing.T) {
		ingredients := []ingredientservice.Ingredient{
			{ID: 1, Name: "Багет", Category: "bread", IsAvailable: true},
			{ID: 2, Name: "Ветчина", Category: "meat", IsAvailable: false},
		}
		uc, _ := newTestUseCase(t, 5, ingredients)

		_, err := uc.Execute(ctx, &Request{UserID: 1, TimeSlotID: 10, IngredientIDs: []int64{1, 2}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty selection", func(t *testing.T) {
		uc, _ := newTestUseCase(t, 5, nil)

		_, err := uc.Execute(ctx, &Request{UserID: 1, TimeSlotID: 10})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("invalid user id", func(t *testing.T) {
		uc, _ := newTestUseCase(t, 5, validIngredients())

		_, err := uc.Execute(ctx, &Request{UserID: 0, TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("loser of a race for the last spot is retried and sees the slot full", func(t *testing.T) {
		// Две конкурентные заявки на последнее место: победитель закоммитил
		// заказ, проигравшая транзакция получила serialization failure на
		// чтении дня. Менеджер повторяет ее, и повтор видит занятый слот
		orderRepo := &stubOrderRepo{
			activeBySlot: map[int64]int{10: 1},
			maxNumber:    map[int64]int{5: 1},
		}
		slotRepo := &stubTimeSlotRepo{
			slot: &domain.TimeSlot{ID: 10, WorkingDayID: 5, StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "12:30")},
		}
		dayRepo := &contendedWorkingDayRepo{
			day: &domain.WorkingDay{ID: 5, Capacity: 1, DeadlineMinutes: 30},
		}

		uc := NewUseCase(
			orderRepo,
			slotRepo,
			dayRepo,
			&stubIngredientClient{ingredients: validIngredients()},
			txmanager.NewTransactionManager(fakeTxBeginner{}),
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{UserID: 7, TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
		assert.ErrorIs(t, err, ErrSlotFull)
		assert.Equal(t, 2, dayRepo.calls)
		assert.Empty(t, orderRepo.created)
	})

	t.Run("rejected orders free their spot", func(t *testing.T) {
		uc, repo := newTestUseCase(t, 1, validIngredients())

		_, err := uc.Execute(ctx, &Request{UserID: 1, TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
		require.NoError(t, err)

		// Оператор отклонил заказ: место снова свободно, номер дня не переиспользуется
		repo.activeBySlot[10]--

		resp, err := uc.Execute(ctx, &Request{UserID: 2, TimeSlotID: 10, IngredientIDs: []int64{1, 2, 3}})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.DailyNumber)
	})
}

package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	orderRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/order"
	"github.com/v1adych/SWB-OrderService/internal/integrations/userservice"
	"github.com/v1adych/SWB-OrderService/internal/service/orders/models"
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

// Production-провайдер времени живет в этом пакете и должен
// удовлетворять контракту
var _ TimeProvider = (*RealTimeProvider)(nil)

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type stubOrderRepo struct {
	orders  map[int64]*domain.Order
	deleted []int64
}

func (s *stubOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) GetByUserID(_ context.Context, userID int64, status *domain.OrderStatus) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.UserID != userID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOrderRepo) ListByWorkingDay(_ context.Context, workingDayID int64) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.WorkingDayID == workingDayID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	s.orders[id].Status = status
	return nil
}

func (s *stubOrderRepo) Delete(_ context.Context, id int64) error {
	delete(s.orders, id)
	s.deleted = append(s.deleted, id)
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

func (s *stubWorkingDayRepo) GetByDate(_ context.Context, date time.Time) (*domain.WorkingDay, error) {
	return s.day, nil
}

type stubUserClient struct {
	users map[int64]*userservice.User
}

func (s *stubUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return u, nil
}

const (
	ownerID    = int64(42)
	operatorID = int64(100)
	strangerID = int64(7)
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newTestService(t *testing.T, now time.Time, orders map[int64]*domain.Order) (*Service, *stubOrderRepo) {
	t.Helper()

	repo := &stubOrderRepo{orders: orders}
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	svc := NewService(
		repo,
		&stubTimeSlotRepo{slot: &domain.TimeSlot{
			ID: 10, WorkingDayID: 5,
			StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "12:30"),
		}},
		&stubWorkingDayRepo{day: &domain.WorkingDay{ID: 5, Date: date, Capacity: 5, DeadlineMinutes: 30}},
		&stubUserClient{users: map[int64]*userservice.User{
			ownerID:    {ID: ownerID, Name: "Вася", IsOperator: false},
			operatorID: {ID: operatorID, Name: "Оператор", IsOperator: true},
			strangerID: {ID: strangerID, Name: "Петя", IsOperator: false},
		}},
		stubTxManager{},
		fixedTimeProvider{now: now},
		time.UTC,
		nopLogger{},
	)
	return svc, repo
}

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:           1,
		UserID:       ownerID,
		TimeSlotID:   10,
		WorkingDayID: 5,
		DailyNumber:  1,
		Status:       domain.StatusPending,
	}
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("owner sees own order", func(t *testing.T) {
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		resp, err := svc.GetByID(ctx, 1, ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("operator sees any order", func(t *testing.T) {
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		_, err := svc.GetByID(ctx, 1, operatorID)
		require.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		_, err := svc.GetByID(ctx, 1, strangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing order", func(t *testing.T) {
		svc, _ := newTestService(t, now, map[int64]*domain.Order{})

		_, err := svc.GetByID(ctx, 1, ownerID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("operator confirms pending order", func(t *testing.T) {
		svc, repo := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		resp, err := svc.ChangeStatus(ctx, 1, &models.ChangeStatusRequest{UserID: operatorID, Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.orders[1].Status)
	})

	t.Run("skip to picked_up is allowed", func(t *testing.T) {
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		resp, err := svc.ChangeStatus(ctx, 1, &models.ChangeStatusRequest{UserID: operatorID, Status: "picked_up"})
		require.NoError(t, err)
		assert.Equal(t, "picked_up", resp.Status)
	})

	t.Run("transition into pending is rejected", func(t *testing.T) {
		order := pendingOrder()
		order.Status = domain.StatusConfirmed
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: order})

		_, err := svc.ChangeStatus(ctx, 1, &models.ChangeStatusRequest{UserID: operatorID, Status: "pending"})
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		order := pendingOrder()
		order.Status = domain.StatusRejected
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: order})

		_, err := svc.ChangeStatus(ctx, 1, &models.ChangeStatusRequest{UserID: operatorID, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
	})

	t.Run("non-operator is denied", func(t *testing.T) {
		svc, repo := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		_, err := svc.ChangeStatus(ctx, 1, &models.ChangeStatusRequest{UserID: ownerID, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.StatusPending, repo.orders[1].Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		_, err := svc.ChangeStatus(ctx, 1, &models.ChangeStatusRequest{UserID: operatorID, Status: "cooking"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes pending order before deadline", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 11, 29, 0, 0, time.UTC)
		svc, repo := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		require.NoError(t, svc.Delete(ctx, 1, ownerID))
		assert.Contains(t, repo.deleted, int64(1))
	})

	t.Run("deletion after deadline is rejected", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 11, 30, 0, 0, time.UTC)
		svc, repo := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		err := svc.Delete(ctx, 1, ownerID)
		assert.ErrorIs(t, err, ErrOrderNotModifiable)
		assert.Empty(t, repo.deleted)
	})

	t.Run("confirmed order cannot be deleted", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		order := pendingOrder()
		order.Status = domain.StatusConfirmed
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: order})

		err := svc.Delete(ctx, 1, ownerID)
		assert.ErrorIs(t, err, ErrOrderNotModifiable)
	})

	t.Run("only owner can delete", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		svc, _ := newTestService(t, now, map[int64]*domain.Order{1: pendingOrder()})

		err := svc.Delete(ctx, 1, operatorID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_GetUserOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	orders := map[int64]*domain.Order{
		1: {ID: 1, UserID: ownerID, WorkingDayID: 5, Status: domain.StatusPending},
		2: {ID: 2, UserID: ownerID, WorkingDayID: 5, Status: domain.StatusConfirmed},
		3: {ID: 3, UserID: strangerID, WorkingDayID: 5, Status: domain.StatusPending},
	}

	t.Run("user sees own orders", func(t *testing.T) {
		svc, _ := newTestService(t, now, orders)

		resp, err := svc.GetUserOrders(ctx, &models.GetUserOrdersRequest{UserID: ownerID, RequesterID: ownerID})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("status filter", func(t *testing.T) {
		svc, _ := newTestService(t, now, orders)
		status := "pending"

		resp, err := svc.GetUserOrders(ctx, &models.GetUserOrdersRequest{
			UserID: ownerID, RequesterID: ownerID, Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("operator sees others history", func(t *testing.T) {
		svc, _ := newTestService(t, now, orders)

		resp, err := svc.GetUserOrders(ctx, &models.GetUserOrdersRequest{UserID: ownerID, RequesterID: operatorID})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("stranger cannot see others history", func(t *testing.T) {
		svc, _ := newTestService(t, now, orders)

		_, err := svc.GetUserOrders(ctx, &models.GetUserOrdersRequest{UserID: ownerID, RequesterID: strangerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_GetDayOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	orders := map[int64]*domain.Order{
		1: {ID: 1, UserID: ownerID, WorkingDayID: 5, DailyNumber: 1, Status: domain.StatusPending},
		2: {ID: 2, UserID: strangerID, WorkingDayID: 5, DailyNumber: 2, Status: domain.StatusConfirmed},
	}

	t.Run("operator sees all day orders", func(t *testing.T) {
		svc, _ := newTestService(t, now, orders)

		resp, err := svc.GetDayOrders(ctx, &models.GetDayOrdersRequest{Date: date, UserID: operatorID})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		svc, _ := newTestService(t, now, orders)

		_, err := svc.GetDayOrders(ctx, &models.GetDayOrdersRequest{Date: date, UserID: ownerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	orderRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/order"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
	userClient "github.com/v1adych/SWB-OrderService/internal/integrations/userservice"
	"github.com/v1adych/SWB-OrderService/internal/service/orders/models"
)

// Service сервис для работы с заказами
type Service struct {
	orderRepo      OrderRepository
	timeSlotRepo   TimeSlotRepository
	workingDayRepo WorkingDayRepository
	userClient     UserServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	location       *time.Location
	logger         Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	timeSlotRepo TimeSlotRepository,
	workingDayRepo WorkingDayRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:      orderRepo,
		timeSlotRepo:   timeSlotRepo,
		workingDayRepo: workingDayRepo,
		userClient:     userClient,
		txManager:      txManager,
		timeProvider:   timeProvider,
		location:       location,
		logger:         logger,
	}
}

// GetByID получает заказ по ID
// Проверяет права доступа - пользователь может видеть только свой заказ
// или если он является оператором
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d", id, userID)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, order, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to order id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched order id=%d", id)
	return models.FromDomainOrder(order), nil
}

// GetUserOrders получает историю заказов пользователя
// Опционально фильтрует по статусу. Чужую историю может смотреть только оператор
func (s *Service) GetUserOrders(ctx context.Context, req *models.GetUserOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetUserOrders: fetching orders for user=%d, requester=%d, status=%v",
		req.UserID, req.RequesterID, req.Status)

	if req.RequesterID != req.UserID {
		if err := s.checkOperatorAccess(ctx, req.RequesterID); err != nil {
			s.logger.Warn("GetUserOrders: access denied for requester=%d to orders of user=%d",
				req.RequesterID, req.UserID)
			return nil, err
		}
	}

	// Конвертируем статус из строки в domain.OrderStatus
	var domainStatus *domain.OrderStatus
	if req.Status != nil {
		status, err := models.ToDomainOrderStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserOrders: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		domainStatus = &status
	}

	orders, err := s.orderRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserOrders: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserOrders: successfully fetched %d orders for user=%d", len(orders), req.UserID)
	return models.FromDomainOrderList(orders), nil
}

// GetDayOrders получает все заказы рабочего дня, отсортированные по дневному номеру
// Доступно только операторам
func (s *Service) GetDayOrders(ctx context.Context, req *models.GetDayOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetDayOrders: fetching orders for date=%s, user=%d",
		req.Date.Format(domain.DateFormat), req.UserID)

	if err := s.checkOperatorAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("GetDayOrders: access denied for user=%d", req.UserID)
		return nil, err
	}

	day, err := s.workingDayRepo.GetByDate(ctx, req.Date)
	if err != nil {
		if errors.Is(err, workingdayRepo.ErrWorkingDayNotFound) {
			s.logger.Warn("GetDayOrders: working day %s not found", req.Date.Format(domain.DateFormat))
			return nil, ErrWorkingDayNotFound
		}
		s.logger.Error("GetDayOrders: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayOrders - repository error: %v", ErrInternal, err)
	}

	orders, err := s.orderRepo.ListByWorkingDay(ctx, day.ID)
	if err != nil {
		s.logger.Error("GetDayOrders: repository error for day id=%d: %v", day.ID, err)
		return nil, fmt.Errorf("%w: GetDayOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayOrders: successfully fetched %d orders for date=%s",
		len(orders), req.Date.Format(domain.DateFormat))
	return models.FromDomainOrderList(orders), nil
}

// ChangeStatus меняет статус заказа
// Доступно только операторам. Переход проверяется внутри транзакции
// по актуальному статусу заказа: перевод в pending и любой переход из
// rejected запрещены, все остальные пары допустимы
func (s *Service) ChangeStatus(ctx context.Context, orderID int64, req *models.ChangeStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("ChangeStatus: updating order id=%d to status=%s by user=%d",
		orderID, req.Status, req.UserID)

	// Валидируем и конвертируем статус до транзакции
	newStatus, err := models.ToDomainOrderStatus(req.Status)
	if err != nil {
		s.logger.Warn("ChangeStatus: invalid status=%s for order id=%d", req.Status, orderID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Проверяем права доступа (только оператор)
	if err := s.checkOperatorAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("ChangeStatus: access denied for user=%d to order id=%d", req.UserID, orderID)
		return nil, err
	}

	var order *domain.Order
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем строку заказа: переход валидируется по статусу,
		// который видит именно эта транзакция
		order, err = s.orderRepo.GetByID(txCtx, orderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
		}

		if !domain.CanTransition(order.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, order.Status, newStatus)
		}

		if err := s.orderRepo.UpdateStatus(txCtx, orderID, newStatus); err != nil {
			return fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
		}

		order.Status = newStatus
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrOrderNotFound) || errors.Is(txErr, ErrInvalidStateTransition) {
			s.logger.Warn("ChangeStatus: order id=%d: %v", orderID, txErr)
			return nil, txErr
		}
		s.logger.Error("ChangeStatus: transaction failed for order id=%d: %v", orderID, txErr)
		if errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: ChangeStatus - transaction failed: %v", ErrInternal, txErr)
	}

	s.logger.Info("ChangeStatus: successfully updated order id=%d to status=%s", orderID, newStatus)
	return models.FromDomainOrder(order), nil
}

// Delete удаляет заказ
// Пользователь может удалить только свой заказ, пока тот в статусе pending
// и дедлайн слота ещё не наступил. Дневной номер удалённого заказа не переиспользуется
func (s *Service) Delete(ctx context.Context, orderID int64, userID int64) error {
	s.logger.Info("Delete: deleting order id=%d by user=%d", orderID, userID)

	now := s.timeProvider.Now().In(s.location)

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.GetByID(txCtx, orderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		// Удалять заказ может только его владелец
		if order.UserID != userID {
			return ErrAccessDenied
		}

		if !order.IsPending() {
			return fmt.Errorf("%w: status=%s", ErrOrderNotModifiable, order.Status)
		}

		deadline, err := s.orderDeadline(txCtx, order)
		if err != nil {
			return err
		}

		if !now.Before(deadline) {
			return fmt.Errorf("%w: deadline passed at %s", ErrOrderNotModifiable, deadline.Format(time.RFC3339))
		}

		if err := s.orderRepo.Delete(txCtx, orderID); err != nil {
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrOrderNotFound) || errors.Is(txErr, ErrAccessDenied) || errors.Is(txErr, ErrOrderNotModifiable) {
			s.logger.Warn("Delete: order id=%d: %v", orderID, txErr)
			return txErr
		}
		s.logger.Error("Delete: transaction failed for order id=%d: %v", orderID, txErr)
		if errors.Is(txErr, ErrInternal) {
			return txErr
		}
		return fmt.Errorf("%w: Delete - transaction failed: %v", ErrInternal, txErr)
	}

	s.logger.Info("Delete: successfully deleted order id=%d", orderID)
	return nil
}

// Вспомогательные методы

// orderDeadline вычисляет дедлайн изменения заказа: начало слота минус дедлайн дня
func (s *Service) orderDeadline(ctx context.Context, order *domain.Order) (time.Time, error) {
	slot, err := s.timeSlotRepo.GetByID(ctx, order.TimeSlotID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: orderDeadline - failed to get slot: %v", ErrInternal, err)
	}

	day, err := s.workingDayRepo.GetByID(ctx, order.WorkingDayID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: orderDeadline - failed to get working day: %v", ErrInternal, err)
	}

	deadline, err := day.Deadline(slot, s.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: orderDeadline - failed to compute deadline: %v", ErrInternal, err)
	}

	return deadline, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к заказу
// Пользователь может видеть свой заказ или если он оператор
func (s *Service) checkUserAccess(ctx context.Context, order *domain.Order, userID int64) error {
	// Если пользователь владелец заказа - доступ разрешён
	if order.UserID == userID {
		return nil
	}

	if err := s.checkOperatorAccess(ctx, userID); err != nil {
		// Ошибка уже залогирована в checkOperatorAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOperatorAccess проверяет, что пользователь является оператором
func (s *Service) checkOperatorAccess(ctx context.Context, userID int64) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkOperatorAccess: user id=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkOperatorAccess: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkOperatorAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsOperator {
		s.logger.Warn("checkOperatorAccess: user=%d is not an operator", userID)
		return ErrAccessDenied
	}

	s.logger.Info("checkOperatorAccess: user=%d is operator", userID)
	return nil
}

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/pkg/dbmetrics"
	"github.com/v1adych/SWB-OrderService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с заказами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый заказ вместе со снапшотами ингредиентов
// Должен вызываться внутри транзакции приема заказа: daily_number
// вычисляется вызывающей стороной под блокировкой рабочего дня,
// уникальность (working_day_id, daily_number) — страховка на случай гонки.
func (r *Repository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"user_id",
			"time_slot_id",
			"working_day_id",
			"daily_number",
			"status",
		).
		Values(
			o.UserID,
			o.TimeSlotID,
			o.WorkingDayID,
			o.DailyNumber,
			o.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Сохраняем pq-ошибку в цепочке: по ней txmanager решает повторить транзакцию
			return nil, fmt.Errorf("%w: day=%d number=%d: %w", ErrDailyNumberTaken, o.WorkingDayID, o.DailyNumber, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	if err := r.insertIngredients(ctx, executor, o.ID, o.Ingredients); err != nil {
		return nil, err
	}

	return o, nil
}

// GetByID получает заказ по ID вместе со снапшотами ингредиентов
// Внутри транзакции строка заказа блокируется FOR UPDATE: проверка
// допустимости изменения и само изменение идут в одной транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"time_slot_id",
		"working_day_id",
		"daily_number",
		"status",
		"created_at",
		"updated_at",
	).
		From("orders").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.Order
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.UserID,
		&o.TimeSlotID,
		&o.WorkingDayID,
		&o.DailyNumber,
		&o.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %w", ErrScanRow, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	ingredients, err := r.loadIngredients(ctx, executor, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Ingredients = ingredients[o.ID]

	return &o, nil
}

// GetByUserID получает список заказов пользователя, опционально фильтруя по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.OrderStatus) ([]*domain.Order, error) {
	selectBuilder := r.selectOrders().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.queryOrders(ctx, selectBuilder, "GetByUserID")
}

// ListByWorkingDay получает все заказы рабочего дня в порядке daily_number
// Используется для операторского списка заказов дня
func (r *Repository) ListByWorkingDay(ctx context.Context, workingDayID int64) ([]*domain.Order, error) {
	selectBuilder := r.selectOrders().
		Where(squirrel.Eq{"working_day_id": workingDayID}).
		OrderBy("daily_number ASC")

	return r.queryOrders(ctx, selectBuilder, "ListByWorkingDay")
}

// CountActiveBySlot подсчитывает заказы слота, занимающие место (все кроме rejected)
// Вызывается внутри транзакции приема заказа после блокировки рабочего дня
func (r *Repository) CountActiveBySlot(ctx context.Context, timeSlotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("orders").
		Where(squirrel.Eq{"time_slot_id": timeSlotID}).
		Where(squirrel.NotEq{"status": domain.StatusRejected}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// MaxDailyNumber возвращает максимальный daily_number рабочего дня (0, если заказов нет)
// Учитываются и rejected заказы: номера никогда не переиспользуются
func (r *Repository) MaxDailyNumber(ctx context.Context, workingDayID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(daily_number), 0)").
		From("orders").
		Where(squirrel.Eq{"working_day_id": workingDayID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MaxDailyNumber - build select query: %v", ErrBuildQuery, err)
	}

	var max int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("%w: MaxDailyNumber - scan max: %w", ErrScanRow, err)
	}

	return max, nil
}

// UpdateStatus обновляет статус заказа
// Проверка допустимости перехода — ответственность вызывающего слоя,
// выполняющего её в той же транзакции
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// ConfirmIfPending переводит заказ из pending в confirmed одним атомарным UPDATE
// Идемпотентно: заказ в любом другом статусе не затрагивается (возвращается false)
func (r *Repository) ConfirmIfPending(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusConfirmed).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ConfirmIfPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ConfirmIfPending - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ConfirmIfPending - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ReplaceIngredients целиком заменяет снапшоты ингредиентов заказа
// Вызывается внутри транзакции обновления заказа
func (r *Repository) ReplaceIngredients(ctx context.Context, orderID int64, ingredients []domain.IngredientSnapshot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("order_ingredients").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceIngredients - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceIngredients - execute delete: %w", ErrExecQuery, err)
	}

	return r.insertIngredients(ctx, executor, orderID, ingredients)
}

// Delete физически удаляет заказ (снапшоты ингредиентов удаляются каскадно)
// Допускается только для pending заказов — проверяет вызывающий слой
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// ListDeadlineCandidates получает pending заказы рабочего дня на указанную дату
// вместе с временем начала слота и дедлайном дня — входные данные для sweep
func (r *Repository) ListDeadlineCandidates(ctx context.Context, date time.Time) ([]*domain.DeadlineCandidate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"o.id",
		"o.user_id",
		"w.date",
		"t.start_time",
		"w.deadline_minutes",
	).
		From("orders o").
		Join("time_slots t ON t.id = o.time_slot_id").
		Join("working_days w ON w.id = o.working_day_id").
		Where(squirrel.Eq{"o.status": domain.StatusPending}).
		Where(squirrel.Eq{"w.date": dateOnly(date)}).
		OrderBy("t.start_time ASC, o.daily_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDeadlineCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDeadlineCandidates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates := make([]*domain.DeadlineCandidate, 0)

	for rows.Next() {
		var c domain.DeadlineCandidate
		if err := rows.Scan(&c.OrderID, &c.UserID, &c.Date, &c.SlotStart, &c.DeadlineMinutes); err != nil {
			return nil, fmt.Errorf("%w: ListDeadlineCandidates - scan row: %w", ErrScanRow, err)
		}
		candidates = append(candidates, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDeadlineCandidates - rows error: %w", ErrScanRow, err)
	}

	return candidates, nil
}

// CountByWorkingDay подсчитывает все заказы рабочего дня
// Используется отчетом применения расписания перед каскадным удалением дня
func (r *Repository) CountByWorkingDay(ctx context.Context, workingDayID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("orders").
		Where(squirrel.Eq{"working_day_id": workingDayID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByWorkingDay - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByWorkingDay - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveBySlots подсчитывает занятые места для набора слотов одним запросом
// Возвращает map slot_id -> количество не-rejected заказов
func (r *Repository) CountActiveBySlots(ctx context.Context, slotIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return counts, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_slot_id", "COUNT(*)").
		From("orders").
		Where(squirrel.Eq{"time_slot_id": slotIDs}).
		Where(squirrel.NotEq{"status": domain.StatusRejected}).
		GroupBy("time_slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slotID int64
		var count int
		if err := rows.Scan(&slotID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveBySlots - scan row: %w", ErrScanRow, err)
		}
		counts[slotID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlots - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// Вспомогательные методы

func (r *Repository) selectOrders() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"user_id",
		"time_slot_id",
		"working_day_id",
		"daily_number",
		"status",
		"created_at",
		"updated_at",
	).From("orders")
}

func (r *Repository) queryOrders(ctx context.Context, selectBuilder squirrel.SelectBuilder, method string) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	orderIDs := make([]int64, 0)

	for rows.Next() {
		var o domain.Order
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.TimeSlotID,
			&o.WorkingDayID,
			&o.DailyNumber,
			&o.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}

		o.CreatedAt = createdAt.Time
		o.UpdatedAt = updatedAt.Time

		orders = append(orders, &o)
		orderIDs = append(orderIDs, o.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	ingredients, err := r.loadIngredients(ctx, executor, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Ingredients = ingredients[o.ID]
	}

	return orders, nil
}

func (r *Repository) insertIngredients(ctx context.Context, executor DBExecutor, orderID int64, ingredients []domain.IngredientSnapshot) error {
	if len(ingredients) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("order_ingredients").
		Columns("order_id", "ingredient_id", "name", "category")

	for _, ing := range ingredients {
		insertBuilder = insertBuilder.Values(orderID, ing.IngredientID, ing.Name, ing.Category)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertIngredients - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertIngredients - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadIngredients(ctx context.Context, executor DBExecutor, orderIDs []int64) (map[int64][]domain.IngredientSnapshot, error) {
	result := make(map[int64][]domain.IngredientSnapshot, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query, args, err := psqlbuilder.Select("order_id", "ingredient_id", "name", "category").
		From("order_ingredients").
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadIngredients - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadIngredients - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var ing domain.IngredientSnapshot
		if err := rows.Scan(&orderID, &ing.IngredientID, &ing.Name, &ing.Category); err != nil {
			return nil, fmt.Errorf("%w: loadIngredients - scan row: %w", ErrScanRow, err)
		}
		result[orderID] = append(result[orderID], ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadIngredients - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package workingday

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

// Repository репозиторий для работы с рабочими днями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый рабочий день
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Дата рабочего дня уникальна: повторная вставка возвращает ErrWorkingDayExists.
func (r *Repository) Create(ctx context.Context, day *domain.WorkingDay) (*domain.WorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_days").
		Columns(
			"date",
			"location",
			"capacity",
			"deadline_minutes",
			"open_time",
			"close_time",
			"is_active",
		).
		Values(
			day.Date,
			day.Location,
			day.Capacity,
			day.DeadlineMinutes,
			day.OpenTime,
			day.CloseTime,
			day.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrWorkingDayExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return day, nil
}

// GetByID получает рабочий день по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkingDay, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByDate получает рабочий день по календарной дате
// Если вызов идет внутри транзакции, строка блокируется FOR UPDATE:
// блокировка рабочего дня сериализует прием заказов и выдачу daily_number
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.WorkingDay, error) {
	return r.getOne(ctx, squirrel.Eq{"date": dateOnly(date)})
}

// ExistsByDate проверяет, существует ли рабочий день на указанную дату
func (r *Repository) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("working_days").
		Where(squirrel.Eq{"date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByDate - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// DeleteByDate удаляет рабочий день на указанную дату
// Каскадно удаляются его слоты и, транзитивно, заказы этих слотов
func (r *Repository) DeleteByDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_days").
		Where(squirrel.Eq{"date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWorkingDayNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.WorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"date",
		"location",
		"capacity",
		"deadline_minutes",
		"open_time",
		"close_time",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("working_days").
		Where(where)

	// Внутри транзакции блокируем строку дня: прием заказов на один день
	// должен идти строго последовательно
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.WorkingDay
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&day.Date,
		&day.Location,
		&day.Capacity,
		&day.DeadlineMinutes,
		&day.OpenTime,
		&day.CloseTime,
		&day.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan working day: %w", ErrScanRow, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

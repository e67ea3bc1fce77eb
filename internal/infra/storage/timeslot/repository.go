package timeslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/pkg/dbmetrics"
	"github.com/v1adych/SWB-OrderService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет слоты рабочего дня одним запросом
// Повторная генерация слотов того же дня — no-op за счет
// ON CONFLICT DO NOTHING на уникальности (working_day_id, start_time, end_time).
// Возвращает количество фактически вставленных слотов.
func (r *Repository) CreateBatch(ctx context.Context, slots []domain.TimeSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("time_slots").
		Columns("working_day_id", "start_time", "end_time")

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(slot.WorkingDayID, slot.StartTime, slot.EndTime)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (working_day_id, start_time, end_time) DO NOTHING").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %w", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"working_day_id",
		"start_time",
		"end_time",
	).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.TimeSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.WorkingDayID,
		&slot.StartTime,
		&slot.EndTime,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time slot: %w", ErrScanRow, err)
	}

	return &slot, nil
}

// ListByWorkingDay получает все слоты рабочего дня, отсортированные по времени начала
func (r *Repository) ListByWorkingDay(ctx context.Context, workingDayID int64) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"working_day_id",
		"start_time",
		"end_time",
	).
		From("time_slots").
		Where(squirrel.Eq{"working_day_id": workingDayID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkingDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkingDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		var slot domain.TimeSlot
		if err := rows.Scan(&slot.ID, &slot.WorkingDayID, &slot.StartTime, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListByWorkingDay - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByWorkingDay - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v1adych/SWB-OrderService/pkg/dbmetrics"
)

type fakeTx struct {
	commits   int
	rollbacks int
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.commits++
	return nil
}

func (f *fakeTx) Rollback() error {
	f.rollbacks++
	return nil
}

type fakeBeginner struct {
	tx *fakeTx
}

func (f *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return f.tx, nil
}

// Ошибка в том виде, в каком она приходит из репозитория через usecase:
// pq-ошибка дважды обернута через %w, код должен оставаться видимым для errors.As
func wrapLikeRepository(cause error) error {
	repoErr := errors.New("repository: failed to scan row")
	ucErr := errors.New("usecase: internal error")
	return fmt.Errorf("%w: failed to get working day: %w",
		ucErr, fmt.Errorf("%w: getOne - scan working day: %w", repoErr, cause))
}

func TestDoSerializable(t *testing.T) {
	ctx := context.Background()

	t.Run("retries serialization failure surfacing through repository wrapping", func(t *testing.T) {
		m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{}})

		attempts := 0
		err := m.DoSerializable(ctx, func(ctx context.Context) error {
			attempts++
			return wrapLikeRepository(&pq.Error{Code: "40001"})
		})

		require.Error(t, err)
		assert.Equal(t, maxSerializableRetries, attempts)

		var pqErr *pq.Error
		require.ErrorAs(t, err, &pqErr)
		assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	})

	t.Run("retries deadlock and unique violation codes", func(t *testing.T) {
		for _, code := range []string{"40P01", "23505"} {
			m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{}})

			attempts := 0
			_ = m.DoSerializable(ctx, func(ctx context.Context) error {
				attempts++
				return wrapLikeRepository(&pq.Error{Code: pq.ErrorCode(code)})
			})

			assert.Equal(t, maxSerializableRetries, attempts, "code %s", code)
		}
	})

	t.Run("second attempt may succeed after a transient conflict", func(t *testing.T) {
		tx := &fakeTx{}
		m := NewTransactionManager(&fakeBeginner{tx: tx})

		attempts := 0
		err := m.DoSerializable(ctx, func(ctx context.Context) error {
			attempts++
			if attempts == 1 {
				return wrapLikeRepository(&pq.Error{Code: "40001"})
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.Equal(t, 1, tx.commits)
		assert.Equal(t, 1, tx.rollbacks)
	})

	t.Run("business errors are not retried", func(t *testing.T) {
		m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{}})

		errSlotFull := errors.New("slot is full")

		attempts := 0
		err := m.DoSerializable(ctx, func(ctx context.Context) error {
			attempts++
			return errSlotFull
		})

		assert.ErrorIs(t, err, errSlotFull)
		assert.Equal(t, 1, attempts)
	})

	t.Run("successful transaction commits once", func(t *testing.T) {
		tx := &fakeTx{}
		m := NewTransactionManager(&fakeBeginner{tx: tx})

		err := m.DoSerializable(ctx, func(ctx context.Context) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, 1, tx.commits)
		assert.Equal(t, 0, tx.rollbacks)
	})
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:30")
		require.NoError(t, err)
		assert.Equal(t, "10:30", ts.String())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "10", "25:00", "10:70", "10.30", "10:30:00"} {
			_, err := NewTimeStringFromString(s)
			assert.ErrorIs(t, err, ErrInvalidFormat, "input=%q", s)
		}
	})
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, _ := NewTimeStringFromString("10:00")

	t.Run("forward", func(t *testing.T) {
		result, err := ts.AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, "11:30", result.String())
	})

	t.Run("backward", func(t *testing.T) {
		result, err := ts.AddMinutes(-30)
		require.NoError(t, err)
		assert.Equal(t, "09:30", result.String())
	})

	t.Run("end of day becomes 24:00", func(t *testing.T) {
		late, _ := NewTimeStringFromString("23:30")
		result, err := late.AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, "24:00", result.String())
	})

	t.Run("past end of day fails", func(t *testing.T) {
		late, _ := NewTimeStringFromString("23:45")
		_, err := late.AddMinutes(30)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("before start of day fails", func(t *testing.T) {
		_, err := ts.AddMinutes(-601)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestTimeString_Ordering(t *testing.T) {
	early, _ := NewTimeStringFromString("09:00")
	late, _ := NewTimeStringFromString("18:00")

	assert.True(t, early.IsBefore(late))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(early))
	assert.False(t, early.IsBefore(early))

	// 24:00 сортируется позже любого валидного HH:MM
	endOfDay := TimeString("24:00")
	assert.True(t, endOfDay.IsAfter(late))
}

func TestTimeString_At(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	ts, _ := NewTimeStringFromString("12:30")
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	at, err := ts.At(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 12, 30, 0, 0, loc), at)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00"))
		assert.Equal(t, "10:00", ts.String())
	})

	t.Run("string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, "10:00", ts.String())
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("17:45")))
		assert.Equal(t, "17:45", ts.String())
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 1, 8, 15, 0, 0, time.UTC)))
		assert.Equal(t, "08:15", ts.String())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	ts, _ := NewTimeStringFromString("10:00")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

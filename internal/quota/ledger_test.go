package quota

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndConsumeCap(t *testing.T) {
	l := NewLedger(10, nil)

	for i := 0; i < 10; i++ {
		require.NoError(t, l.CheckAndConsume("uid-1", 1), "prompt %d should be admitted", i+1)
	}

	err := l.CheckAndConsume("uid-1", 1)
	assert.ErrorIs(t, err, ErrExceeded)

	// Rejection consumed no allowance
	used, cap := l.Usage("uid-1")
	assert.Equal(t, 10, used)
	assert.Equal(t, 10, cap)
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewLedger(2, nil)

	require.NoError(t, l.CheckAndConsume("uid-1", 2))
	assert.ErrorIs(t, l.CheckAndConsume("uid-1", 1), ErrExceeded)

	assert.NoError(t, l.CheckAndConsume("uid-2", 1))
}

func TestDayRollover(t *testing.T) {
	l := NewLedger(10, nil)

	day1 := time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	l.now = func() time.Time { return day1 }

	require.NoError(t, l.CheckAndConsume("uid-1", 10))
	require.ErrorIs(t, l.CheckAndConsume("uid-1", 1), ErrExceeded)

	// First operation on the new day resets the counter lazily
	l.now = func() time.Time { return day1.Add(time.Hour) }

	assert.NoError(t, l.CheckAndConsume("uid-1", 1))
	used, _ := l.Usage("uid-1")
	assert.Equal(t, 1, used)
}

func TestConcurrentAdmissionAtBoundary(t *testing.T) {
	l := NewLedger(10, nil)
	require.NoError(t, l.CheckAndConsume("uid-1", 7))

	const callers = 25
	var admitted int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.CheckAndConsume("uid-1", 1) == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Exactly cap - used admissions, never more
	assert.EqualValues(t, 3, admitted)
	used, _ := l.Usage("uid-1")
	assert.Equal(t, 10, used)
}

func TestRefund(t *testing.T) {
	l := NewLedger(10, nil)

	require.NoError(t, l.CheckAndConsume("uid-1", 3))
	l.Refund("uid-1", 1)
	used, _ := l.Usage("uid-1")
	assert.Equal(t, 2, used)

	// Refund never goes negative
	l.Refund("uid-1", 100)
	used, _ = l.Usage("uid-1")
	assert.Equal(t, 0, used)
}

func TestRefundAfterRolloverIsNoop(t *testing.T) {
	l := NewLedger(10, nil)

	day1 := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	l.now = func() time.Time { return day1 }
	require.NoError(t, l.CheckAndConsume("uid-1", 5))

	l.now = func() time.Time { return day1.Add(2 * time.Minute) }
	l.Refund("uid-1", 5)

	require.NoError(t, l.CheckAndConsume("uid-1", 1))
	used, _ := l.Usage("uid-1")
	assert.Equal(t, 1, used, "stale refund must not grant allowance on the new day")
}

func TestRedeem(t *testing.T) {
	l := NewLedger(10, map[string]int{"LAUNCH20": 20})

	_, err := l.Redeem("uid-1", "NOPE")
	assert.ErrorIs(t, err, ErrUnknownCode)

	granted, err := l.Redeem("uid-1", "LAUNCH20")
	require.NoError(t, err)
	assert.Equal(t, 20, granted)

	_, cap := l.Usage("uid-1")
	assert.Equal(t, 30, cap)

	// Single use per key
	_, err = l.Redeem("uid-1", "LAUNCH20")
	assert.ErrorIs(t, err, ErrCodeUsed)

	// Other keys can still redeem it
	_, err = l.Redeem("uid-2", "LAUNCH20")
	assert.NoError(t, err)
}

func TestAmountNormalized(t *testing.T) {
	l := NewLedger(10, nil)

	require.NoError(t, l.CheckAndConsume("uid-1", 0))
	used, _ := l.Usage("uid-1")
	assert.Equal(t, 1, used, "amount below 1 counts as 1")
}

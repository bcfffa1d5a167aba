package quota

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrExceeded is returned when an admission would push a key past its
	// daily allowance. Expected, user-visible, not a fault.
	ErrExceeded = errors.New("daily quota exceeded")

	// ErrUnknownCode is returned for a redeem code the server does not know.
	ErrUnknownCode = errors.New("unknown redeem code")

	// ErrCodeUsed is returned when a key redeems the same code twice.
	ErrCodeUsed = errors.New("code already redeemed")
)

// DefaultDailyCap is the free daily prompt allowance.
const DefaultDailyCap = 10

// record is the per-key usage state. Its mutex makes admission-and-increment
// one critical section, closing the read-then-write race of split
// usage/usage-use endpoints.
type record struct {
	mu    sync.Mutex
	day   string
	used  int
	bonus int // extra allowance granted by redeem codes, valid for the day
}

// Ledger tracks per-identity daily usage. The index mutex only guards the
// maps; each key has its own lock so unrelated identities never serialize.
type Ledger struct {
	cap   int
	now   func() time.Time
	codes map[string]int // redeem code -> bonus allowance

	mu       sync.Mutex
	records  map[string]*record
	redeemed map[string]bool // key + "\n" + code
}

// NewLedger creates a ledger with the given daily cap and redeem codes.
// A cap of 0 falls back to DefaultDailyCap.
func NewLedger(dailyCap int, codes map[string]int) *Ledger {
	if dailyCap <= 0 {
		dailyCap = DefaultDailyCap
	}
	return &Ledger{
		cap:      dailyCap,
		now:      time.Now,
		codes:    codes,
		records:  make(map[string]*record),
		redeemed: make(map[string]bool),
	}
}

func (l *Ledger) day() string {
	return l.now().UTC().Format("2006-01-02")
}

// get returns the record for a key, creating it lazily.
func (l *Ledger) get(key string) *record {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		rec = &record{}
		l.records[key] = rec
	}
	return rec
}

// rollover resets the record when the stored day differs from the current
// day. Caller must hold rec.mu.
func (l *Ledger) rollover(rec *record) {
	today := l.day()
	if rec.day != today {
		rec.day = today
		rec.used = 0
		rec.bonus = 0
	}
}

// CheckAndConsume admits amount units of usage for key, or returns
// ErrExceeded without mutating anything. Admission and increment are a
// single atomic operation per key.
func (l *Ledger) CheckAndConsume(key string, amount int) error {
	if amount < 1 {
		amount = 1
	}
	rec := l.get(key)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	l.rollover(rec)
	if rec.used+amount > l.cap+rec.bonus {
		return ErrExceeded
	}
	rec.used += amount
	return nil
}

// Refund returns allowance that was reserved for a generation that failed.
// Floors at zero and only applies within the same day; a refund arriving
// after midnight would otherwise grant free usage on the new day.
func (l *Ledger) Refund(key string, amount int) {
	if amount < 1 {
		amount = 1
	}
	rec := l.get(key)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.day != l.day() {
		return
	}
	rec.used -= amount
	if rec.used < 0 {
		rec.used = 0
	}
}

// Usage reports used units and the effective cap for key today.
func (l *Ledger) Usage(key string) (used, cap int) {
	rec := l.get(key)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	l.rollover(rec)
	return rec.used, l.cap + rec.bonus
}

// Redeem grants the bonus allowance attached to a promo code. Each code is
// single-use per key. Returns the bonus granted.
func (l *Ledger) Redeem(key, code string) (int, error) {
	bonus, ok := l.codes[code]
	if !ok {
		return 0, ErrUnknownCode
	}

	l.mu.Lock()
	marker := key + "\n" + code
	if l.redeemed[marker] {
		l.mu.Unlock()
		return 0, ErrCodeUsed
	}
	l.redeemed[marker] = true
	l.mu.Unlock()

	rec := l.get(key)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	l.rollover(rec)
	rec.bonus += bonus
	return bonus, nil
}

package ledger

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/friendledger/internal/models"
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator sets the supplier of friend and expense IDs.
// IDs must be unique for the lifetime of the ledger.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// WithColorPicker sets how avatar colours are chosen for new friends.
func WithColorPicker(pick func() string) Option {
	return func(l *Ledger) { l.pickColor = pick }
}

// WithClock sets the time source for expense timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithCategories sets the closed set of valid expense categories.
func WithCategories(categories []models.Category) Option {
	return func(l *Ledger) {
		l.categories = append([]models.Category(nil), categories...)
	}
}

// WithNotifier sets the receiver of ledger events.
func WithNotifier(n Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

// WithStrictSplits makes AddExpense reject expenses whose participant shares
// do not add up to the expense amount.
func WithStrictSplits(strict bool) Option {
	return func(l *Ledger) { l.strictSplits = strict }
}

// RandomColor returns a random "#rrggbb" colour.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

func defaultOptions(l *Ledger) {
	l.newID = uuid.NewString
	l.pickColor = RandomColor
	l.now = time.Now
	l.categories = append([]models.Category(nil), models.DefaultCategories...)
	l.notifier = discard{}
}

package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind identifies what changed in the ledger.
type EventKind string

const (
	EventFriendAdded          EventKind = "friend_added"
	EventFriendRemoved        EventKind = "friend_removed"
	EventFriendRemovalRefused EventKind = "friend_removal_refused"
	EventExpenseAdded         EventKind = "expense_added"
	EventExpenseDeleted       EventKind = "expense_deleted"
)

// Event carries the kind and parameters of a ledger change. Formatting it for
// people is the notifier's job.
type Event struct {
	Kind       EventKind
	FriendID   string
	FriendName string
	ExpenseID  string
	Title      string
	Amount     decimal.Decimal
	At         time.Time
}

// Notifier receives ledger events synchronously, after the change is applied.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Notifiers fans an event out to several notifiers in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		n.Notify(e)
	}
}

type discard struct{}

func (discard) Notify(Event) {}

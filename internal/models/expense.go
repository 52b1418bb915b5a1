package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single recorded cost paid by one friend and owed,
// in specified shares, by a set of participants.
// Expenses are immutable once created; they can only be deleted.
type Expense struct {
	// ID is the unique identifier for the expense.
	ID string `json:"id"`

	// CreatedAt is when the expense was recorded. It must round-trip through
	// storage without precision loss.
	CreatedAt time.Time `json:"createdAt"`

	// Title is the human-readable description (e.g., "Dinner").
	Title string `json:"title"`

	// Amount is the stated total of the expense.
	Amount decimal.Decimal `json:"amount"`

	// PaidBy is the ID of the friend who paid.
	PaidBy string `json:"paidBy"`

	// Participants are the shares owed for this expense, in entry order.
	// Their sum is expected, but not guaranteed, to equal Amount.
	Participants []ExpenseParticipant `json:"participants"`

	// Category is one of the configured category IDs.
	Category string `json:"category"`
}

// ExpenseParticipant is the amount one friend owes for one expense.
type ExpenseParticipant struct {
	FriendID string          `json:"friendId"`
	Amount   decimal.Decimal `json:"amount"`
}

// Involves reports whether the friend paid for or takes part in the expense.
func (e Expense) Involves(friendID string) bool {
	if e.PaidBy == friendID {
		return true
	}
	for _, p := range e.Participants {
		if p.FriendID == friendID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate ledger-owned slices.
func (e Expense) Clone() Expense {
	c := e
	c.Participants = append([]ExpenseParticipant(nil), e.Participants...)
	return c
}

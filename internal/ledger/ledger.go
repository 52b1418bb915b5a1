// Package ledger implements the Ledger Store: the canonical, ordered
// collections of friends and expenses and the mutations over them.
//
// A Ledger is a plain owned value. It performs no locking and no I/O; a host
// that shares one across goroutines must serialize mutations itself, and is
// responsible for persisting the collections after each successful change.
package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/friendledger/internal/calculator"
	"github.com/mmynk/friendledger/internal/models"
)

// Ledger owns the friend and expense collections of one shared ledger.
type Ledger struct {
	friends  []models.Friend
	expenses []models.Expense // newest first

	categories   []models.Category
	strictSplits bool

	newID     func() string
	pickColor func() string
	now       func() time.Time
	notifier  Notifier

	// derived memoizes the Balance Engine output; nil means stale.
	derived *derived
}

type derived struct {
	balances []models.Balance
	totals   []models.FriendBalance
}

// NewExpense is the caller-supplied part of an expense. ID and CreatedAt are
// assigned by the ledger.
type NewExpense struct {
	Title        string
	Amount       decimal.Decimal
	PaidBy       string
	Participants []models.ExpenseParticipant
	Category     string
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{}
	defaultOptions(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Restore replaces the ledger contents wholesale, e.g. with a persisted
// snapshot at startup. Expenses are kept in the order given.
func (l *Ledger) Restore(friends []models.Friend, expenses []models.Expense) {
	l.friends = slices.Clone(friends)
	l.expenses = make([]models.Expense, len(expenses))
	for i, e := range expenses {
		l.expenses[i] = e.Clone()
	}
	l.invalidate()
}

// AddFriend appends a new friend with a generated ID and colour.
// The name is stored as given; callers are expected to trim it.
func (l *Ledger) AddFriend(name string) (models.Friend, error) {
	if strings.TrimSpace(name) == "" {
		return models.Friend{}, invalidFriend("name", "must not be empty")
	}

	friend := models.Friend{
		ID:          l.newID(),
		Name:        name,
		AvatarColor: l.pickColor(),
	}
	l.friends = append(l.friends, friend)
	l.invalidate()

	l.notifier.Notify(Event{
		Kind:       EventFriendAdded,
		FriendID:   friend.ID,
		FriendName: friend.Name,
		At:         l.now(),
	})
	return friend, nil
}

// RemoveFriend removes a friend that no expense refers to, as payer or as
// participant. Nothing is cascaded.
func (l *Ledger) RemoveFriend(id string) error {
	idx := l.friendIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: friend %s", ErrNotFound, id)
	}
	friend := l.friends[idx]

	for _, e := range l.expenses {
		if e.Involves(id) {
			l.notifier.Notify(Event{
				Kind:       EventFriendRemovalRefused,
				FriendID:   friend.ID,
				FriendName: friend.Name,
				ExpenseID:  e.ID,
				At:         l.now(),
			})
			return fmt.Errorf("%w: %s", ErrFriendInUse, friend.Name)
		}
	}

	l.friends = slices.Delete(l.friends, idx, idx+1)
	l.invalidate()

	l.notifier.Notify(Event{
		Kind:       EventFriendRemoved,
		FriendID:   friend.ID,
		FriendName: friend.Name,
		At:         l.now(),
	})
	return nil
}

// AddExpense validates and records a new expense at the head of the list.
func (l *Ledger) AddExpense(in NewExpense) (models.Expense, error) {
	if err := l.validateExpense(in); err != nil {
		return models.Expense{}, err
	}

	expense := models.Expense{
		ID:           l.newID(),
		CreatedAt:    l.now(),
		Title:        in.Title,
		Amount:       in.Amount,
		PaidBy:       in.PaidBy,
		Participants: slices.Clone(in.Participants),
		Category:     in.Category,
	}
	l.expenses = slices.Insert(l.expenses, 0, expense)
	l.invalidate()

	l.notifier.Notify(Event{
		Kind:      EventExpenseAdded,
		ExpenseID: expense.ID,
		Title:     expense.Title,
		Amount:    expense.Amount,
		At:        expense.CreatedAt,
	})
	return expense.Clone(), nil
}

func (l *Ledger) validateExpense(in NewExpense) error {
	if strings.TrimSpace(in.Title) == "" {
		return invalidExpense("title", "must not be empty")
	}
	if !in.Amount.IsPositive() {
		return invalidExpense("amount", "must be positive, got %s", in.Amount)
	}
	if l.friendIndex(in.PaidBy) < 0 {
		return invalidExpense("paidBy", "unknown friend %q", in.PaidBy)
	}
	if len(in.Participants) == 0 {
		return invalidExpense("participants", "must not be empty")
	}

	seen := make(map[string]bool, len(in.Participants))
	for _, p := range in.Participants {
		if l.friendIndex(p.FriendID) < 0 {
			return invalidExpense("participants", "unknown friend %q", p.FriendID)
		}
		if seen[p.FriendID] {
			return invalidExpense("participants", "friend %q listed twice", p.FriendID)
		}
		seen[p.FriendID] = true
		if p.Amount.IsNegative() {
			return invalidExpense("participants", "negative share %s for %q", p.Amount, p.FriendID)
		}
	}

	if _, ok := l.Category(in.Category); !ok {
		return invalidExpense("category", "unknown category %q", in.Category)
	}

	if l.strictSplits {
		if err := calculator.CheckSplit(in.Amount, in.Participants); err != nil {
			return invalidExpense("participants", "%v", err)
		}
	}
	return nil
}

// DeleteExpense removes the expense with the given ID.
func (l *Ledger) DeleteExpense(id string) error {
	idx := slices.IndexFunc(l.expenses, func(e models.Expense) bool { return e.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	expense := l.expenses[idx]

	l.expenses = slices.Delete(l.expenses, idx, idx+1)
	l.invalidate()

	l.notifier.Notify(Event{
		Kind:      EventExpenseDeleted,
		ExpenseID: expense.ID,
		Title:     expense.Title,
		Amount:    expense.Amount,
		At:        l.now(),
	})
	return nil
}

// Friends returns the friends in insertion order.
func (l *Ledger) Friends() []models.Friend {
	return slices.Clone(l.friends)
}

// Friend returns the friend with the given ID.
func (l *Ledger) Friend(id string) (models.Friend, error) {
	idx := l.friendIndex(id)
	if idx < 0 {
		return models.Friend{}, fmt.Errorf("%w: friend %s", ErrNotFound, id)
	}
	return l.friends[idx], nil
}

// Expenses returns all expenses, newest first.
func (l *Ledger) Expenses() []models.Expense {
	return l.ExpensesByCategory("")
}

// ExpensesByCategory returns the expenses in one category, newest first.
// An empty category matches every expense.
func (l *Ledger) ExpensesByCategory(category string) []models.Expense {
	out := make([]models.Expense, 0, len(l.expenses))
	for _, e := range l.expenses {
		if category == "" || e.Category == category {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Expense returns the expense with the given ID.
func (l *Ledger) Expense(id string) (models.Expense, error) {
	for _, e := range l.expenses {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return models.Expense{}, fmt.Errorf("%w: expense %s", ErrNotFound, id)
}

// Categories returns the configured category set.
func (l *Ledger) Categories() []models.Category {
	return slices.Clone(l.categories)
}

// Category looks up a configured category by ID.
func (l *Ledger) Category(id string) (models.Category, bool) {
	for _, c := range l.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// Balances returns the settlement suggestions for the current contents.
// The result is recomputed at most once per mutation.
func (l *Ledger) Balances() []models.Balance {
	return slices.Clone(l.recompute().balances)
}

// FriendBalances returns the per-friend aggregates of Balances.
func (l *Ledger) FriendBalances() []models.FriendBalance {
	return slices.Clone(l.recompute().totals)
}

func (l *Ledger) recompute() *derived {
	if l.derived == nil {
		balances := calculator.CalculateBalances(l.friends, l.expenses)
		l.derived = &derived{
			balances: balances,
			totals:   calculator.FriendTotals(l.friends, balances),
		}
	}
	return l.derived
}

func (l *Ledger) invalidate() {
	l.derived = nil
}

func (l *Ledger) friendIndex(id string) int {
	return slices.IndexFunc(l.friends, func(f models.Friend) bool { return f.ID == id })
}

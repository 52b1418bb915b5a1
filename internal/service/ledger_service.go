// Package service hosts a Ledger behind the friendledger.v1.LedgerService
// Connect API, persisting every successful mutation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/friendledger/internal/calculator"
	"github.com/mmynk/friendledger/internal/ledger"
	"github.com/mmynk/friendledger/internal/models"
	"github.com/mmynk/friendledger/internal/storage"
	"github.com/mmynk/friendledger/pkg/api"
	"github.com/mmynk/friendledger/pkg/api/apiconnect"
)

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// BalanceGauge tracks the number of outstanding settlement suggestions.
type BalanceGauge interface {
	SetOpenBalances(n int)
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithLedgerOptions passes options through to the hosted ledger. A notifier
// set this way is replaced by the service; use WithNotifier instead.
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(s *LedgerService) { s.ledgerOpts = append(s.ledgerOpts, opts...) }
}

// WithSeedFriends adds the named friends to a store that has never been
// saved to. A store whose friends were all removed stays empty.
func WithSeedFriends(names []string) Option {
	return func(s *LedgerService) { s.seedFriends = names }
}

// WithNotifier receives ledger events once the change they describe has been
// persisted. Refused removals are delivered immediately.
func WithNotifier(n ledger.Notifier) Option {
	return func(s *LedgerService) { s.notifier = n }
}

// WithBalanceGauge reports the open balance count after every change.
func WithBalanceGauge(g BalanceGauge) Option {
	return func(s *LedgerService) { s.gauge = g }
}

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	store  storage.Store

	ledgerOpts  []ledger.Option
	seedFriends []string
	gauge       BalanceGauge
	notifier    ledger.Notifier

	// pending holds events of the mutation in progress.
	pending []ledger.Event
}

// NewLedgerService loads the persisted ledger from store.
func NewLedgerService(ctx context.Context, store storage.Store, opts ...Option) (*LedgerService, error) {
	s := &LedgerService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	ledgerOpts := append(s.ledgerOpts, ledger.WithNotifier(ledger.NotifierFunc(func(e ledger.Event) {
		s.pending = append(s.pending, e)
	})))
	s.ledger = ledger.New(ledgerOpts...)

	friends, expenses, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	s.ledger.Restore(friends, expenses)
	slog.Info("Ledger loaded", "friends", len(friends), "expenses", len(expenses))

	initialized, err := store.Initialized(ctx)
	if err != nil {
		return nil, err
	}
	if !initialized && len(friends) == 0 && len(s.seedFriends) > 0 {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
	}
	s.updateGauge()
	return s, nil
}

func (s *LedgerService) seed(ctx context.Context) error {
	return s.mutate(ctx, saveFriends, func(l *ledger.Ledger) error {
		for _, name := range s.seedFriends {
			if _, err := l.AddFriend(strings.TrimSpace(name)); err != nil {
				return fmt.Errorf("failed to seed friend %q: %w", name, err)
			}
		}
		return nil
	})
}

type collection int

const (
	saveFriends collection = iota
	saveExpenses
)

// mutate applies fn under the lock and persists the touched collection.
// When fn or persisting fails the ledger is rolled back to its prior contents
// and the events of the mutation are dropped.
func (s *LedgerService) mutate(ctx context.Context, c collection, fn func(*ledger.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = s.pending[:0]
	friends, expenses := s.ledger.Friends(), s.ledger.Expenses()
	if err := fn(s.ledger); err != nil {
		s.ledger.Restore(friends, expenses)
		s.flush(func(e ledger.Event) bool { return e.Kind == ledger.EventFriendRemovalRefused })
		return err
	}

	var err error
	switch c {
	case saveFriends:
		err = s.store.SaveFriends(ctx, s.ledger.Friends())
	case saveExpenses:
		err = s.store.SaveExpenses(ctx, s.ledger.Expenses())
	}
	if err != nil {
		s.ledger.Restore(friends, expenses)
		s.pending = s.pending[:0]
		return fmt.Errorf("failed to persist ledger: %w", err)
	}

	s.flush(func(ledger.Event) bool { return true })
	s.updateGauge()
	return nil
}

// flush delivers the pending events accepted by keep and clears the buffer.
func (s *LedgerService) flush(keep func(ledger.Event) bool) {
	for _, e := range s.pending {
		if s.notifier != nil && keep(e) {
			s.notifier.Notify(e)
		}
	}
	s.pending = s.pending[:0]
}

func (s *LedgerService) updateGauge() {
	if s.gauge != nil {
		s.gauge.SetOpenBalances(len(s.ledger.Balances()))
	}
}

// toConnectError maps ledger errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case ledger.IsInvalid(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrFriendInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ledger.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// AddFriend adds a friend with a generated ID and avatar colour.
func (s *LedgerService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	var friend models.Friend
	err := s.mutate(ctx, saveFriends, func(l *ledger.Ledger) error {
		var err error
		friend, err = l.AddFriend(strings.TrimSpace(req.Msg.Name))
		return err
	})
	if err != nil {
		slog.Error("AddFriend failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddFriendResponse{Friend: toAPIFriend(friend)}), nil
}

// RemoveFriend removes a friend that no expense refers to.
func (s *LedgerService) RemoveFriend(ctx context.Context, req *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error) {
	err := s.mutate(ctx, saveFriends, func(l *ledger.Ledger) error {
		return l.RemoveFriend(req.Msg.FriendId)
	})
	if err != nil {
		slog.Warn("RemoveFriend failed", "friend_id", req.Msg.FriendId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RemoveFriendResponse{}), nil
}

// ListFriends returns the friends in insertion order.
func (s *LedgerService) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	s.mu.Lock()
	friends := s.ledger.Friends()
	s.mu.Unlock()

	return connect.NewResponse(&api.ListFriendsResponse{Friends: toAPIFriends(friends)}), nil
}

// AddExpense records an expense, splitting it equally or with custom shares.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	in, err := newExpenseFromRequest(req.Msg)
	if err != nil {
		slog.Error("AddExpense rejected", "title", req.Msg.Title, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	var expense models.Expense
	err = s.mutate(ctx, saveExpenses, func(l *ledger.Ledger) error {
		var err error
		expense, err = l.AddExpense(in)
		return err
	})
	if err != nil {
		slog.Error("AddExpense failed", "title", req.Msg.Title, "error", err)
		return nil, toConnectError(err)
	}

	slog.Debug("Expense added",
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"participants", len(expense.Participants),
	)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

func newExpenseFromRequest(msg *api.AddExpenseRequest) (ledger.NewExpense, error) {
	amount, err := calculator.ParseAmount(msg.Amount)
	if err != nil {
		return ledger.NewExpense{}, fmt.Errorf("amount: %w", err)
	}

	in := ledger.NewExpense{
		Title:    strings.TrimSpace(msg.Title),
		Amount:   amount,
		PaidBy:   msg.PaidBy,
		Category: msg.Category,
	}

	split := msg.Split
	if split == "" {
		split = api.SplitEqual
		if len(msg.Participants) > 0 {
			split = api.SplitCustom
		}
	}

	switch split {
	case api.SplitEqual:
		shares, err := calculator.SplitEqually(amount, msg.ParticipantIds)
		if err != nil {
			return ledger.NewExpense{}, err
		}
		in.Participants = shares
	case api.SplitCustom:
		in.Participants = make([]models.ExpenseParticipant, len(msg.Participants))
		for i, p := range msg.Participants {
			share, err := calculator.ParseAmount(p.Amount)
			if err != nil {
				return ledger.NewExpense{}, fmt.Errorf("share for %s: %w", p.FriendId, err)
			}
			in.Participants[i] = models.ExpenseParticipant{FriendID: p.FriendId, Amount: share}
		}
	default:
		return ledger.NewExpense{}, fmt.Errorf("unknown split mode %q", msg.Split)
	}
	return in, nil
}

// DeleteExpense removes an expense by ID.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	err := s.mutate(ctx, saveExpenses, func(l *ledger.Ledger) error {
		return l.DeleteExpense(req.Msg.ExpenseId)
	})
	if err != nil {
		slog.Warn("DeleteExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns expenses newest first, optionally in one category.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Msg.Category != "" {
		if _, ok := s.ledger.Category(req.Msg.Category); !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("unknown category %q", req.Msg.Category))
		}
	}
	expenses := s.ledger.ExpensesByCategory(req.Msg.Category)

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// GetBalances returns the settlement suggestions and per-friend totals.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	s.mu.Lock()
	balances := s.ledger.Balances()
	totals := s.ledger.FriendBalances()
	s.mu.Unlock()

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances:       toAPIBalances(balances),
		FriendBalances: toAPIFriendBalances(totals),
		Outstanding:    calculator.Outstanding(balances).String(),
	}), nil
}

// ListCategories returns the expense categories.
func (s *LedgerService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	s.mu.Lock()
	categories := s.ledger.Categories()
	s.mu.Unlock()

	return connect.NewResponse(&api.ListCategoriesResponse{Categories: toAPICategories(categories)}), nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/friendledger/internal/ledger"
)

// LogNotifier writes ledger events to slog as human-readable messages.
type LogNotifier struct {
	Logger *slog.Logger // nil means slog.Default()
}

func (n LogNotifier) Notify(e ledger.Event) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := slog.LevelInfo
	if e.Kind == ledger.EventFriendRemovalRefused {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, Describe(e),
		"kind", string(e.Kind),
		"friend_id", e.FriendID,
		"expense_id", e.ExpenseID,
	)
}

// Describe formats an event for people.
func Describe(e ledger.Event) string {
	switch e.Kind {
	case ledger.EventFriendAdded:
		return fmt.Sprintf("%s has been added to your friends list.", e.FriendName)
	case ledger.EventFriendRemoved:
		return fmt.Sprintf("%s has been removed from your list.", e.FriendName)
	case ledger.EventFriendRemovalRefused:
		return fmt.Sprintf("Cannot remove %s: this friend is involved in one or more expenses.", e.FriendName)
	case ledger.EventExpenseAdded:
		return fmt.Sprintf("%s ($%s) has been added.", e.Title, e.Amount.StringFixed(2))
	case ledger.EventExpenseDeleted:
		return fmt.Sprintf("%s ($%s) has been deleted.", e.Title, e.Amount.StringFixed(2))
	default:
		return string(e.Kind)
	}
}

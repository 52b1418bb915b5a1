// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/friendledger/internal/models"
)

// Store is the persistence collaborator of a ledger.
// This abstraction allows swapping storage backends (SQLite, files, etc.)
// without changing the service layer.
type Store interface {
	// Load returns the persisted friends, in insertion order, and expenses,
	// newest first. An empty store returns two empty slices.
	Load(ctx context.Context) ([]models.Friend, []models.Expense, error)

	// Initialized reports whether the store has ever been saved to. A store
	// that was saved empty is initialized; a freshly created one is not.
	Initialized(ctx context.Context) (bool, error)

	// SaveFriends replaces the persisted friend collection.
	SaveFriends(ctx context.Context, friends []models.Friend) error

	// SaveExpenses replaces the persisted expense collection.
	// Timestamps must round-trip without precision loss.
	SaveExpenses(ctx context.Context, expenses []models.Expense) error

	// Close releases any resources held by the store.
	Close() error
}

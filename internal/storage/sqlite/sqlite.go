// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/friendledger/internal/models"
	"github.com/mmynk/friendledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" stable.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the friend and expense collections in their stored order.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Friend, []models.Expense, error) {
	friends, err := s.loadFriends(ctx)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.loadExpenses(ctx)
	if err != nil {
		return nil, nil, err
	}
	return friends, expenses, nil
}

func (s *SQLiteStore) loadFriends(ctx context.Context) ([]models.Friend, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, avatar_color FROM friends ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	friends := make([]models.Friend, 0)
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.Name, &f.AvatarColor); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}
	return friends, nil
}

func (s *SQLiteStore) loadExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, amount, paid_by, category, created_at FROM expenses ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			e         models.Expense
			amount    string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Title, &amount, &e.PaidBy, &e.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse amount of expense %s: %w", e.ID, err)
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	// Get participants for all expenses at once
	partRows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, friend_id, amount FROM expense_participants ORDER BY expense_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var expenseID, friendID, amount string
		if err := partRows.Scan(&expenseID, &friendID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		i, ok := index[expenseID]
		if !ok {
			continue
		}
		share, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse share of expense %s: %w", expenseID, err)
		}
		expenses[i].Participants = append(expenses[i].Participants, models.ExpenseParticipant{
			FriendID: friendID,
			Amount:   share,
		})
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return expenses, nil
}

// Initialized reports whether any collection has ever been saved.
func (s *SQLiteStore) Initialized(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM meta WHERE key = 'initialized'",
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to read store state: %w", err)
	}
	return n > 0, nil
}

// markInitialized records the first save inside the saving transaction.
func markInitialized(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO meta (key, value) VALUES ('initialized', ?)",
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to mark store initialized: %w", err)
	}
	return nil
}

// SaveFriends replaces the stored friends with the given collection.
func (s *SQLiteStore) SaveFriends(ctx context.Context, friends []models.Friend) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM friends"); err != nil {
		return fmt.Errorf("failed to clear friends: %w", err)
	}

	for i, f := range friends {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO friends (id, name, avatar_color, position) VALUES (?, ?, ?, ?)",
			f.ID, f.Name, f.AvatarColor, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert friend: %w", err)
		}
	}

	if err := markInitialized(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveExpenses replaces the stored expenses with the given collection.
func (s *SQLiteStore) SaveExpenses(ctx context.Context, expenses []models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Participants cascade with their expense
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	for i, e := range expenses {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expenses (id, title, amount, paid_by, category, created_at, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
			e.ID, e.Title, e.Amount.String(), e.PaidBy, e.Category, e.CreatedAt.UnixNano(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, p := range e.Participants {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, position, friend_id, amount) VALUES (?, ?, ?, ?)",
				e.ID, j, p.FriendID, p.Amount.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}
	}

	if err := markInitialized(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

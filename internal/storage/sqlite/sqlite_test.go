package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/friendledger/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Load on empty database", func(t *testing.T) {
		friends, expenses, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(friends) != 0 || len(expenses) != 0 {
			t.Errorf("Expected empty collections, got %d friends and %d expenses", len(friends), len(expenses))
		}
		if friends == nil || expenses == nil {
			t.Error("Expected non-nil empty slices")
		}
	})

	t.Run("SaveFriends preserves order", func(t *testing.T) {
		friends := []models.Friend{
			{ID: "f3", Name: "Taylor", AvatarColor: "#0EA5E9"},
			{ID: "f1", Name: "You", AvatarColor: "#9b87f5"},
			{ID: "f2", Name: "Alex", AvatarColor: "#F97316"},
		}
		if err := store.SaveFriends(ctx, friends); err != nil {
			t.Fatalf("SaveFriends failed: %v", err)
		}

		loaded, _, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != len(friends) {
			t.Fatalf("Friends count mismatch: got %d, want %d", len(loaded), len(friends))
		}
		for i := range friends {
			if loaded[i] != friends[i] {
				t.Errorf("Friend %d mismatch: got %+v, want %+v", i, loaded[i], friends[i])
			}
		}
	})

	t.Run("SaveFriends replaces previous collection", func(t *testing.T) {
		if err := store.SaveFriends(ctx, []models.Friend{{ID: "f1", Name: "You", AvatarColor: "#9b87f5"}}); err != nil {
			t.Fatalf("SaveFriends failed: %v", err)
		}
		loaded, _, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != 1 || loaded[0].ID != "f1" {
			t.Errorf("Expected only f1, got %+v", loaded)
		}
	})

	t.Run("SaveExpenses round-trips amounts and timestamps exactly", func(t *testing.T) {
		created := time.Date(2026, 7, 4, 18, 30, 15, 123456789, time.UTC)
		expenses := []models.Expense{
			{
				ID:        "e2",
				CreatedAt: created.Add(time.Hour),
				Title:     "Fireworks",
				Amount:    decimal.RequireFromString("0.30"),
				PaidBy:    "f2",
				Participants: []models.ExpenseParticipant{
					{FriendID: "f1", Amount: decimal.RequireFromString("0.1")},
					{FriendID: "f3", Amount: decimal.RequireFromString("0.2")},
				},
				Category: "entertainment",
			},
			{
				ID:        "e1",
				CreatedAt: created,
				Title:     "Barbecue",
				Amount:    decimal.RequireFromString("100"),
				PaidBy:    "f1",
				Participants: []models.ExpenseParticipant{
					{FriendID: "f3", Amount: decimal.RequireFromString("33.34")},
					{FriendID: "f1", Amount: decimal.RequireFromString("33.33")},
					{FriendID: "f2", Amount: decimal.RequireFromString("33.33")},
				},
				Category: "food",
			},
		}
		if err := store.SaveExpenses(ctx, expenses); err != nil {
			t.Fatalf("SaveExpenses failed: %v", err)
		}

		_, loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != 2 {
			t.Fatalf("Expenses count mismatch: got %d, want 2", len(loaded))
		}

		for i, want := range expenses {
			got := loaded[i]
			if got.ID != want.ID || got.Title != want.Title || got.PaidBy != want.PaidBy || got.Category != want.Category {
				t.Errorf("Expense %d mismatch: got %+v, want %+v", i, got, want)
			}
			if !got.CreatedAt.Equal(want.CreatedAt) {
				t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, want.CreatedAt)
			}
			if !got.Amount.Equal(want.Amount) {
				t.Errorf("Amount mismatch: got %s, want %s", got.Amount, want.Amount)
			}
			if len(got.Participants) != len(want.Participants) {
				t.Fatalf("Participants count mismatch: got %d, want %d", len(got.Participants), len(want.Participants))
			}
			for j, p := range want.Participants {
				if got.Participants[j].FriendID != p.FriendID || !got.Participants[j].Amount.Equal(p.Amount) {
					t.Errorf("Participant %d of %s mismatch: got %+v, want %+v", j, want.ID, got.Participants[j], p)
				}
			}
		}
	})

	t.Run("SaveExpenses removes deleted expenses and their participants", func(t *testing.T) {
		_, before, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := store.SaveExpenses(ctx, before[1:]); err != nil {
			t.Fatalf("SaveExpenses failed: %v", err)
		}

		_, after, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(after) != 1 || after[0].ID != "e1" {
			t.Fatalf("Expected only e1, got %+v", after)
		}
		if len(after[0].Participants) != 3 {
			t.Errorf("Expected 3 participants on e1, got %d", len(after[0].Participants))
		}

		var orphans int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expense_participants WHERE expense_id = 'e2'").Scan(&orphans); err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if orphans != 0 {
			t.Errorf("Expected participants of e2 to cascade, found %d", orphans)
		}
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.SaveFriends(ctx, []models.Friend{{ID: "f1", Name: "You", AvatarColor: "#9b87f5"}}); err != nil {
		t.Fatalf("SaveFriends failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	friends, _, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(friends) != 1 || friends[0].Name != "You" {
		t.Errorf("Expected persisted friend, got %+v", friends)
	}
}

func TestSQLiteStore_Initialized(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "init.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	initialized, err := store.Initialized(ctx)
	if err != nil {
		t.Fatalf("Initialized failed: %v", err)
	}
	if initialized {
		t.Error("Expected a new store to be uninitialized")
	}

	// Saving an empty collection still counts.
	if err := store.SaveFriends(ctx, []models.Friend{}); err != nil {
		t.Fatalf("SaveFriends failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	initialized, err = reopened.Initialized(ctx)
	if err != nil {
		t.Fatalf("Initialized failed: %v", err)
	}
	if !initialized {
		t.Error("Expected store to stay initialized after an empty save")
	}
}

func TestSQLiteStore_InitializedBySaveExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveExpenses(ctx, nil); err != nil {
		t.Fatalf("SaveExpenses failed: %v", err)
	}
	initialized, err := store.Initialized(ctx)
	if err != nil {
		t.Fatalf("Initialized failed: %v", err)
	}
	if !initialized {
		t.Error("Expected SaveExpenses to initialize the store")
	}
}

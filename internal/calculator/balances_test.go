package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/friendledger/internal/models"
)

var (
	alice   = models.Friend{ID: "a", Name: "Alice", AvatarColor: "#9b87f5"}
	bob     = models.Friend{ID: "b", Name: "Bob", AvatarColor: "#F97316"}
	charlie = models.Friend{ID: "c", Name: "Charlie", AvatarColor: "#0EA5E9"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func share(friendID, amount string) models.ExpenseParticipant {
	return models.ExpenseParticipant{FriendID: friendID, Amount: dec(amount)}
}

func expense(payer, amount string, participants ...models.ExpenseParticipant) models.Expense {
	return models.Expense{
		Title:        "test",
		Amount:       dec(amount),
		PaidBy:       payer,
		Participants: participants,
		Category:     "other",
	}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "amount = %s, want %s", got, want)
}

type edge struct {
	from, to, amount string
}

func assertBalances(t *testing.T, want []edge, got []models.Balance) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.from, got[i].From.ID, "balance %d from", i)
		assert.Equal(t, w.to, got[i].To.ID, "balance %d to", i)
		assertAmount(t, w.amount, got[i].Amount)
	}
}

func TestCalculateBalances(t *testing.T) {
	friends := []models.Friend{alice, bob, charlie}

	tests := []struct {
		name     string
		expenses []models.Expense
		want     []edge
	}{
		{
			name: "no expenses",
			want: []edge{},
		},
		{
			name: "three-way dinner then two-way taxi",
			expenses: []models.Expense{
				expense("a", "30", share("a", "10"), share("b", "10"), share("c", "10")),
				expense("b", "20", share("b", "10"), share("c", "10")),
			},
			want: []edge{
				{"b", "a", "10"},
				{"c", "a", "10"},
				{"c", "b", "10"},
			},
		},
		{
			name: "opposite debts net against each other",
			expenses: []models.Expense{
				expense("a", "10", share("b", "10")),
				expense("b", "4", share("a", "4")),
			},
			want: []edge{{"b", "a", "6"}},
		},
		{
			name: "exactly cancelling debts produce nothing",
			expenses: []models.Expense{
				expense("a", "12.5", share("b", "12.5")),
				expense("b", "12.5", share("a", "12.5")),
			},
			want: []edge{},
		},
		{
			name: "payer paying only for themself",
			expenses: []models.Expense{
				expense("a", "40", share("a", "40")),
			},
			want: []edge{},
		},
		{
			name: "shares exceeding the stated total are taken literally",
			expenses: []models.Expense{
				expense("a", "10", share("b", "8"), share("c", "7")),
			},
			want: []edge{
				{"b", "a", "8"},
				{"c", "a", "7"},
			},
		},
		{
			name: "cycle is not simplified",
			expenses: []models.Expense{
				expense("b", "5", share("a", "5")),
				expense("c", "5", share("b", "5")),
				expense("a", "5", share("c", "5")),
			},
			want: []edge{
				{"a", "b", "5"},
				{"b", "c", "5"},
				{"c", "a", "5"},
			},
		},
		{
			name: "zero share contributes nothing",
			expenses: []models.Expense{
				expense("a", "10", share("a", "10"), share("b", "0")),
			},
			want: []edge{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBalances(friends, tt.expenses)
			assertBalances(t, tt.want, got)
		})
	}
}

func TestCalculateBalances_FollowsFriendOrder(t *testing.T) {
	expenses := []models.Expense{
		expense("a", "30", share("b", "10"), share("c", "20")),
	}

	got := CalculateBalances([]models.Friend{charlie, bob, alice}, expenses)
	assertBalances(t, []edge{{"c", "a", "20"}, {"b", "a", "10"}}, got)
}

func TestCalculateBalances_IgnoresFriendsOutsideSnapshot(t *testing.T) {
	expenses := []models.Expense{
		expense("a", "20", share("b", "10"), share("ghost", "10")),
	}

	got := CalculateBalances([]models.Friend{alice, bob}, expenses)
	assertBalances(t, []edge{{"b", "a", "10"}}, got)
}

func TestCalculateBalances_NoFriends(t *testing.T) {
	got := CalculateBalances(nil, []models.Expense{expense("a", "1", share("b", "1"))})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCalculateBalances_Idempotent(t *testing.T) {
	friends := []models.Friend{alice, bob, charlie}
	expenses := []models.Expense{
		expense("a", "30", share("a", "10"), share("b", "10"), share("c", "10")),
		expense("c", "7.77", share("a", "3.33"), share("b", "4.44")),
	}

	first := CalculateBalances(friends, expenses)
	second := CalculateBalances(friends, expenses)
	assert.Equal(t, first, second)
}

func TestNetBalances_Antisymmetric(t *testing.T) {
	// Amounts that drift when accumulated as binary floats.
	var expenses []models.Expense
	for i := 0; i < 10; i++ {
		expenses = append(expenses,
			expense("a", "0.3", share("b", "0.1"), share("c", "0.2")),
			expense("b", "0.1", share("a", "0.1")),
			expense("c", "0.7", share("a", "0.35"), share("b", "0.35")),
		)
	}

	net := NetBalances(expenses)
	ids := []string{"a", "b", "c"}
	for _, i := range ids {
		for _, j := range ids {
			if i == j {
				continue
			}
			assert.Truef(t, net.Get(i, j).Equal(net.Get(j, i).Neg()),
				"net[%s][%s] = %s, net[%s][%s] = %s", i, j, net.Get(i, j), j, i, net.Get(j, i))
		}
	}

	// a owes c 3.5, c owes a 2.0
	assertAmount(t, "1.5", net.Get("a", "c"))
	assertAmount(t, "0", net.Get("a", "b"))
	assertAmount(t, "3.5", net.Get("b", "c"))
}

func TestNetBalances_SelfPaymentNeutral(t *testing.T) {
	net := NetBalances([]models.Expense{
		expense("a", "50", share("a", "25"), share("b", "25")),
	})

	assert.Equal(t, 2, net.Len())
	assertAmount(t, "0", net.Get("a", "a"))
	assertAmount(t, "25", net.Get("b", "a"))
	assertAmount(t, "-25", net.Get("a", "b"))
}

func TestNetBalances_UnseenPairIsZero(t *testing.T) {
	net := NetBalances(nil)
	assert.Equal(t, 0, net.Len())
	assertAmount(t, "0", net.Get("x", "y"))
}

func TestFriendTotals(t *testing.T) {
	friends := []models.Friend{alice, bob, charlie}
	expenses := []models.Expense{
		expense("a", "30", share("a", "10"), share("b", "10"), share("c", "10")),
		expense("b", "20", share("b", "10"), share("c", "10")),
	}

	balances := CalculateBalances(friends, expenses)
	totals := FriendTotals(friends, balances)

	require.Len(t, totals, 3)
	assert.Equal(t, "a", totals[0].Friend.ID)
	assertAmount(t, "20", totals[0].Net)
	assert.Equal(t, "b", totals[1].Friend.ID)
	assertAmount(t, "0", totals[1].Net)
	assert.True(t, totals[1].IsSettled())
	assert.Equal(t, "c", totals[2].Friend.ID)
	assertAmount(t, "-20", totals[2].Net)
}

func TestFriendTotals_ZeroSum(t *testing.T) {
	friends := []models.Friend{alice, bob, charlie}
	expenses := []models.Expense{
		expense("a", "100", share("a", "33.34"), share("b", "33.33"), share("c", "33.33")),
		expense("b", "45.10", share("a", "20"), share("c", "25.10")),
		expense("c", "9.99", share("a", "9.99")),
		expense("c", "12", share("b", "6"), share("c", "6")),
	}

	balances := CalculateBalances(friends, expenses)
	totals := FriendTotals(friends, balances)

	owed, owing, sum := decimal.Zero, decimal.Zero, decimal.Zero
	for _, ft := range totals {
		sum = sum.Add(ft.Net)
		if ft.Net.IsPositive() {
			owed = owed.Add(ft.Net)
		} else {
			owing = owing.Add(ft.Net.Neg())
		}
	}

	assert.True(t, sum.IsZero(), "totals should sum to zero, got %s", sum)
	assert.True(t, owed.Equal(owing), "owed %s != owing %s", owed, owing)
	assert.True(t, Outstanding(balances).GreaterThanOrEqual(owed))

	for _, b := range balances {
		assert.NotEqual(t, b.From.ID, b.To.ID)
		assert.True(t, b.Amount.IsPositive())
	}
}

func TestOutstanding(t *testing.T) {
	assertAmount(t, "0", Outstanding(nil))
	assertAmount(t, "17.5", Outstanding([]models.Balance{
		{From: bob, To: alice, Amount: dec("10")},
		{From: charlie, To: alice, Amount: dec("7.5")},
	}))
}

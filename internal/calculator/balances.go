package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/friendledger/internal/models"
)

// pair is an ordered (debtor, creditor) key into the net ledger.
type pair struct {
	from string
	to   string
}

// Net is a sparse pairwise net ledger: Get(i, j) is what i owes j.
// For every pair ever touched, the reverse entry holds the exact negation,
// so Get(i, j) == Get(j, i).Neg() always.
type Net struct {
	amounts map[pair]decimal.Decimal
}

// Get returns the signed amount from owes to. Unseen pairs are zero.
func (n Net) Get(from, to string) decimal.Decimal {
	return n.amounts[pair{from, to}]
}

// Len returns the number of ordered pairs recorded, both directions included.
func (n Net) Len() int {
	return len(n.amounts)
}

// owe records that debtor owes creditor amount. The reverse direction is
// derived by negation rather than by a second subtraction.
func (n Net) owe(debtor, creditor string, amount decimal.Decimal) {
	forward := n.amounts[pair{debtor, creditor}].Add(amount)
	n.amounts[pair{debtor, creditor}] = forward
	n.amounts[pair{creditor, debtor}] = forward.Neg()
}

// NetBalances folds expenses into a pairwise net ledger.
//
// Algorithm:
// - For each expense, every participant other than the payer owes the payer
// their literal share (the stated expense total is not consulted)
// - A participant equal to the payer is paying for their own share and is skipped
// - Only pairs that actually appear are stored
func NetBalances(expenses []models.Expense) Net {
	net := Net{amounts: make(map[pair]decimal.Decimal)}
	for _, expense := range expenses {
		payer := expense.PaidBy
		for _, p := range expense.Participants {
			if p.FriendID == payer {
				continue
			}
			net.owe(p.FriendID, payer, p.Amount)
		}
	}
	return net
}

// CalculateBalances computes settlement suggestions for the given snapshot.
//
// Each unordered pair is netted against itself and emitted at most once, in
// the direction with a strictly positive amount. Ordering follows the friend
// list: outer loop over debtors, inner loop over creditors.
//
// Known limitation: there is no simplification across more than two parties,
// so a cycle A->B->C->A is reported as three balances.
func CalculateBalances(friends []models.Friend, expenses []models.Expense) []models.Balance {
	net := NetBalances(expenses)

	balances := make([]models.Balance, 0)
	for _, from := range friends {
		for _, to := range friends {
			if from.ID == to.ID {
				continue
			}
			amount := net.Get(from.ID, to.ID)
			if amount.IsPositive() {
				balances = append(balances, models.Balance{
					From:   from,
					To:     to,
					Amount: amount,
				})
			}
		}
	}
	return balances
}

// FriendTotals reduces balances to one aggregate per friend, in friend order:
// net = sum(amount where to == friend) - sum(amount where from == friend).
// It is derived from balances, never from raw expenses, so the two views agree.
func FriendTotals(friends []models.Friend, balances []models.Balance) []models.FriendBalance {
	totals := make(map[string]decimal.Decimal, len(friends))
	for _, b := range balances {
		totals[b.From.ID] = totals[b.From.ID].Sub(b.Amount)
		totals[b.To.ID] = totals[b.To.ID].Add(b.Amount)
	}

	result := make([]models.FriendBalance, len(friends))
	for i, f := range friends {
		result[i] = models.FriendBalance{Friend: f, Net: totals[f.ID]}
	}
	return result
}

// Outstanding returns the total amount owed across all balances.
func Outstanding(balances []models.Balance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Amount)
	}
	return total
}

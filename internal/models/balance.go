package models

import "github.com/shopspring/decimal"

// Balance is a settlement suggestion: From owes To exactly Amount.
// Amount is always strictly positive. Balances are derived, never stored.
type Balance struct {
	From   Friend          `json:"from"`
	To     Friend          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// FriendBalance is the aggregate position of one friend across all balances.
type FriendBalance struct {
	Friend Friend `json:"friend"`

	// Net is positive when the friend is owed money and negative when they owe.
	Net decimal.Decimal `json:"net"`
}

// IsSettled reports whether the friend neither owes nor is owed.
func (b FriendBalance) IsSettled() bool {
	return b.Net.IsZero()
}

// Package api defines the wire messages of the friendledger.v1.LedgerService
// Connect API. Messages travel as JSON (see JSONCodec); amounts are decimal
// strings so no precision is lost in transit.
package api

import "time"

// Split modes accepted by AddExpense.
const (
	SplitEqual  = "equal"
	SplitCustom = "custom"
)

type Friend struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	AvatarColor string `json:"avatarColor"`
}

type Participant struct {
	FriendId string `json:"friendId"`
	Amount   string `json:"amount"`
}

type Expense struct {
	Id           string        `json:"id"`
	CreatedAt    time.Time     `json:"createdAt"`
	Title        string        `json:"title"`
	Amount       string        `json:"amount"`
	PaidBy       string        `json:"paidBy"`
	Participants []Participant `json:"participants"`
	Category     string        `json:"category"`
}

type Balance struct {
	From   Friend `json:"from"`
	To     Friend `json:"to"`
	Amount string `json:"amount"`
}

type FriendBalance struct {
	Friend Friend `json:"friend"`
	// Net is positive when the friend is owed, negative when they owe.
	Net string `json:"net"`
}

type Category struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

type AddFriendRequest struct {
	Name string `json:"name"`
}

type AddFriendResponse struct {
	Friend Friend `json:"friend"`
}

type RemoveFriendRequest struct {
	FriendId string `json:"friendId"`
}

type RemoveFriendResponse struct{}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []Friend `json:"friends"`
}

// AddExpenseRequest creates an expense. With Split "equal" (the default when
// Participants is empty) the amount is divided over ParticipantIds; with
// "custom" the explicit Participants shares are used.
type AddExpenseRequest struct {
	Title          string        `json:"title"`
	Amount         string        `json:"amount"`
	PaidBy         string        `json:"paidBy"`
	Category       string        `json:"category"`
	Split          string        `json:"split,omitempty"`
	ParticipantIds []string      `json:"participantIds,omitempty"`
	Participants   []Participant `json:"participants,omitempty"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseId string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// ListExpensesRequest lists expenses newest first, optionally in one category.
type ListExpensesRequest struct {
	Category string `json:"category,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances       []Balance       `json:"balances"`
	FriendBalances []FriendBalance `json:"friendBalances"`
	// Outstanding is the sum of all balance amounts.
	Outstanding string `json:"outstanding"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

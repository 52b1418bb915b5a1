// Package models defines the core domain models for friendledger.
//
// # Models
//
//   - Friend: a participant in the shared ledger
//   - Expense: a single recorded cost, paid by one friend and owed by participants
//   - ExpenseParticipant: the share one friend owes for one expense
//   - Category: a label from the closed set configured for the ledger
//   - Balance: a derived "from owes to" settlement suggestion
//   - FriendBalance: a derived per-friend aggregate of the balances
//
// # Design Principles
//
// 1. **Exact money**: every amount is a decimal.Decimal, never a float
// 2. **Avoid circular references**: relationships use ID strings, except in
// the derived Balance, which carries full Friend values for display
// 3. **Derived values are not stored**: Balance and FriendBalance are
// recomputed from friends and expenses and have no lifecycle of their own
package models

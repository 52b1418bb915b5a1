package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/friendledger/internal/models"
)

// centPlaces is the precision equal splits are rounded to.
const centPlaces = 2

var (
	ErrNoParticipants = errors.New("must have at least one participant")
	ErrNonPositive    = errors.New("amount must be positive")
	ErrSplitMismatch  = errors.New("participant shares do not add up to the amount")
)

// SplitEqually divides amount among friendIDs in cents.
// Each share is rounded down to the cent and the leftover cents go one each
// to the first participants, so the shares always sum to amount exactly.
func SplitEqually(amount decimal.Decimal, friendIDs []string) ([]models.ExpenseParticipant, error) {
	if len(friendIDs) == 0 {
		return nil, ErrNoParticipants
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositive
	}

	n := decimal.NewFromInt(int64(len(friendIDs)))
	share := amount.Div(n).RoundDown(centPlaces)

	participants := make([]models.ExpenseParticipant, len(friendIDs))
	for i, id := range friendIDs {
		participants[i] = models.ExpenseParticipant{FriendID: id, Amount: share}
	}

	leftoverCents := amount.Sub(share.Mul(n)).Shift(centPlaces).IntPart()
	cent := decimal.New(1, -centPlaces)
	for i := int64(0); i < leftoverCents; i++ {
		participants[i].Amount = participants[i].Amount.Add(cent)
	}

	// Sub-cent precision in amount lands on the first participant.
	allocated := decimal.Zero
	for _, p := range participants {
		allocated = allocated.Add(p.Amount)
	}
	if residue := amount.Sub(allocated); !residue.IsZero() {
		participants[0].Amount = participants[0].Amount.Add(residue)
	}

	return participants, nil
}

// CheckSplit verifies that custom participant shares add up to amount.
func CheckSplit(amount decimal.Decimal, participants []models.ExpenseParticipant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	allocated := decimal.Zero
	for _, p := range participants {
		allocated = allocated.Add(p.Amount)
	}

	remaining := amount.Sub(allocated)
	switch {
	case remaining.IsPositive():
		return fmt.Errorf("%w: %s remaining to allocate", ErrSplitMismatch, remaining.StringFixed(centPlaces))
	case remaining.IsNegative():
		return fmt.Errorf("%w: over-allocated by %s", ErrSplitMismatch, remaining.Neg().StringFixed(centPlaces))
	}
	return nil
}

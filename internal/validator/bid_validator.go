package validator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrAuctionNotLive  = errors.New("auction is not accepting bids")
	ErrNoActivePlayer  = errors.New("player is not currently up for bidding")
	ErrNotAParticipant = errors.New("team is not registered for this auction")
)

// BidTooLowError carries the minimum acceptable amount so handlers can
// return it to the client alongside the rejection.
type BidTooLowError struct {
	MinimumBid int64
}

func (e BidTooLowError) Error() string {
	return fmt.Sprintf("bid is below the minimum acceptable amount of %d", e.MinimumBid)
}

// InsufficientBudgetError carries the bidder's remaining budget.
type InsufficientBudgetError struct {
	AvailableBudget int64
}

func (e InsufficientBudgetError) Error() string {
	return fmt.Sprintf("bid exceeds the team's remaining budget of %d", e.AvailableBudget)
}

// LotSnapshot is the slice of auction state a bid is judged against.
// Callers build it from a row they hold locked so the snapshot cannot go
// stale between validation and the bid insert.
type LotSnapshot struct {
	Live             bool
	CurrentPlayerID  uuid.UUID
	HasCurrentPlayer bool
	CurrentBidAmount int64
	MaxBidIncrement  int64
}

// ParticipantSnapshot describes the bidding team's registration state.
type ParticipantSnapshot struct {
	Registered      bool
	RemainingBudget int64
}

// BidRequest is a candidate bid. Override marks an admin-placed bid that
// bypasses the increment step but none of the other rules.
type BidRequest struct {
	PlayerID uuid.UUID
	Amount   int64
	Override bool
}

// MinimumBid returns the lowest acceptable next bid. The current amount is
// the player's base price while the lot has no bids, so the same formula
// covers the opening bid and every raise after it.
func MinimumBid(currentBidAmount, maxBidIncrement int64) int64 {
	return currentBidAmount + maxBidIncrement
}

// Validate applies the bid acceptance rules in order and returns the first
// violation. A nil result means the bid is acceptable against this snapshot.
func Validate(lot LotSnapshot, participant ParticipantSnapshot, req BidRequest) error {
	if !lot.Live {
		return ErrAuctionNotLive
	}

	if !lot.HasCurrentPlayer || lot.CurrentPlayerID != req.PlayerID {
		return ErrNoActivePlayer
	}

	if !participant.Registered {
		return ErrNotAParticipant
	}

	if !req.Override {
		if minBid := MinimumBid(lot.CurrentBidAmount, lot.MaxBidIncrement); req.Amount < minBid {
			return BidTooLowError{MinimumBid: minBid}
		}
	}

	if req.Amount > participant.RemainingBudget {
		return InsufficientBudgetError{AvailableBudget: participant.RemainingBudget}
	}

	return nil
}

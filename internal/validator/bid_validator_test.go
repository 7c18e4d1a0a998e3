package validator

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openLot(playerID uuid.UUID) LotSnapshot {
	return LotSnapshot{
		Live:             true,
		CurrentPlayerID:  playerID,
		HasCurrentPlayer: true,
		CurrentBidAmount: 1_000_000,
		MaxBidIncrement:  100_000,
	}
}

func registeredTeam() ParticipantSnapshot {
	return ParticipantSnapshot{
		Registered:      true,
		RemainingBudget: 50_000_000,
	}
}

func TestMinimumBid(t *testing.T) {
	// While the lot has no bids the current amount equals the base price,
	// so the opening bid must already clear one increment above it.
	require.Equal(t, int64(1_100_000), MinimumBid(1_000_000, 100_000))
	require.Equal(t, int64(5_600_000), MinimumBid(5_500_000, 100_000))
}

func TestValidateAcceptsMinimumRaise(t *testing.T) {
	playerID := uuid.New()

	err := Validate(openLot(playerID), registeredTeam(), BidRequest{
		PlayerID: playerID,
		Amount:   1_100_000,
	})
	require.NoError(t, err)
}

func TestValidateRejectsLowBid(t *testing.T) {
	playerID := uuid.New()

	// One below the step floor is rejected; the exact floor is accepted.
	err := Validate(openLot(playerID), registeredTeam(), BidRequest{
		PlayerID: playerID,
		Amount:   1_099_999,
	})

	var tooLow BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	require.Equal(t, int64(1_100_000), tooLow.MinimumBid)

	err = Validate(openLot(playerID), registeredTeam(), BidRequest{
		PlayerID: playerID,
		Amount:   1_100_000,
	})
	require.NoError(t, err)

	// Matching the current amount exactly is never enough.
	err = Validate(openLot(playerID), registeredTeam(), BidRequest{
		PlayerID: playerID,
		Amount:   1_000_000,
	})
	require.ErrorAs(t, err, &tooLow)
}

func TestValidateRejectsWhenNotLive(t *testing.T) {
	playerID := uuid.New()
	lot := openLot(playerID)
	lot.Live = false

	err := Validate(lot, registeredTeam(), BidRequest{PlayerID: playerID, Amount: 2_000_000})
	require.ErrorIs(t, err, ErrAuctionNotLive)
}

func TestValidateRejectsWrongPlayer(t *testing.T) {
	lot := openLot(uuid.New())

	err := Validate(lot, registeredTeam(), BidRequest{PlayerID: uuid.New(), Amount: 2_000_000})
	require.ErrorIs(t, err, ErrNoActivePlayer)
}

func TestValidateRejectsClosedLot(t *testing.T) {
	playerID := uuid.New()
	lot := openLot(playerID)
	lot.HasCurrentPlayer = false

	err := Validate(lot, registeredTeam(), BidRequest{PlayerID: playerID, Amount: 2_000_000})
	require.ErrorIs(t, err, ErrNoActivePlayer)
}

func TestValidateRejectsUnregisteredTeam(t *testing.T) {
	playerID := uuid.New()

	err := Validate(openLot(playerID), ParticipantSnapshot{}, BidRequest{
		PlayerID: playerID,
		Amount:   2_000_000,
	})
	require.ErrorIs(t, err, ErrNotAParticipant)
}

func TestValidateRejectsOverBudget(t *testing.T) {
	playerID := uuid.New()
	participant := registeredTeam()
	participant.RemainingBudget = 1_000_000

	err := Validate(openLot(playerID), participant, BidRequest{
		PlayerID: playerID,
		Amount:   1_100_000,
	})

	var noBudget InsufficientBudgetError
	require.ErrorAs(t, err, &noBudget)
	require.Equal(t, int64(1_000_000), noBudget.AvailableBudget)
}

func TestValidateOverrideSkipsStepOnly(t *testing.T) {
	playerID := uuid.New()

	// Below the step but still a raise over the current amount is fine.
	err := Validate(openLot(playerID), registeredTeam(), BidRequest{
		PlayerID: playerID,
		Amount:   1_010_000,
		Override: true,
	})
	require.NoError(t, err)

	// Budget still binds override bids.
	participant := registeredTeam()
	participant.RemainingBudget = 500_000
	err = Validate(openLot(playerID), participant, BidRequest{
		PlayerID: playerID,
		Amount:   1_010_000,
		Override: true,
	})
	var noBudget InsufficientBudgetError
	require.ErrorAs(t, err, &noBudget)

	// So do the lifecycle rules.
	lot := openLot(playerID)
	lot.Live = false
	err = Validate(lot, registeredTeam(), BidRequest{
		PlayerID: playerID,
		Amount:   1_010_000,
		Override: true,
	})
	require.ErrorIs(t, err, ErrAuctionNotLive)
}

func TestValidateRuleOrder(t *testing.T) {
	// A request that breaks every rule at once reports the lifecycle
	// violation first.
	lot := LotSnapshot{Live: false}
	err := Validate(lot, ParticipantSnapshot{}, BidRequest{PlayerID: uuid.New(), Amount: 1})
	require.ErrorIs(t, err, ErrAuctionNotLive)
	require.False(t, errors.Is(err, ErrNotAParticipant))
}

package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidatePlayerBasePrice(t *testing.T) {
	require.NoError(t, ValidatePlayerBasePrice(100_000))
	require.NoError(t, ValidatePlayerBasePrice(2_000_000))
	require.Error(t, ValidatePlayerBasePrice(99_999))
}

func TestValidateBidIncrement(t *testing.T) {
	require.NoError(t, ValidateBidIncrement(10_000))
	require.NoError(t, ValidateBidIncrement(500_000))
	require.Error(t, ValidateBidIncrement(9_999))
}

func TestValidateBidTimeout(t *testing.T) {
	require.NoError(t, ValidateBidTimeout(10))
	require.NoError(t, ValidateBidTimeout(300))
	require.Error(t, ValidateBidTimeout(9))
	require.Error(t, ValidateBidTimeout(301))
}

func TestValidateStartingBudget(t *testing.T) {
	require.NoError(t, ValidateStartingBudget(1_000_000))
	require.Error(t, ValidateStartingBudget(999_999))
}

func TestValidateTournamentYear(t *testing.T) {
	currentYear := int32(time.Now().Year())

	require.NoError(t, ValidateTournamentYear(currentYear))
	require.NoError(t, ValidateTournamentYear(currentYear+1))
	require.NoError(t, ValidateTournamentYear(2000))
	require.Error(t, ValidateTournamentYear(1999))
	require.Error(t, ValidateTournamentYear(currentYear+2))
}

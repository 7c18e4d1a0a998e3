package validator

import (
	"fmt"
	"time"

	"github.com/cricbid/cricbid-BE/internal/util"
)

// ValidatePlayerBasePrice validates the minimum listing price for a player.
func ValidatePlayerBasePrice(price int64) error {
	if price < 100000 {
		return fmt.Errorf("base_price must be at least %s, provided: %s",
			util.FormatMoney(100000), util.FormatMoney(price))
	}
	return nil
}

// ValidateBidIncrement validates the fixed raise step configured on an auction.
func ValidateBidIncrement(increment int64) error {
	if increment < 10000 {
		return fmt.Errorf("max_bid_increment must be at least %s, provided: %s",
			util.FormatMoney(10000), util.FormatMoney(increment))
	}
	return nil
}

// ValidateBidTimeout validates the per-lot countdown duration.
func ValidateBidTimeout(seconds int32) error {
	if seconds < 10 || seconds > 300 {
		return fmt.Errorf("bid_timeout_seconds must be between 10 and 300, provided: %d", seconds)
	}
	return nil
}

// ValidateStartingBudget validates a participating team's purse.
func ValidateStartingBudget(budget int64) error {
	if budget < 1000000 {
		return fmt.Errorf("starting_budget must be at least %s, provided: %s",
			util.FormatMoney(1000000), util.FormatMoney(budget))
	}
	return nil
}

// ValidateTournamentYear validates the season a tournament belongs to.
func ValidateTournamentYear(year int32) error {
	currentYear := int32(time.Now().Year())
	if year < 2000 || year > currentYear+1 {
		return fmt.Errorf("year must be between 2000 and %d, provided: %d", currentYear+1, year)
	}
	return nil
}

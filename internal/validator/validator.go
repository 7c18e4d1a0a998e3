package validator

import (
	"fmt"
	"net/mail"
	"regexp"
)

func ValidateString(value string, minLength int, maxLength int) error {
	n := len(value)
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}

	return nil
}

func ValidatePassword(value string) error {
	if len(value) < 8 || len(value) > 30 {
		return fmt.Errorf("password must be between 8 and 30 characters long")
	}

	if !regexp.MustCompile(`[0-9]`).MatchString(value) {
		return fmt.Errorf("password must contain at least one digit")
	}

	if !regexp.MustCompile(`[a-zA-Z]`).MatchString(value) {
		return fmt.Errorf("password must contain at least one letter")
	}

	return nil
}

func ValidateEmail(value string) error {
	if err := ValidateString(value, 6, 200); err != nil {
		return err
	}

	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("is not a valid email address")
	}

	return nil
}

func ValidateFullName(value string) error {
	return ValidateString(value, 2, 100)
}

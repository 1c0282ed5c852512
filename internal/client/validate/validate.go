// Package validate checks user input locally, before any network call is
// attempted. A validation failure is non-retryable by the system: the user
// must correct the input.
package validate

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/visualcaption/vcap/internal/common"
)

// Email checks that the address is non-empty and parses as an address.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email required", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	return nil
}

// Password checks that the password is non-empty.
func Password(password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("%w: password required", common.ErrorValidation)
	}
	return nil
}

// PasswordsMatch checks the password confirmation.
func PasswordsMatch(password, confirmation []byte) error {
	if string(password) != string(confirmation) {
		return fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	}
	return nil
}

// OTP checks that the one-time code is non-empty.
func OTP(otp string) error {
	if strings.TrimSpace(otp) == "" {
		return fmt.Errorf("%w: verification code required", common.ErrorValidation)
	}
	return nil
}

// FeedbackContent checks that feedback text is non-empty.
func FeedbackContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: feedback content required", common.ErrorValidation)
	}
	return nil
}

// FeedbackRating checks that the rating is an integer in [1,5].
func FeedbackRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", common.ErrorValidation)
	}
	return nil
}

// Package reward tracks winners through the notify/payout/verify lifecycle.
// The status machine is PENDING -> SENT -> CONFIRMED with FAILED reachable
// from PENDING or SENT. CONFIRMED is only ever entered through a successful
// ledger verification; FAILED is an operator decision, never automatic.
package reward

import (
	"errors"
	"fmt"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

var ErrInvalidTransition = errors.New("invalid winner status transition")

var validStatuses = map[string]struct{}{
	surveyTypes.WINNER_STATUS_PENDING:   {},
	surveyTypes.WINNER_STATUS_SENT:      {},
	surveyTypes.WINNER_STATUS_CONFIRMED: {},
	surveyTypes.WINNER_STATUS_FAILED:    {},
}

// CanTransition reports whether the status machine defines the transition.
// Operator overrides bypass this check, see Service.OverrideStatus.
func CanTransition(from string, to string) bool {
	switch to {
	case surveyTypes.WINNER_STATUS_SENT:
		return from == surveyTypes.WINNER_STATUS_PENDING
	case surveyTypes.WINNER_STATUS_CONFIRMED:
		return from == surveyTypes.WINNER_STATUS_SENT
	case surveyTypes.WINNER_STATUS_FAILED:
		return from == surveyTypes.WINNER_STATUS_PENDING || from == surveyTypes.WINNER_STATUS_SENT
	default:
		return false
	}
}

func IsValidStatus(status string) bool {
	_, ok := validStatuses[status]
	return ok
}

func transitionError(from string, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

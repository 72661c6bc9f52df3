// Package participation decides whether an identity may submit a response to
// a survey. Two independent signals block a submission: the identity's
// completed-survey list and a fingerprint match among the survey's stored
// responses.
package participation

const (
	DENY_REASON_ALREADY_COMPLETED = "already-completed"
	DENY_REASON_FINGERPRINT_MATCH = "fingerprint-match"
)

// Store is the slice of the survey DB the guard needs.
type Store interface {
	GetParticipatedSurveys(identity string) ([]string, error)
	HasResponseWithFingerprint(surveyKey string, fingerprint string) (bool, error)
	RecordParticipation(identity string, surveyKey string) error
	IncrementBlockedAttempts(surveyKey string) error
}

type Decision struct {
	Allowed bool
	Reason  string
}

type Guard struct {
	store Store
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store}
}

// Check evaluates whether the identity may submit to the survey. On denial the
// survey's blocked-attempt counter is incremented before returning. An unknown
// survey key yields allow: there is nothing to deduplicate against.
func (g *Guard) Check(surveyKey string, identity string) (Decision, error) {
	completed, err := g.store.GetParticipatedSurveys(identity)
	if err != nil {
		return Decision{}, err
	}
	for _, key := range completed {
		if key == surveyKey {
			return g.deny(surveyKey, DENY_REASON_ALREADY_COMPLETED)
		}
	}

	matched, err := g.store.HasResponseWithFingerprint(surveyKey, identity)
	if err != nil {
		return Decision{}, err
	}
	if matched {
		return g.deny(surveyKey, DENY_REASON_FINGERPRINT_MATCH)
	}

	return Decision{Allowed: true}, nil
}

// RecordCompletion adds the survey to the identity's completed list. Adding an
// already present key is a no-op.
func (g *Guard) RecordCompletion(surveyKey string, identity string) error {
	return g.store.RecordParticipation(identity, surveyKey)
}

func (g *Guard) deny(surveyKey string, reason string) (Decision, error) {
	if err := g.store.IncrementBlockedAttempts(surveyKey); err != nil {
		return Decision{}, err
	}
	return Decision{Allowed: false, Reason: reason}, nil
}

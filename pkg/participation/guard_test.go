package participation

import "testing"

type mockStore struct {
	participated    map[string][]string
	fingerprints    map[string][]string
	blockedAttempts map[string]int
}

func newMockStore() *mockStore {
	return &mockStore{
		participated:    map[string][]string{},
		fingerprints:    map[string][]string{},
		blockedAttempts: map[string]int{},
	}
}

func (m *mockStore) GetParticipatedSurveys(identity string) ([]string, error) {
	return m.participated[identity], nil
}

func (m *mockStore) HasResponseWithFingerprint(surveyKey string, fingerprint string) (bool, error) {
	for _, fp := range m.fingerprints[surveyKey] {
		if fp == fingerprint {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) RecordParticipation(identity string, surveyKey string) error {
	for _, key := range m.participated[identity] {
		if key == surveyKey {
			return nil
		}
	}
	m.participated[identity] = append(m.participated[identity], surveyKey)
	return nil
}

func (m *mockStore) IncrementBlockedAttempts(surveyKey string) error {
	m.blockedAttempts[surveyKey]++
	return nil
}

func TestGuardCheck(t *testing.T) {
	t.Run("allows fresh identity", func(t *testing.T) {
		store := newMockStore()
		guard := NewGuard(store)

		decision, err := guard.Check("survey-1", "fp-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decision.Allowed {
			t.Error("fresh identity should be allowed")
		}
		if store.blockedAttempts["survey-1"] != 0 {
			t.Error("allowed submission should not increment blocked attempts")
		}
	})

	t.Run("denies on completed list entry", func(t *testing.T) {
		store := newMockStore()
		store.participated["fp-a"] = []string{"survey-1"}
		guard := NewGuard(store)

		decision, err := guard.Check("survey-1", "fp-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decision.Allowed {
			t.Error("completed survey should be denied")
		}
		if decision.Reason != DENY_REASON_ALREADY_COMPLETED {
			t.Errorf("reason = %s, want %s", decision.Reason, DENY_REASON_ALREADY_COMPLETED)
		}
		if store.blockedAttempts["survey-1"] != 1 {
			t.Errorf("blocked attempts = %d, want 1", store.blockedAttempts["survey-1"])
		}
	})

	t.Run("denies on fingerprint match", func(t *testing.T) {
		store := newMockStore()
		store.fingerprints["survey-1"] = []string{"fp-a"}
		guard := NewGuard(store)

		decision, err := guard.Check("survey-1", "fp-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decision.Allowed {
			t.Error("fingerprint match should be denied")
		}
		if decision.Reason != DENY_REASON_FINGERPRINT_MATCH {
			t.Errorf("reason = %s, want %s", decision.Reason, DENY_REASON_FINGERPRINT_MATCH)
		}
	})

	t.Run("either signal alone blocks", func(t *testing.T) {
		store := newMockStore()
		store.participated["fp-a"] = []string{"survey-1"}
		store.fingerprints["survey-2"] = []string{"fp-a"}
		guard := NewGuard(store)

		for _, surveyKey := range []string{"survey-1", "survey-2"} {
			decision, err := guard.Check(surveyKey, "fp-a")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.Allowed {
				t.Errorf("submission to %s should be denied", surveyKey)
			}
		}
	})

	t.Run("completed entry for other survey does not block", func(t *testing.T) {
		store := newMockStore()
		store.participated["fp-a"] = []string{"survey-2"}
		guard := NewGuard(store)

		decision, err := guard.Check("survey-1", "fp-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decision.Allowed {
			t.Error("participation in another survey should not block")
		}
	})

	t.Run("unknown survey key allows", func(t *testing.T) {
		store := newMockStore()
		guard := NewGuard(store)

		decision, err := guard.Check("no-such-survey", "fp-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decision.Allowed {
			t.Error("unknown survey should allow, nothing to block against")
		}
	})
}

func TestGuardRecordCompletion(t *testing.T) {
	store := newMockStore()
	guard := NewGuard(store)

	if err := guard.RecordCompletion("survey-1", "fp-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// recording twice must not duplicate the entry
	if err := guard.RecordCompletion("survey-1", "fp-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(store.participated["fp-a"]); got != 1 {
		t.Errorf("participated entries = %d, want 1", got)
	}

	decision, err := guard.Check("survey-1", "fp-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Error("identity should be denied after recorded completion")
	}
}

package lottery

import (
	"fmt"
	"testing"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

type mockStore struct {
	responses map[string][]surveyTypes.SurveyResponse
	winners   map[string][]surveyTypes.Winner
}

func newMockStore() *mockStore {
	return &mockStore{
		responses: map[string][]surveyTypes.SurveyResponse{},
		winners:   map[string][]surveyTypes.Winner{},
	}
}

func (m *mockStore) GetResponsesBySurvey(surveyKey string) ([]surveyTypes.SurveyResponse, error) {
	return m.responses[surveyKey], nil
}

func (m *mockStore) ReplaceWinners(surveyKey string, winners []surveyTypes.Winner) error {
	m.winners[surveyKey] = winners
	return nil
}

func answeredResponse(id string, fingerprint string) surveyTypes.SurveyResponse {
	return surveyTypes.SurveyResponse{
		ResponseID: id,
		Answers:    map[string]surveyTypes.Answer{"q1": {Option: "A"}},
		Metadata:   surveyTypes.ResponseMetadata{Fingerprint: fingerprint},
	}
}

func TestDrawSelectsDistinctWinners(t *testing.T) {
	store := newMockStore()
	for i := 0; i < 10; i++ {
		store.responses["survey-1"] = append(store.responses["survey-1"],
			answeredResponse(fmt.Sprintf("r%d", i), fmt.Sprintf("fp%d", i)))
	}
	engine := NewEngine(store)

	winners, err := engine.Draw("survey-1", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(winners) != 4 {
		t.Fatalf("winner count = %d, want 4", len(winners))
	}

	seen := map[string]bool{}
	for _, w := range winners {
		if seen[w.UserID] {
			t.Errorf("duplicate winner: %s", w.UserID)
		}
		seen[w.UserID] = true
		if w.Status != surveyTypes.WINNER_STATUS_PENDING {
			t.Errorf("winner status = %s, want PENDING", w.Status)
		}
		if w.Notified {
			t.Error("fresh winner should not be notified")
		}
		if w.SurveyKey != "survey-1" {
			t.Errorf("winner surveyKey = %s, want survey-1", w.SurveyKey)
		}
	}
}

func TestDrawExcludesEmptyAnswers(t *testing.T) {
	store := newMockStore()
	store.responses["survey-1"] = []surveyTypes.SurveyResponse{
		answeredResponse("r1", "fp1"),
		{ResponseID: "r2", Answers: map[string]surveyTypes.Answer{}, Metadata: surveyTypes.ResponseMetadata{Fingerprint: "fp2"}},
		answeredResponse("r3", "fp3"),
	}
	engine := NewEngine(store)

	winners, err := engine.Draw("survey-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(winners) != 2 {
		t.Fatalf("winner count = %d, want 2", len(winners))
	}
	got := map[string]bool{}
	for _, w := range winners {
		got[w.UserID] = true
	}
	if !got["fp1"] || !got["fp3"] {
		t.Errorf("winners = %v, want exactly fp1 and fp3", got)
	}
	if got["fp2"] {
		t.Error("response with empty answers must not win")
	}
}

func TestDrawWithSmallPool(t *testing.T) {
	store := newMockStore()
	store.responses["survey-1"] = []surveyTypes.SurveyResponse{
		answeredResponse("r1", "fp1"),
		answeredResponse("r2", "fp2"),
	}
	engine := NewEngine(store)

	winners, err := engine.Draw("survey-1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(winners) != 2 {
		t.Errorf("winner count = %d, want all 2 eligible", len(winners))
	}
}

func TestDrawWithEmptyPool(t *testing.T) {
	store := newMockStore()
	engine := NewEngine(store)

	winners, err := engine.Draw("survey-1", 3)
	if err != nil {
		t.Fatalf("empty pool should not be an error, got: %v", err)
	}
	if len(winners) != 0 {
		t.Errorf("winner count = %d, want 0", len(winners))
	}
}

func TestDrawFallsBackToResponseID(t *testing.T) {
	store := newMockStore()
	store.responses["survey-1"] = []surveyTypes.SurveyResponse{
		{ResponseID: "r1", RewardAddress: "winner@example.com", Answers: map[string]surveyTypes.Answer{"q1": {Text: "ok"}}},
	}
	engine := NewEngine(store)

	winners, err := engine.Draw("survey-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(winners) != 1 || winners[0].UserID != "r1" {
		t.Errorf("winners = %v, want userID r1", winners)
	}
	if winners[0].Contact != "winner@example.com" {
		t.Errorf("winner contact = %q, want reward address carried over", winners[0].Contact)
	}
}

func TestRedrawReplacesOnlyOwnSurvey(t *testing.T) {
	store := newMockStore()
	store.responses["survey-1"] = []surveyTypes.SurveyResponse{
		answeredResponse("r1", "fp1"),
		answeredResponse("r2", "fp2"),
	}
	store.responses["survey-2"] = []surveyTypes.SurveyResponse{
		answeredResponse("r3", "fp3"),
	}
	engine := NewEngine(store)

	if _, err := engine.Draw("survey-2", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.Draw("survey-1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.Draw("survey-1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.winners["survey-1"]) != 1 {
		t.Errorf("survey-1 winners = %d, re-draw should replace not append", len(store.winners["survey-1"]))
	}
	if len(store.winners["survey-2"]) != 1 {
		t.Errorf("survey-2 winners = %d, other surveys must be untouched", len(store.winners["survey-2"]))
	}
}

// Over many repeated draws every eligible response should win with roughly
// equal frequency. With 20 entries, 5 picks and 4000 trials each entry
// expects 1000 wins; a chi-square over 19 degrees of freedom stays far below
// 60 for an unbiased shuffle (p ~ 3e-6 of a false failure).
func TestDrawFairness(t *testing.T) {
	const (
		poolSize = 20
		picks    = 5
		trials   = 4000
	)

	store := newMockStore()
	for i := 0; i < poolSize; i++ {
		store.responses["survey-1"] = append(store.responses["survey-1"],
			answeredResponse(fmt.Sprintf("r%d", i), fmt.Sprintf("fp%d", i)))
	}
	engine := NewEngine(store)

	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		winners, err := engine.Draw("survey-1", picks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, w := range winners {
			counts[w.UserID]++
		}
	}

	expected := float64(trials*picks) / float64(poolSize)
	chiSquare := 0.0
	for i := 0; i < poolSize; i++ {
		observed := float64(counts[fmt.Sprintf("fp%d", i)])
		diff := observed - expected
		chiSquare += diff * diff / expected
	}

	if chiSquare > 60 {
		t.Errorf("chi-square = %.2f over %d draws, selection looks biased: %v", chiSquare, trials, counts)
	}
}

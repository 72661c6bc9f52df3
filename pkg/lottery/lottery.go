// Package lottery draws reward winners from a survey's valid responses using
// an unbiased Fisher-Yates shuffle. Each draw uses a fresh, unseeded
// randomness source so results are not reproducible.
package lottery

import (
	"math/rand/v2"
	"time"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

// Store is the slice of the survey DB the engine needs. ReplaceWinners swaps
// the survey's entire winner set; winners of other surveys are untouched.
type Store interface {
	GetResponsesBySurvey(surveyKey string) ([]surveyTypes.SurveyResponse, error)
	ReplaceWinners(surveyKey string, winners []surveyTypes.Winner) error
}

type Engine struct {
	store Store
	now   func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}

// Draw selects up to count winners uniformly at random without replacement
// from the survey's eligible responses and persists them as the survey's new
// winner set. A response is eligible if at least one question was answered.
// Fewer eligible responses than requested is not an error: the draw returns
// all of them. An empty pool yields an empty winner set.
func (e *Engine) Draw(surveyKey string, count int) ([]surveyTypes.Winner, error) {
	responses, err := e.store.GetResponsesBySurvey(surveyKey)
	if err != nil {
		return nil, err
	}

	eligible := make([]surveyTypes.SurveyResponse, 0, len(responses))
	for _, r := range responses {
		if r.HasAnswers() {
			eligible = append(eligible, r)
		}
	}

	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if count > len(eligible) {
		count = len(eligible)
	}
	if count < 0 {
		count = 0
	}

	drawnAt := e.now().Unix()
	winners := make([]surveyTypes.Winner, 0, count)
	for _, r := range eligible[:count] {
		winners = append(winners, surveyTypes.Winner{
			SurveyKey: surveyKey,
			UserID:    r.WinnerUserID(),
			Contact:   r.RewardAddress,
			Status:    surveyTypes.WINNER_STATUS_PENDING,
			Notified:  false,
			DrawnAt:   drawnAt,
		})
	}

	if err := e.store.ReplaceWinners(surveyKey, winners); err != nil {
		return nil, err
	}
	return winners, nil
}

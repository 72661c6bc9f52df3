package apihandlers

import (
	"testing"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

func TestAnswerDistributions(t *testing.T) {
	survey := surveyTypes.Survey{
		SurveyKey: "transit2026",
		Questions: []surveyTypes.Question{
			{ID: "q1", Type: surveyTypes.QUESTION_TYPE_SINGLE_CHOICE, Options: []string{"bus", "tram"}},
			{ID: "q2", Type: surveyTypes.QUESTION_TYPE_MULTIPLE_CHOICE, Options: []string{"morning", "evening"}},
			{ID: "q3", Type: surveyTypes.QUESTION_TYPE_TEXT},
		},
	}

	responses := []surveyTypes.SurveyResponse{
		{Answers: map[string]surveyTypes.Answer{
			"q1": {Option: "bus"},
			"q2": {Options: []string{"morning", "evening"}},
			"q3": {Text: "more night lines"},
		}},
		{Answers: map[string]surveyTypes.Answer{
			"q1": {Option: "bus"},
		}},
		{Answers: map[string]surveyTypes.Answer{
			"q2": {Options: []string{"evening"}},
		}},
	}

	distributions := answerDistributions(survey, responses)

	q1, ok := distributions["q1"]
	if !ok {
		t.Fatal("missing distribution for q1")
	}
	if got := q1["answered"].(int64); got != 2 {
		t.Errorf("unexpected answered count for q1: %d", got)
	}
	q1Options := q1["options"].(map[string]int64)
	if q1Options["bus"] != 2 || q1Options["tram"] != 0 {
		t.Errorf("unexpected option counts for q1: %v", q1Options)
	}

	q2Options := distributions["q2"]["options"].(map[string]int64)
	if q2Options["morning"] != 1 || q2Options["evening"] != 2 {
		t.Errorf("unexpected option counts for q2: %v", q2Options)
	}

	q3 := distributions["q3"]
	if got := q3["answered"].(int64); got != 1 {
		t.Errorf("unexpected answered count for q3: %d", got)
	}
	if _, hasOptions := q3["options"]; hasOptions {
		t.Error("text question must not report option counts")
	}
}

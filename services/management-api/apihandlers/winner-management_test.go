package apihandlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
	"github.com/civicpulse/civicpulse-backend/pkg/ledger"
	"github.com/civicpulse/civicpulse-backend/pkg/reward"
	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
	"github.com/gin-gonic/gin"
)

type mockRewardStore struct {
	winners map[string]*surveyTypes.Winner
}

func winnerKey(surveyKey string, userID string) string {
	return surveyKey + "/" + userID
}

func (m *mockRewardStore) GetSurveyByKey(surveyKey string) (surveyTypes.Survey, error) {
	return surveyTypes.Survey{SurveyKey: surveyKey}, nil
}

func (m *mockRewardStore) GetWinner(surveyKey string, userID string) (surveyTypes.Winner, error) {
	if w, ok := m.winners[winnerKey(surveyKey, userID)]; ok {
		return *w, nil
	}
	return surveyTypes.Winner{}, surveyDB.ErrWinnerNotFound
}

func (m *mockRewardStore) GetWinnerByTxHash(surveyKey string, txHash string) (surveyTypes.Winner, error) {
	return surveyTypes.Winner{}, surveyDB.ErrWinnerNotFound
}

func (m *mockRewardStore) UpdateWinnerStatus(surveyKey string, userID string, status string) error {
	w, ok := m.winners[winnerKey(surveyKey, userID)]
	if !ok {
		return surveyDB.ErrWinnerNotFound
	}
	w.Status = status
	return nil
}

func (m *mockRewardStore) StampWinnerPayout(surveyKey string, userID string, txHash string, network string) error {
	return nil
}

func (m *mockRewardStore) SetWinnerNotified(surveyKey string, userID string) error {
	return nil
}

func (m *mockRewardStore) UpsertCryptoLog(log surveyTypes.CryptoLog) error {
	return nil
}

func (m *mockRewardStore) UpdateCryptoLogVerification(surveyKey string, txHash string, status string, verifiedAt int64) error {
	return nil
}

func newWinnerStatusTestRouter(store *mockRewardStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := &HttpEndpoints{
		rewardService: reward.NewService(store, reward.SyntheticExecutor{}, ledger.VerifierSet{}, nil),
	}
	router := gin.New()
	h.addWinnerManagementAPI(router.Group("/surveys"))
	return router
}

func putStatus(router *gin.Engine, surveyKey string, userID string, status string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut,
		"/surveys/"+surveyKey+"/winners/"+userID+"/status",
		strings.NewReader(`{"status":"`+status+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOverrideWinnerStatusEndpoint(t *testing.T) {
	t.Run("failing a sent winner", func(t *testing.T) {
		store := &mockRewardStore{winners: map[string]*surveyTypes.Winner{
			"s1/u1": {SurveyKey: "s1", UserID: "u1", Status: surveyTypes.WINNER_STATUS_SENT},
		}}
		router := newWinnerStatusTestRouter(store)

		rec := putStatus(router, "s1", "u1", surveyTypes.WINNER_STATUS_FAILED)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if store.winners["s1/u1"].Status != surveyTypes.WINNER_STATUS_FAILED {
			t.Errorf("winner status = %s, want FAILED", store.winners["s1/u1"].Status)
		}
	})

	t.Run("failing a confirmed winner is rejected", func(t *testing.T) {
		store := &mockRewardStore{winners: map[string]*surveyTypes.Winner{
			"s1/u1": {SurveyKey: "s1", UserID: "u1", Status: surveyTypes.WINNER_STATUS_CONFIRMED},
		}}
		router := newWinnerStatusTestRouter(store)

		rec := putStatus(router, "s1", "u1", surveyTypes.WINNER_STATUS_FAILED)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409, body %s", rec.Code, rec.Body.String())
		}
		if store.winners["s1/u1"].Status != surveyTypes.WINNER_STATUS_CONFIRMED {
			t.Errorf("winner status = %s, should be untouched", store.winners["s1/u1"].Status)
		}
	})

	t.Run("plain override still bypasses the machine", func(t *testing.T) {
		store := &mockRewardStore{winners: map[string]*surveyTypes.Winner{
			"s1/u1": {SurveyKey: "s1", UserID: "u1", Status: surveyTypes.WINNER_STATUS_PENDING},
		}}
		router := newWinnerStatusTestRouter(store)

		rec := putStatus(router, "s1", "u1", surveyTypes.WINNER_STATUS_CONFIRMED)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if store.winners["s1/u1"].Status != surveyTypes.WINNER_STATUS_CONFIRMED {
			t.Errorf("winner status = %s, want CONFIRMED", store.winners["s1/u1"].Status)
		}
	})

	t.Run("unknown winner", func(t *testing.T) {
		router := newWinnerStatusTestRouter(&mockRewardStore{winners: map[string]*surveyTypes.Winner{}})

		rec := putStatus(router, "s1", "nobody", surveyTypes.WINNER_STATUS_FAILED)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown status value", func(t *testing.T) {
		store := &mockRewardStore{winners: map[string]*surveyTypes.Winner{
			"s1/u1": {SurveyKey: "s1", UserID: "u1", Status: surveyTypes.WINNER_STATUS_PENDING},
		}}
		router := newWinnerStatusTestRouter(store)

		rec := putStatus(router, "s1", "u1", "ARCHIVED")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
		}
	})
}

package reward

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/civicpulse/civicpulse-backend/pkg/ledger"
	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

var ErrAlreadyNotified = errors.New("winner already notified")

// Store is the slice of the survey DB the reward service needs. Every write
// is persisted immediately; there is no transactional atomicity across the
// payout's two writes (crypto log insert and winner update).
type Store interface {
	GetSurveyByKey(surveyKey string) (surveyTypes.Survey, error)
	GetWinner(surveyKey string, userID string) (surveyTypes.Winner, error)
	GetWinnerByTxHash(surveyKey string, txHash string) (surveyTypes.Winner, error)
	UpdateWinnerStatus(surveyKey string, userID string, status string) error
	StampWinnerPayout(surveyKey string, userID string, txHash string, network string) error
	SetWinnerNotified(surveyKey string, userID string) error
	UpsertCryptoLog(log surveyTypes.CryptoLog) error
	UpdateCryptoLogVerification(surveyKey string, txHash string, status string, verifiedAt int64) error
}

// Notifier delivers a winner notification over the reward's delivery channel.
type Notifier interface {
	NotifyWinner(winner surveyTypes.Winner, survey surveyTypes.Survey) error
}

type Service struct {
	store     Store
	executor  PayoutExecutor
	verifiers ledger.VerifierSet
	notifier  Notifier
	now       func() time.Time
}

func NewService(store Store, executor PayoutExecutor, verifiers ledger.VerifierSet, notifier Notifier) *Service {
	return &Service{
		store:     store,
		executor:  executor,
		verifiers: verifiers,
		notifier:  notifier,
		now:       time.Now,
	}
}

// ExecutePayout moves a PENDING winner to SENT. For crypto rewards it runs the
// payout executor, records a PENDING crypto log and stamps the winner with the
// transaction hash and network. For all other reward types it is a plain
// status update.
func (s *Service) ExecutePayout(surveyKey string, userID string) (surveyTypes.Winner, error) {
	winner, err := s.store.GetWinner(surveyKey, userID)
	if err != nil {
		return winner, err
	}
	if !CanTransition(winner.Status, surveyTypes.WINNER_STATUS_SENT) {
		return winner, transitionError(winner.Status, surveyTypes.WINNER_STATUS_SENT)
	}

	survey, err := s.store.GetSurveyByKey(surveyKey)
	if err != nil {
		return winner, err
	}

	if survey.Reward == nil || survey.Reward.Type != surveyTypes.REWARD_TYPE_CRYPTO {
		if err := s.store.UpdateWinnerStatus(surveyKey, userID, surveyTypes.WINNER_STATUS_SENT); err != nil {
			return winner, err
		}
		winner.Status = surveyTypes.WINNER_STATUS_SENT
		return winner, nil
	}

	network := surveyTypes.CRYPTO_NETWORK_TRC20
	if survey.Reward.CryptoInfo != nil && survey.Reward.CryptoInfo.Network != "" {
		network = survey.Reward.CryptoInfo.Network
	}

	txHash, address, err := s.executor.Execute(network, survey.Reward.Amount)
	if err != nil {
		return winner, fmt.Errorf("payout execution failed: %w", err)
	}

	log := surveyTypes.CryptoLog{
		SurveyKey: surveyKey,
		Address:   address,
		Amount:    survey.Reward.Amount,
		Network:   network,
		TxHash:    txHash,
		Status:    surveyTypes.CRYPTO_LOG_STATUS_PENDING,
		CreatedAt: s.now().Unix(),
	}
	if err := s.store.UpsertCryptoLog(log); err != nil {
		return winner, err
	}

	if err := s.store.StampWinnerPayout(surveyKey, userID, txHash, network); err != nil {
		return winner, err
	}

	slog.Info("crypto payout executed",
		slog.String("surveyKey", surveyKey),
		slog.String("userID", userID),
		slog.String("network", network),
		slog.String("txHash", txHash))

	winner.Status = surveyTypes.WINNER_STATUS_SENT
	winner.TxHash = txHash
	winner.Network = network
	return winner, nil
}

// VerifyPayout looks the transaction up on its ledger and writes the
// normalized status back into the crypto log. On SUCCESS the associated
// winner, if currently SENT, advances to CONFIRMED. A transport-level ERROR
// leaves the log untouched and is only reported back to the operator.
// Verification is idempotent: re-checking a settled hash is expected.
func (s *Service) VerifyPayout(surveyKey string, txHash string, network string) (ledger.VerificationResult, error) {
	verifier, err := s.verifiers.ForNetwork(network)
	if err != nil {
		return ledger.VerificationResult{}, err
	}

	result := verifier.CheckTx(txHash)

	if result.Status != ledger.VERIFICATION_STATUS_ERROR {
		if err := s.store.UpdateCryptoLogVerification(surveyKey, txHash, result.Status, s.now().Unix()); err != nil {
			return result, err
		}
	}

	if result.Success {
		winner, err := s.store.GetWinnerByTxHash(surveyKey, txHash)
		if err == nil && winner.Status == surveyTypes.WINNER_STATUS_SENT {
			if err := s.store.UpdateWinnerStatus(surveyKey, winner.UserID, surveyTypes.WINNER_STATUS_CONFIRMED); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// NotifyWinner generates and dispatches the winner notification, then sets the
// notified flag. The flag is set at most once: a second call is a no-op with
// no duplicate message.
func (s *Service) NotifyWinner(surveyKey string, userID string) error {
	winner, err := s.store.GetWinner(surveyKey, userID)
	if err != nil {
		return err
	}
	if winner.Notified {
		return nil
	}

	survey, err := s.store.GetSurveyByKey(surveyKey)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyWinner(winner, survey); err != nil {
			return fmt.Errorf("failed to dispatch winner notification: %w", err)
		}
	}

	return s.store.SetWinnerNotified(surveyKey, userID)
}

// MarkFailed is the operator decision to fail a winner. Only PENDING and SENT
// winners can fail; CONFIRMED stays terminal on this path.
func (s *Service) MarkFailed(surveyKey string, userID string) error {
	winner, err := s.store.GetWinner(surveyKey, userID)
	if err != nil {
		return err
	}
	if !CanTransition(winner.Status, surveyTypes.WINNER_STATUS_FAILED) {
		return transitionError(winner.Status, surveyTypes.WINNER_STATUS_FAILED)
	}
	return s.store.UpdateWinnerStatus(surveyKey, userID, surveyTypes.WINNER_STATUS_FAILED)
}

// OverrideStatus is a plain field write for manual operator resets. It
// validates the status value but deliberately not the transition.
func (s *Service) OverrideStatus(surveyKey string, userID string, status string) error {
	if !IsValidStatus(status) {
		return fmt.Errorf("unknown winner status: %s", status)
	}
	if _, err := s.store.GetWinner(surveyKey, userID); err != nil {
		return err
	}
	slog.Info("winner status overridden by operator",
		slog.String("surveyKey", surveyKey),
		slog.String("userID", userID),
		slog.String("status", status))
	return s.store.UpdateWinnerStatus(surveyKey, userID, status)
}

package main

import (
	"log/slog"
	"time"

	"github.com/civicpulse/civicpulse-backend/pkg/ledger"
	"github.com/civicpulse/civicpulse-backend/pkg/reward"
)

func main() {
	slog.Info("Starting payout reverify job")
	start := time.Now()

	verifiers := ledger.VerifierSet{
		Tron:      ledger.NewTronClient(conf.PayoutConfig.TronGridURL, conf.PayoutConfig.VerifyReqTimeout),
		Etherscan: ledger.NewEtherscanClient(conf.PayoutConfig.EtherscanURL, conf.PayoutConfig.EtherscanAPIKey, conf.PayoutConfig.VerifyReqTimeout),
	}

	rewardService := reward.NewService(
		surveyDBService,
		reward.SyntheticExecutor{},
		verifiers,
		nil,
	)

	reverifyPendingLogs(rewardService)
	reverifySentWinners(rewardService)

	slog.Info("Payout reverify job completed", slog.String("duration", time.Since(start).String()))
}

// reverifyPendingLogs re-checks every crypto log that has not reached a final
// verification status yet.
func reverifyPendingLogs(rewardService *reward.Service) {
	logs, err := surveyDBService.GetPendingCryptoLogs()
	if err != nil {
		slog.Error("Failed to get pending crypto logs", slog.String("error", err.Error()))
		return
	}

	for _, log := range logs {
		result, err := rewardService.VerifyPayout(log.SurveyKey, log.TxHash, log.Network)
		if err != nil {
			slog.Error("Failed to verify payout", slog.String("surveyKey", log.SurveyKey), slog.String("txHash", log.TxHash), slog.String("error", err.Error()))
			continue
		}
		slog.Info("Re-verified payout", slog.String("surveyKey", log.SurveyKey), slog.String("txHash", log.TxHash), slog.String("status", result.Status))
	}
}

// reverifySentWinners re-checks winners stuck in SENT whose transaction might
// have settled since the last run.
func reverifySentWinners(rewardService *reward.Service) {
	winners, err := surveyDBService.GetSentWinnersWithTxHash()
	if err != nil {
		slog.Error("Failed to get sent winners", slog.String("error", err.Error()))
		return
	}

	for _, winner := range winners {
		result, err := rewardService.VerifyPayout(winner.SurveyKey, winner.TxHash, winner.Network)
		if err != nil {
			slog.Error("Failed to verify payout", slog.String("surveyKey", winner.SurveyKey), slog.String("txHash", winner.TxHash), slog.String("error", err.Error()))
			continue
		}
		slog.Info("Re-verified winner payout", slog.String("surveyKey", winner.SurveyKey), slog.String("userID", winner.UserID), slog.String("status", result.Status))
	}
}

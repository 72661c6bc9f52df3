package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const DEFAULT_TRONGRID_URL = "https://api.trongrid.io"

// TronClient verifies TRC20 transactions through the TronGrid transaction
// lookup endpoint.
type TronClient struct {
	RootURL string
	Timeout time.Duration
}

type tronTxRet struct {
	ContractRet string `json:"contractRet"`
}

type tronTx struct {
	Ret            []tronTxRet `json:"ret"`
	BlockNumber    int64       `json:"blockNumber"`
	BlockTimestamp int64       `json:"block_timestamp"`
}

type tronTxResponse struct {
	Data []tronTx `json:"data"`
}

func NewTronClient(rootURL string, timeout time.Duration) *TronClient {
	if rootURL == "" {
		rootURL = DEFAULT_TRONGRID_URL
	}
	return &TronClient{
		RootURL: rootURL,
		Timeout: timeout,
	}
}

func (c *TronClient) CheckTx(txHash string) VerificationResult {
	client := &http.Client{
		Timeout: c.Timeout,
	}

	resp, err := client.Get(c.RootURL + "/v1/transactions/" + txHash)
	if err != nil {
		slog.Error("TronGrid lookup failed", slog.String("txHash", txHash), slog.String("error", err.Error()))
		return VerificationResult{Status: VERIFICATION_STATUS_ERROR}
	}
	defer resp.Body.Close()

	var body tronTxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Error("error decoding TronGrid response", slog.String("txHash", txHash), slog.String("error", err.Error()))
		return VerificationResult{Status: VERIFICATION_STATUS_ERROR}
	}

	if len(body.Data) == 0 {
		return VerificationResult{Status: VERIFICATION_STATUS_NOT_FOUND}
	}

	tx := body.Data[0]
	if len(tx.Ret) == 0 {
		// accepted by the network but not yet executed
		return VerificationResult{Status: VERIFICATION_STATUS_PENDING}
	}

	if tx.Ret[0].ContractRet == "SUCCESS" {
		return VerificationResult{
			Success:     true,
			Status:      VERIFICATION_STATUS_SUCCESS,
			BlockNumber: tx.BlockNumber,
			Timestamp:   tx.BlockTimestamp,
		}
	}
	return VerificationResult{
		Status:      VERIFICATION_STATUS_FAILED,
		BlockNumber: tx.BlockNumber,
		Timestamp:   tx.BlockTimestamp,
	}
}

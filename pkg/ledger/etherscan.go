package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const DEFAULT_ETHERSCAN_URL = "https://api.etherscan.io"

// EtherscanClient verifies ERC20 transactions through the Etherscan receipt
// status endpoint. The free tier is rate limited; a rejected call surfaces
// once as ERROR, there is no retry.
type EtherscanClient struct {
	RootURL string
	APIKey  string
	Timeout time.Duration
}

type etherscanReceipt struct {
	Status string `json:"status"`
}

type etherscanResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Result  *etherscanReceipt `json:"result"`
}

func NewEtherscanClient(rootURL string, apiKey string, timeout time.Duration) *EtherscanClient {
	if rootURL == "" {
		rootURL = DEFAULT_ETHERSCAN_URL
	}
	return &EtherscanClient{
		RootURL: rootURL,
		APIKey:  apiKey,
		Timeout: timeout,
	}
}

func (c *EtherscanClient) CheckTx(txHash string) VerificationResult {
	client := &http.Client{
		Timeout: c.Timeout,
	}

	query := url.Values{}
	query.Set("module", "transaction")
	query.Set("action", "gettxreceiptstatus")
	query.Set("txhash", txHash)
	query.Set("apikey", c.APIKey)

	resp, err := client.Get(c.RootURL + "/api?" + query.Encode())
	if err != nil {
		slog.Error("Etherscan lookup failed", slog.String("txHash", txHash), slog.String("error", err.Error()))
		return VerificationResult{Status: VERIFICATION_STATUS_ERROR}
	}
	defer resp.Body.Close()

	var body etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Error("error decoding Etherscan response", slog.String("txHash", txHash), slog.String("error", err.Error()))
		return VerificationResult{Status: VERIFICATION_STATUS_ERROR}
	}

	// API level rejection (bad key, rate limit), not a ledger-level failure
	if body.Status == "0" && body.Message == "NOTOK" {
		return VerificationResult{Status: VERIFICATION_STATUS_ERROR}
	}

	if body.Result == nil || body.Result.Status == "" {
		return VerificationResult{Status: VERIFICATION_STATUS_NOT_FOUND}
	}

	if body.Result.Status == "1" {
		return VerificationResult{Success: true, Status: VERIFICATION_STATUS_SUCCESS}
	}
	return VerificationResult{Status: VERIFICATION_STATUS_FAILED}
}

// Package ledger queries public blockchain explorers to confirm payout
// transactions. Lookups are read-only and idempotent; every outcome, including
// transport failures, is normalized to a verification status so callers never
// handle raw errors from this package.
package ledger

import "fmt"

const (
	VERIFICATION_STATUS_SUCCESS   = "SUCCESS"
	VERIFICATION_STATUS_FAILED    = "FAILED"
	VERIFICATION_STATUS_NOT_FOUND = "NOT_FOUND"
	VERIFICATION_STATUS_PENDING   = "PENDING"
	VERIFICATION_STATUS_ERROR     = "ERROR"
)

type VerificationResult struct {
	Success     bool   `json:"success"`
	Status      string `json:"status"`
	BlockNumber int64  `json:"blockNumber,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}

// Verifier checks a single transaction hash on one network.
type Verifier interface {
	CheckTx(txHash string) VerificationResult
}

// VerifierSet selects the verifier for a network.
type VerifierSet struct {
	Tron      Verifier
	Etherscan Verifier
}

func (vs VerifierSet) ForNetwork(network string) (Verifier, error) {
	switch network {
	case "TRC20":
		return vs.Tron, nil
	case "ERC20":
		return vs.Etherscan, nil
	default:
		return nil, fmt.Errorf("unsupported network: %s", network)
	}
}

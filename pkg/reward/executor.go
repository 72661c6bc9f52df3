package reward

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

// PayoutExecutor performs the actual transfer for a crypto payout and returns
// the resulting transaction hash and destination address.
type PayoutExecutor interface {
	Execute(network string, amount string) (txHash string, address string, err error)
}

// SyntheticExecutor stands in for a real wallet integration: it fabricates a
// plausible transaction hash and destination address without touching any
// chain. The status transitions and log bookkeeping around it are identical to
// what a production executor would trigger.
type SyntheticExecutor struct{}

func (SyntheticExecutor) Execute(network string, amount string) (string, string, error) {
	hash := "0x" + randomHex(32)

	var address string
	if network == surveyTypes.CRYPTO_NETWORK_TRC20 {
		address = "T" + strings.ToUpper(randomHex(17))[:33]
	} else {
		address = "0x" + randomHex(20)
	}
	return hash, address, nil
}

func randomHex(n int) string {
	buffer := make([]byte, n)
	if _, err := rand.Read(buffer); err != nil {
		panic("reward: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buffer)
}

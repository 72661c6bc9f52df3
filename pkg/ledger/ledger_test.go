package ledger

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTronClientCheckTx(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus string
	}{
		{
			name:       "success ret maps to SUCCESS",
			body:       `{"data":[{"ret":[{"contractRet":"SUCCESS"}],"blockNumber":100,"block_timestamp":1700000000000}]}`,
			wantStatus: VERIFICATION_STATUS_SUCCESS,
		},
		{
			name:       "revert ret maps to FAILED",
			body:       `{"data":[{"ret":[{"contractRet":"REVERT"}],"blockNumber":100,"block_timestamp":1700000000000}]}`,
			wantStatus: VERIFICATION_STATUS_FAILED,
		},
		{
			name:       "empty data maps to NOT_FOUND",
			body:       `{"data":[]}`,
			wantStatus: VERIFICATION_STATUS_NOT_FOUND,
		},
		{
			name:       "missing ret maps to PENDING",
			body:       `{"data":[{"blockNumber":100}]}`,
			wantStatus: VERIFICATION_STATUS_PENDING,
		},
		{
			name:       "garbage body maps to ERROR",
			body:       `not json`,
			wantStatus: VERIFICATION_STATUS_ERROR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewTronClient(server.URL, 5*time.Second)
			result := client.CheckTx("0xabc")
			if result.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", result.Status, tt.wantStatus)
			}
			if result.Success != (tt.wantStatus == VERIFICATION_STATUS_SUCCESS) {
				t.Errorf("success = %v for status %s", result.Success, result.Status)
			}
		})
	}

	t.Run("unreachable server maps to ERROR, no panic", func(t *testing.T) {
		client := NewTronClient("http://127.0.0.1:1", time.Second)
		result := client.CheckTx("0xabc")
		if result.Status != VERIFICATION_STATUS_ERROR {
			t.Errorf("status = %s, want ERROR", result.Status)
		}
	})

	t.Run("block info carried on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[{"ret":[{"contractRet":"SUCCESS"}],"blockNumber":42,"block_timestamp":1700000000000}]}`))
		}))
		defer server.Close()

		client := NewTronClient(server.URL, 5*time.Second)
		result := client.CheckTx("0xabc")
		if result.BlockNumber != 42 {
			t.Errorf("blockNumber = %d, want 42", result.BlockNumber)
		}
	})
}

func TestEtherscanClientCheckTx(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus string
	}{
		{
			name:       "receipt status 1 maps to SUCCESS",
			body:       `{"status":"1","message":"OK","result":{"status":"1"}}`,
			wantStatus: VERIFICATION_STATUS_SUCCESS,
		},
		{
			name:       "receipt status 0 maps to FAILED",
			body:       `{"status":"1","message":"OK","result":{"status":"0"}}`,
			wantStatus: VERIFICATION_STATUS_FAILED,
		},
		{
			name:       "missing result maps to NOT_FOUND",
			body:       `{"status":"1","message":"OK"}`,
			wantStatus: VERIFICATION_STATUS_NOT_FOUND,
		},
		{
			name:       "NOTOK maps to ERROR",
			body:       `{"status":"0","message":"NOTOK","result":{"status":""}}`,
			wantStatus: VERIFICATION_STATUS_ERROR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("action") != "gettxreceiptstatus" {
					t.Errorf("unexpected action: %s", r.URL.Query().Get("action"))
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewEtherscanClient(server.URL, "test-key", 5*time.Second)
			result := client.CheckTx("0xdef")
			if result.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", result.Status, tt.wantStatus)
			}
		})
	}

	t.Run("unreachable server maps to ERROR, no panic", func(t *testing.T) {
		client := NewEtherscanClient("http://127.0.0.1:1", "test-key", time.Second)
		result := client.CheckTx("0xdef")
		if result.Status != VERIFICATION_STATUS_ERROR {
			t.Errorf("status = %s, want ERROR", result.Status)
		}
	})
}

func TestVerifierSetForNetwork(t *testing.T) {
	vs := VerifierSet{
		Tron:      NewTronClient("", time.Second),
		Etherscan: NewEtherscanClient("", "k", time.Second),
	}

	if _, err := vs.ForNetwork("TRC20"); err != nil {
		t.Errorf("TRC20 should resolve: %v", err)
	}
	if _, err := vs.ForNetwork("ERC20"); err != nil {
		t.Errorf("ERC20 should resolve: %v", err)
	}
	if _, err := vs.ForNetwork("BEP20"); err == nil {
		t.Error("unknown network should be rejected")
	}
}

package verification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *EtherscanVerifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	project := config.DefaultProjectConfig()
	project.Etherscan.APIURL = server.URL + "/v2/api"
	project.Etherscan.APIKey["ropsten"] = "KEY"
	cfg := &config.RuntimeConfig{Project: project}

	return NewEtherscanVerifier(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).
		WithPolling(time.Millisecond, 5)
}

func testRequest() usecase.VerifyRequest {
	return usecase.VerifyRequest{
		Network: &config.Network{Name: "ropsten", ChainID: 3, ExplorerURL: "https://ropsten.etherscan.io"},
		Address: common.HexToAddress("0xE9Cf59540D87584Ba53C0084367Ed3e13f3325c5"),
		Artifact: &models.Artifact{
			ContractName: "ERC1155Store",
			SourceName:   "contracts/ERC1155Store.sol",
		},
		BuildInfo: &models.BuildInfo{
			SolcLongVersion: "0.8.4+commit.c7e474f2",
			Input:           json.RawMessage(`{"language":"Solidity"}`),
		},
		ConstructorArgs: []byte{0x01},
	}
}

func writeResponse(w http.ResponseWriter, status, result string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(etherscanResponse{Status: status, Message: "OK", Result: result})
}

func TestEtherscanVerifier_Verify(t *testing.T) {
	t.Run("submits standard json and polls until verified", func(t *testing.T) {
		var polls atomic.Int32
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/api", r.URL.Path)
			assert.Equal(t, "3", r.URL.Query().Get("chainid"))

			if r.Method == http.MethodPost {
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "KEY", r.PostForm.Get("apikey"))
				assert.Equal(t, "verifysourcecode", r.PostForm.Get("action"))
				assert.Equal(t, "solidity-standard-json-input", r.PostForm.Get("codeformat"))
				assert.Equal(t, "contracts/ERC1155Store.sol:ERC1155Store", r.PostForm.Get("contractname"))
				assert.Equal(t, "v0.8.4+commit.c7e474f2", r.PostForm.Get("compilerversion"))
				assert.Equal(t, "01", r.PostForm.Get("constructorArguements"))
				assert.JSONEq(t, `{"language":"Solidity"}`, r.PostForm.Get("sourceCode"))
				writeResponse(w, "1", "guid-123")
				return
			}

			assert.Equal(t, "checkverifystatus", r.URL.Query().Get("action"))
			assert.Equal(t, "guid-123", r.URL.Query().Get("guid"))
			if polls.Add(1) < 3 {
				writeResponse(w, "0", "Pending in queue")
				return
			}
			writeResponse(w, "1", "Pass - Verified")
		})

		result, err := verifier.Verify(context.Background(), testRequest())
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.Equal(t, "guid-123", result.GUID)
		assert.Equal(t, "Pass - Verified", result.Message)
		assert.Equal(t, "https://ropsten.etherscan.io/address/0xE9Cf59540D87584Ba53C0084367Ed3e13f3325c5#code", result.ExplorerURL)
		assert.Equal(t, int32(3), polls.Load())
	})

	t.Run("already verified counts as verified", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			writeResponse(w, "0", "Contract source code already verified")
		})
		result, err := verifier.Verify(context.Background(), testRequest())
		require.NoError(t, err)
		assert.True(t, result.Verified)
	})

	t.Run("rejected submission", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			writeResponse(w, "0", "Invalid constructor arguments")
		})
		result, err := verifier.Verify(context.Background(), testRequest())
		require.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Equal(t, "Invalid constructor arguments", result.Message)
	})

	t.Run("failed verdict", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				writeResponse(w, "1", "guid")
				return
			}
			writeResponse(w, "0", "Fail - Unable to verify")
		})
		result, err := verifier.Verify(context.Background(), testRequest())
		require.NoError(t, err)
		assert.False(t, result.Verified)
	})

	t.Run("stuck pending", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				writeResponse(w, "1", "guid")
				return
			}
			writeResponse(w, "0", "Pending in queue")
		})
		_, err := verifier.Verify(context.Background(), testRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "still pending")
	})

	t.Run("http error", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := verifier.Verify(context.Background(), testRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 502")
	})

	t.Run("missing api key", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		req := testRequest()
		req.Network.Name = "mainnet"
		_, err := verifier.Verify(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no etherscan API key configured for network mainnet")
	})
}

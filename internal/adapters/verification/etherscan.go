package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultMaxPolls     = 20
)

var errPending = errors.New("verification pending")

// EtherscanVerifier submits standard-JSON verification through the Etherscan v2 API
type EtherscanVerifier struct {
	client       *http.Client
	apiURL       string
	apiKeys      map[string]string
	pollInterval time.Duration
	maxPolls     uint64
	log          *slog.Logger
}

// NewEtherscanVerifier creates a verifier with the API keys of the project file
func NewEtherscanVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *EtherscanVerifier {
	etherscan := config.DefaultProjectConfig().Etherscan
	if cfg.Project != nil {
		etherscan = cfg.Project.Etherscan
	}
	return &EtherscanVerifier{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiURL:       etherscan.APIURL,
		apiKeys:      etherscan.APIKey,
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
		log:          log.With("component", "EtherscanVerifier"),
	}
}

// WithPolling changes how often and how long the status is polled
func (v *EtherscanVerifier) WithPolling(interval time.Duration, maxPolls uint64) *EtherscanVerifier {
	v.pollInterval = interval
	v.maxPolls = maxPolls
	return v
}

// etherscanResponse represents Etherscan API response
type etherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Verify submits the build-info input of the artifact and waits for the verdict
func (v *EtherscanVerifier) Verify(ctx context.Context, req usecase.VerifyRequest) (*usecase.VerifyResult, error) {
	apiKey := v.apiKey(req.Network.Name)
	if apiKey == "" {
		return nil, fmt.Errorf("no etherscan API key configured for network %s", req.Network.Name)
	}
	if req.BuildInfo == nil || len(req.BuildInfo.Input) == 0 {
		return nil, fmt.Errorf("no compiler input for %s", req.Artifact.ContractName)
	}

	form := url.Values{}
	form.Set("apikey", apiKey)
	form.Set("module", "contract")
	form.Set("action", "verifysourcecode")
	form.Set("contractaddress", req.Address.Hex())
	form.Set("sourceCode", string(req.BuildInfo.Input))
	form.Set("codeformat", "solidity-standard-json-input")
	form.Set("contractname", req.Artifact.FullyQualifiedName())
	form.Set("compilerversion", "v"+req.BuildInfo.SolcLongVersion)
	if len(req.ConstructorArgs) > 0 {
		form.Set("constructorArguements", common.Bytes2Hex(req.ConstructorArgs)) // Note: Etherscan typo
	}

	submitted, err := v.do(ctx, http.MethodPost, req.Network.ChainID, form)
	if err != nil {
		return nil, fmt.Errorf("failed to submit verification: %w", err)
	}

	result := &usecase.VerifyResult{ExplorerURL: addressURL(req.Network.ExplorerURL, req.Address)}
	if submitted.Status != "1" {
		result.Message = submitted.Result
		result.Verified = isAlreadyVerified(submitted.Result)
		return result, nil
	}
	result.GUID = submitted.Result
	v.log.Debug("verification submitted", "guid", result.GUID, "address", req.Address.Hex())

	status, err := v.waitForStatus(ctx, req.Network.ChainID, apiKey, result.GUID)
	if err != nil {
		return nil, err
	}
	result.Message = status.Result
	result.Verified = status.Status == "1" || isAlreadyVerified(status.Result)
	return result, nil
}

// waitForStatus polls checkverifystatus until the explorer leaves the pending state
func (v *EtherscanVerifier) waitForStatus(ctx context.Context, chainID uint64, apiKey, guid string) (*etherscanResponse, error) {
	query := url.Values{}
	query.Set("apikey", apiKey)
	query.Set("module", "contract")
	query.Set("action", "checkverifystatus")
	query.Set("guid", guid)

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(v.pollInterval), v.maxPolls), ctx)
	status, err := backoff.RetryWithData(func() (*etherscanResponse, error) {
		status, err := v.do(ctx, http.MethodGet, chainID, query)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if strings.Contains(strings.ToLower(status.Result), "pending") {
			return nil, errPending
		}
		return status, nil
	}, policy)
	if errors.Is(err, errPending) {
		return nil, fmt.Errorf("verification %s still pending after %d checks", guid, v.maxPolls+1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check verification status: %w", err)
	}
	return status, nil
}

func (v *EtherscanVerifier) do(ctx context.Context, method string, chainID uint64, values url.Values) (*etherscanResponse, error) {
	endpoint, err := url.Parse(v.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid etherscan API URL %q: %w", v.apiURL, err)
	}
	query := endpoint.Query()
	query.Set("chainid", strconv.FormatUint(chainID, 10))

	var req *http.Request
	if method == http.MethodGet {
		for key := range values {
			query.Set(key, values.Get(key))
		}
		endpoint.RawQuery = query.Encode()
		req, err = http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	} else {
		endpoint.RawQuery = query.Encode()
		req, err = http.NewRequestWithContext(ctx, method, endpoint.String(), strings.NewReader(values.Encode()))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req) //nolint:gosec // URL is the configured explorer endpoint
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("etherscan returned HTTP %d", resp.StatusCode)
	}

	var result etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

func (v *EtherscanVerifier) apiKey(network string) string {
	if key := v.apiKeys[network]; key != "" {
		return key
	}
	return v.apiKeys["default"]
}

func isAlreadyVerified(message string) bool {
	return strings.Contains(strings.ToLower(message), "already verified")
}

func addressURL(explorerURL string, address common.Address) string {
	if explorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", strings.TrimRight(explorerURL, "/"), address.Hex())
}

var _ usecase.ContractVerifier = (*EtherscanVerifier)(nil)

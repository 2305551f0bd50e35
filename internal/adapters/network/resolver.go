package network

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	projectconfig "github.com/trebuchet-org/storectl/internal/config"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// ChainIDFetcher asks an RPC endpoint for its chain ID
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// Resolver resolves project network sections to networks with a cached chain ID
type Resolver struct {
	networks  map[string]config.NetworkConfig
	cachePath string
	fetch     ChainIDFetcher
	log       *slog.Logger

	mu    sync.Mutex
	cache *chainIDCache
}

// chainIDCache maps RPC URLs to chain IDs
type chainIDCache struct {
	RPCs      map[string]uint64 `json:"rpcs"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewResolver creates a resolver over the networks of the project file
func NewResolver(cfg *config.RuntimeConfig, log *slog.Logger) *Resolver {
	networks := map[string]config.NetworkConfig{}
	if cfg.Project != nil {
		networks = cfg.Project.Networks
	}
	return &Resolver{
		networks:  networks,
		cachePath: filepath.Join(cfg.DataDir, "cache", "chainIds.json"),
		fetch:     FetchChainID,
		log:       log.With("component", "NetworkResolver"),
	}
}

// WithFetcher replaces how chain IDs are fetched
func (r *Resolver) WithFetcher(fetch ChainIDFetcher) *Resolver {
	r.fetch = fetch
	return r
}

// GetNetworks returns all configured network names, sorted
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves a network name to a network with its chain ID
func (r *Resolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	section, ok := r.networks[networkName]
	if !ok {
		return nil, domain.UnknownNameErr{
			Kind:        "network",
			Name:        networkName,
			Suggestions: domain.Suggest(networkName, r.GetNetworks(ctx)),
		}
	}

	if err := projectconfig.ValidateNetwork(networkName, section); err != nil {
		return nil, err
	}

	chainID, err := r.chainID(ctx, section.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
	}
	if section.ChainID != 0 && section.ChainID != chainID {
		return nil, fmt.Errorf("%w: network %s is configured for chain %d but its RPC reports %d",
			domain.ErrInvalidChainID, networkName, section.ChainID, chainID)
	}

	return &config.Network{
		Name:        networkName,
		ChainID:     chainID,
		RPCURL:      section.URL,
		Accounts:    section.Accounts,
		ExplorerURL: ExplorerURL(chainID),
		Confirm:     section.Confirm,
	}, nil
}

func (r *Resolver) chainID(ctx context.Context, rpcURL string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loadCache()
	// local dev nodes are restarted with other chain IDs, so they are always asked
	if chainID, ok := r.cache.RPCs[rpcURL]; ok && !isLocalRPC(rpcURL) {
		return chainID, nil
	}

	chainID, err := r.fetch(ctx, rpcURL)
	if err != nil {
		return 0, err
	}

	if cached, ok := r.cache.RPCs[rpcURL]; ok && cached == chainID {
		return chainID, nil
	}
	r.cache.RPCs[rpcURL] = chainID
	r.cache.UpdatedAt = time.Now()
	if err := r.saveCache(); err != nil {
		// the cache only saves a round trip
		r.log.Warn("failed to save chain ID cache", "path", r.cachePath, "error", err)
	}
	return chainID, nil
}

func isLocalRPC(rpcURL string) bool {
	u, err := url.Parse(rpcURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (r *Resolver) loadCache() {
	if r.cache != nil {
		return
	}
	r.cache = &chainIDCache{RPCs: map[string]uint64{}}

	data, err := os.ReadFile(r.cachePath)
	if err != nil {
		return
	}
	var cached chainIDCache
	if err := json.Unmarshal(data, &cached); err != nil || cached.RPCs == nil {
		r.log.Debug("ignoring unreadable chain ID cache", "path", r.cachePath)
		return
	}
	r.cache = &cached
}

func (r *Resolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.cachePath, data, 0644)
}

// FetchChainID dials the endpoint and asks for eth_chainId
func FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// ExplorerURL returns the block explorer of well-known chains
func ExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 3:
		return "https://ropsten.etherscan.io"
	case 4:
		return "https://rinkeby.etherscan.io"
	case 5:
		return "https://goerli.etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	case 250:
		return "https://ftmscan.com"
	case 42220:
		return "https://celoscan.io"
	default:
		return ""
	}
}

var _ usecase.NetworkResolver = (*Resolver)(nil)

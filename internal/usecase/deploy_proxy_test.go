package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

func TestDeployProxy_Run(t *testing.T) {
	proxy := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	t.Run("returns the address reported by the proxy helper", func(t *testing.T) {
		deployer := &mockDeployer{result: &DeployProxyResult{Proxy: proxy, Kind: config.ProxyKindTransparent}}
		uc := NewDeployProxy(testRuntimeConfig("local"), newMockNetworkResolver("local"),
			newMockArtifacts("NFTExchange"), deployer, nil, nil)

		result, err := uc.Run(context.Background(), DeployProxyParams{})
		require.NoError(t, err)
		assert.Equal(t, proxy, result.Proxy)
	})

	t.Run("bare run deploys NFTExchange behind a transparent proxy", func(t *testing.T) {
		deployer := &mockDeployer{result: &DeployProxyResult{Proxy: proxy}}
		uc := NewDeployProxy(testRuntimeConfig("local"), newMockNetworkResolver("local"),
			newMockArtifacts("NFTExchange"), deployer, nil, nil)

		_, err := uc.Run(context.Background(), DeployProxyParams{})
		require.NoError(t, err)

		req := deployer.captured
		require.NotNil(t, req)
		assert.Equal(t, "NFTExchange", req.Blueprint.ContractName)
		assert.Equal(t, config.ProxyKindTransparent, req.Kind)
		assert.Equal(t, "initialize", req.Initializer)
		assert.Empty(t, req.InitArgs)
		assert.Equal(t, "1500000014", req.Fees.MaxFeePerGas)
		assert.Equal(t, "1500000000", req.Fees.MaxPriorityFeePerGas)
		assert.Equal(t, "local", req.Network.Name)
	})

	t.Run("explicit fees win over flags and project defaults", func(t *testing.T) {
		cfg := testRuntimeConfig("local")
		cfg.Fees = config.FeeDefaults{MaxFeePerGas: "7"}
		deployer := &mockDeployer{result: &DeployProxyResult{Proxy: proxy}}
		uc := NewDeployProxy(cfg, newMockNetworkResolver("local"), newMockArtifacts("ERC721Store"), deployer, nil, nil)

		_, err := uc.Run(context.Background(), DeployProxyParams{
			Blueprint: "ERC721Store",
			Kind:      config.ProxyKindUUPS,
			Fees:      domain.FeeParams{MaxPriorityFeePerGas: "3"},
		})
		require.NoError(t, err)

		assert.Equal(t, "7", deployer.captured.Fees.MaxFeePerGas)
		assert.Equal(t, "3", deployer.captured.Fees.MaxPriorityFeePerGas)
		assert.Equal(t, config.ProxyKindUUPS, deployer.captured.Kind)
	})

	t.Run("helper failure is returned and no result produced", func(t *testing.T) {
		deployer := &mockDeployer{err: errors.New("insufficient funds for gas * price + value")}
		uc := NewDeployProxy(testRuntimeConfig("local"), newMockNetworkResolver("local"),
			newMockArtifacts("NFTExchange"), deployer, nil, nil)

		result, err := uc.Run(context.Background(), DeployProxyParams{})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "insufficient funds")
	})

	t.Run("unknown blueprint never reaches the helper", func(t *testing.T) {
		deployer := &mockDeployer{}
		uc := NewDeployProxy(testRuntimeConfig("local"), newMockNetworkResolver("local"),
			newMockArtifacts("NFTExchange"), deployer, nil, nil)

		_, err := uc.Run(context.Background(), DeployProxyParams{Blueprint: "Missing"})
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, deployer.captured)
	})

	t.Run("network must be chosen when several exist", func(t *testing.T) {
		uc := NewDeployProxy(testRuntimeConfig(""), newMockNetworkResolver("local", "ropsten"),
			newMockArtifacts("NFTExchange"), &mockDeployer{}, nil, nil)

		_, err := uc.Run(context.Background(), DeployProxyParams{})
		require.ErrorIs(t, err, domain.ErrNoNetwork)
	})

	t.Run("single network is picked implicitly", func(t *testing.T) {
		deployer := &mockDeployer{result: &DeployProxyResult{Proxy: proxy}}
		uc := NewDeployProxy(testRuntimeConfig(""), newMockNetworkResolver("ropsten"),
			newMockArtifacts("NFTExchange"), deployer, nil, nil)

		_, err := uc.Run(context.Background(), DeployProxyParams{})
		require.NoError(t, err)
		assert.Equal(t, "ropsten", deployer.captured.Network.Name)
	})
}

func TestDeployProxy_Confirmation(t *testing.T) {
	proxy := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	newUseCase := func(cfg *config.RuntimeConfig, confirmer BroadcastConfirmer, deployer *mockDeployer) *DeployProxy {
		networks := newMockNetworkResolver("ropsten")
		networks.networks["ropsten"].Confirm = true
		return NewDeployProxy(cfg, networks, newMockArtifacts("NFTExchange"), deployer, confirmer, nil)
	}

	t.Run("declined prompt aborts", func(t *testing.T) {
		deployer := &mockDeployer{}
		confirmer := &mockConfirmer{answer: false}

		_, err := newUseCase(testRuntimeConfig("ropsten"), confirmer, deployer).Run(context.Background(), DeployProxyParams{})
		require.ErrorIs(t, err, domain.ErrAborted)
		assert.Equal(t, 1, confirmer.asked)
		assert.Nil(t, deployer.captured)
	})

	t.Run("yes skips the prompt", func(t *testing.T) {
		cfg := testRuntimeConfig("ropsten")
		cfg.Yes = true
		deployer := &mockDeployer{result: &DeployProxyResult{Proxy: proxy}}
		confirmer := &mockConfirmer{}

		_, err := newUseCase(cfg, confirmer, deployer).Run(context.Background(), DeployProxyParams{})
		require.NoError(t, err)
		assert.Zero(t, confirmer.asked)
	})

	t.Run("non-interactive without yes fails", func(t *testing.T) {
		cfg := testRuntimeConfig("ropsten")
		cfg.NonInteractive = true

		_, err := newUseCase(cfg, &mockConfirmer{answer: true}, &mockDeployer{}).Run(context.Background(), DeployProxyParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--yes")
	})
}

package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

// Backend is the subset of an Ethereum client used to deploy, call and inspect contracts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// Dialer opens a backend for a network. The returned func releases it.
type Dialer func(ctx context.Context, network *config.Network) (Backend, func(), error)

// Connect dials the network RPC and checks that it serves the expected chain
func Connect(ctx context.Context, network *config.Network) (Backend, func(), error) {
	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		client.Close()
		return nil, nil, fmt.Errorf("%w: expected %d, got %d", domain.ErrInvalidChainID, network.ChainID, chainID.Uint64())
	}

	return client, client.Close, nil
}

// HasCode reports whether a contract is deployed at address
func HasCode(ctx context.Context, backend Backend, address common.Address) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	return len(code) > 0, nil
}

// ReadAddressSlot reads a storage slot holding an address, as EIP-1967 proxies do
func ReadAddressSlot(ctx context.Context, backend Backend, contract common.Address, slot common.Hash) (common.Address, error) {
	value, err := backend.StorageAt(ctx, contract, slot, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read slot %s of %s: %w", slot.Hex(), contract.Hex(), err)
	}
	return common.BytesToAddress(value), nil
}

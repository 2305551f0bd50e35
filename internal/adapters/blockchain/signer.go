package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// NewTransactOpts builds keyed transact options for the selected account with
// the fee overrides applied. Unset fees are left to the node's suggestion.
func NewTransactOpts(ctx context.Context, signer usecase.Signer, fees domain.FeeParams) (*bind.TransactOpts, error) {
	network := signer.Network
	if network == nil {
		return nil, domain.ErrNoNetwork
	}
	if signer.Account < 0 || signer.Account >= len(network.Accounts) {
		return nil, fmt.Errorf("%w: network %s has %d account(s), account %d requested",
			domain.ErrNoAccounts, network.Name, len(network.Accounts), signer.Account)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(network.Accounts[signer.Account]), "0x"))
	if err != nil {
		// never echo the key
		return nil, fmt.Errorf("invalid private key for account %d of network %s", signer.Account, network.Name)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(network.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	if opts.GasFeeCap, err = fees.GasFeeCap(); err != nil {
		return nil, err
	}
	if opts.GasTipCap, err = fees.GasTipCap(); err != nil {
		return nil, err
	}

	return opts, nil
}

package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Deploy sends a contract creation and waits until its code is on chain
func Deploy(ctx context.Context, backend Backend, opts *bind.TransactOpts, parsed *abi.ABI, bytecode []byte, args ...any) (common.Address, *types.Receipt, error) {
	address, tx, _, err := bind.DeployContract(opts, *parsed, bytecode, backend, args...)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to send deployment: %w", err)
	}

	receipt, err := WaitSuccess(ctx, backend, tx)
	if err != nil {
		return common.Address{}, receipt, err
	}
	if _, err := bind.WaitDeployed(ctx, backend, tx); err != nil {
		return common.Address{}, receipt, fmt.Errorf("deployment %s left no code: %w", tx.Hash().Hex(), err)
	}
	return address, receipt, nil
}

// Send signs and sends a call to method on the contract at to
func Send(backend Backend, opts *bind.TransactOpts, to common.Address, parsed *abi.ABI, method string, args ...any) (*types.Transaction, error) {
	contract := bind.NewBoundContract(to, *parsed, backend, backend, backend)
	tx, err := contract.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}
	return tx, nil
}

// WaitSuccess waits for tx to be mined and fails if it reverted
func WaitSuccess(ctx context.Context, backend Backend, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

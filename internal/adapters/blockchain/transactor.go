package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/models"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// Transactor sends single contract calls signed by a configured account
type Transactor struct {
	dial Dialer
	log  *slog.Logger
}

// NewTransactor creates a transactor that dials networks over RPC
func NewTransactor(log *slog.Logger) *Transactor {
	return &Transactor{
		dial: Connect,
		log:  log.With("component", "Transactor"),
	}
}

// WithDialer replaces how backends are opened
func (t *Transactor) WithDialer(dial Dialer) *Transactor {
	t.dial = dial
	return t
}

// Transact encodes the call, sends it and optionally waits for the receipt.
// A reverted transaction is returned with its receipt and no error.
func (t *Transactor) Transact(ctx context.Context, req usecase.TransactionRequest) (*models.SentTransaction, error) {
	if !common.IsHexAddress(req.Contract) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, req.Contract)
	}
	to := common.HexToAddress(req.Contract)

	method, ok := req.ABI.Methods[req.Method]
	if !ok {
		return nil, domain.UnknownNameErr{
			Kind:        "method",
			Name:        req.Method,
			Suggestions: domain.Suggest(req.Method, lo.Keys(req.ABI.Methods)),
		}
	}
	args, err := ParseArgs(method.Inputs, req.Args)
	if err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", method.Sig, err)
	}

	backend, release, err := t.dial(ctx, req.Network)
	if err != nil {
		return nil, err
	}
	defer release()

	hasCode, err := HasCode(ctx, backend, to)
	if err != nil {
		return nil, err
	}
	if !hasCode {
		return nil, fmt.Errorf("%w at %s on %s", domain.ErrNoCode, to.Hex(), req.Network.Name)
	}

	opts, err := NewTransactOpts(ctx, req.Signer, req.Fees)
	if err != nil {
		return nil, err
	}

	t.log.Debug("sending transaction", "to", to.Hex(), "method", method.Sig, "from", opts.From.Hex())
	tx, err := Send(backend, opts, to, req.ABI, req.Method, args...)
	if err != nil {
		return nil, err
	}

	sent := &models.SentTransaction{
		Hash: tx.Hash(),
		From: opts.From,
		To:   &to,
		Raw:  tx,
	}
	if !req.Wait {
		return sent, nil
	}

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return sent, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	sent.Receipt = receipt
	return sent, nil
}

var _ usecase.ContractTransactor = (*Transactor)(nil)

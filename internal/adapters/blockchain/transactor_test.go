package blockchain

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

func deployStop(t *testing.T, ctx context.Context, dial Dialer, signer usecase.Signer) common.Address {
	t.Helper()
	backend, release, err := dial(ctx, signer.Network)
	require.NoError(t, err)
	defer release()

	opts, err := NewTransactOpts(ctx, signer, domain.FeeParams{})
	require.NoError(t, err)
	address, receipt, err := Deploy(ctx, backend, opts, &abi.ABI{}, common.FromHex(stopInitCode))
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	return address
}

func TestTransactor_Transact(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	network, dial := newSimulatedNetwork(t)
	signer := usecase.Signer{Network: network}
	store := deployStop(t, ctx, dial, signer)

	parsed, err := abi.JSON(strings.NewReader(argsABI))
	require.NoError(t, err)
	transactor := NewTransactor(slog.New(slog.NewTextHandler(io.Discard, nil))).WithDialer(dial)

	req := usecase.TransactionRequest{
		Signer:   signer,
		Contract: store.Hex(),
		ABI:      &parsed,
		Method:   "safeMint",
		Args:     []string{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "http://test.json"},
		Fees:     domain.FeeParams{MaxFeePerGas: "1500000014", MaxPriorityFeePerGas: "1500000000"},
	}

	t.Run("sends with fee overrides and waits", func(t *testing.T) {
		req := req
		req.Wait = true
		sent, err := transactor.Transact(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, sent.Raw.Hash(), sent.Hash)
		assert.Equal(t, store, *sent.To)
		assert.Equal(t, uint64(1500000014), sent.Raw.GasFeeCap().Uint64())
		assert.Equal(t, uint64(1500000000), sent.Raw.GasTipCap().Uint64())
		require.NotNil(t, sent.Receipt)
		assert.True(t, sent.Succeeded())

		calldata, err := parsed.Pack("safeMint", common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), "http://test.json")
		require.NoError(t, err)
		assert.Equal(t, calldata, sent.Raw.Data())
	})

	t.Run("returns without receipt when not waiting", func(t *testing.T) {
		sent, err := transactor.Transact(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, sent.Receipt)
	})

	t.Run("empty recipient fails before sending", func(t *testing.T) {
		req := req
		req.Args = []string{"", "http://test.json"}
		_, err := transactor.Transact(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid address")
	})

	t.Run("no contract at address", func(t *testing.T) {
		req := req
		req.Contract = "0xE9Cf59540D87584Ba53C0084367Ed3e13f3325c5"
		_, err := transactor.Transact(ctx, req)
		require.ErrorIs(t, err, domain.ErrNoCode)
	})

	t.Run("unknown method", func(t *testing.T) {
		req := req
		req.Method = "safeMnt"
		_, err := transactor.Transact(ctx, req)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "safeMint")
	})

	t.Run("malformed contract address", func(t *testing.T) {
		req := req
		req.Contract = "store"
		_, err := transactor.Transact(ctx, req)
		require.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}

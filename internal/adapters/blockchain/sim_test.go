package blockchain

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

// hardhat's second default account
const testKeyHex = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

// stopInitCode deploys a contract whose runtime code is a single STOP,
// so every call to it succeeds
const stopInitCode = "0x6001600c60003960016000f300"

// newSimulatedNetwork starts an in-memory chain that mines every few milliseconds
func newSimulatedNetwork(t *testing.T) (*config.Network, Dialer) {
	t.Helper()

	key, err := crypto.HexToECDSA(testKeyHex[2:])
	if err != nil {
		t.Fatal(err)
	}
	funds := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	sim := simulated.NewBackend(types.GenesisAlloc{
		crypto.PubkeyToAddress(key.PublicKey): {Balance: funds},
	})
	t.Cleanup(func() { _ = sim.Close() })

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sim.Commit()
			}
		}
	}()
	t.Cleanup(func() { close(done) })

	network := &config.Network{
		Name:     "simulated",
		ChainID:  1337,
		RPCURL:   "simulated://",
		Accounts: []string{testKeyHex},
	}
	dial := func(ctx context.Context, n *config.Network) (Backend, func(), error) {
		return sim.Client(), func() {}, nil
	}
	return network, dial
}

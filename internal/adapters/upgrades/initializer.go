package upgrades

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/storectl/internal/adapters/blockchain"
)

// encodeInitializer builds the call data run by the proxy constructor. A blueprint
// without the initializer gets an empty call, unless arguments were given for it.
func encodeInitializer(parsed *abi.ABI, initializer string, args []string) ([]byte, error) {
	method, ok := parsed.Methods[initializer]
	if !ok {
		if len(args) > 0 {
			return nil, fmt.Errorf("initializer %s not found in blueprint but %d argument(s) were given", initializer, len(args))
		}
		return []byte{}, nil
	}

	values, err := blockchain.ParseArgs(method.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("invalid initializer arguments for %s: %w", method.Sig, err)
	}
	data, err := parsed.Pack(initializer, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method.Sig, err)
	}
	return data, nil
}

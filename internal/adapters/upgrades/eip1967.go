package upgrades

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// EIP-1967 storage slots, keccak256("eip1967.proxy.<name>") - 1
var (
	ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")
	AdminSlot          = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")
)

const proxyAdminABI = `[
	{"type":"function","name":"upgrade","stateMutability":"nonpayable","inputs":[{"name":"proxy","type":"address"},{"name":"implementation","type":"address"}],"outputs":[]},
	{"type":"function","name":"upgradeAndCall","stateMutability":"payable","inputs":[{"name":"proxy","type":"address"},{"name":"implementation","type":"address"},{"name":"data","type":"bytes"}],"outputs":[]}
]`

const uupsABI = `[
	{"type":"function","name":"upgradeTo","stateMutability":"nonpayable","inputs":[{"name":"newImplementation","type":"address"}],"outputs":[]},
	{"type":"function","name":"upgradeToAndCall","stateMutability":"payable","inputs":[{"name":"newImplementation","type":"address"},{"name":"data","type":"bytes"}],"outputs":[]}
]`

// OpenZeppelin 5 admins and UUPS implementations expose their upgrade interface version
const versionedABI = `[{"type":"function","name":"UPGRADE_INTERFACE_VERSION","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}]`

var (
	proxyAdmin = mustParseABI(proxyAdminABI)
	uups       = mustParseABI(uupsABI)
	versioned  = mustParseABI(versionedABI)
)

// upgradeInterfaceVersion returns UPGRADE_INTERFACE_VERSION of the contract, or "" when it has none
func upgradeInterfaceVersion(ctx context.Context, backend bind.ContractCaller, address common.Address) string {
	data, err := versioned.Pack("UPGRADE_INTERFACE_VERSION")
	if err != nil {
		return ""
	}
	out, err := backend.CallContract(ctx, ethereum.CallMsg{To: &address, Data: data}, nil)
	if err != nil || len(out) == 0 {
		return ""
	}
	values, err := versioned.Unpack("UPGRADE_INTERFACE_VERSION", out)
	if err != nil || len(values) != 1 {
		return ""
	}
	version, _ := values[0].(string)
	return version
}

// ownerCreatesAdmin reports whether a ProxyAdmin takes its initial owner in the constructor.
// Proxies built against it create their own admin owned by the address they are given.
func ownerCreatesAdmin(adminABI *abi.ABI) bool {
	return len(adminABI.Constructor.Inputs) == 1
}

func mustParseABI(definition string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return &parsed
}

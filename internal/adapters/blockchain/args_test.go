package blockchain

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const argsABI = `[
	{"type":"function","name":"safeMint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"uri","type":"string"}],"outputs":[]},
	{"type":"function","name":"everything","stateMutability":"nonpayable","inputs":[
		{"name":"a","type":"uint256"},
		{"name":"b","type":"uint8"},
		{"name":"c","type":"int64"},
		{"name":"d","type":"bool"},
		{"name":"e","type":"bytes"},
		{"name":"f","type":"bytes32"},
		{"name":"g","type":"address[]"},
		{"name":"h","type":"uint256[2]"}
	],"outputs":[]}
]`

func parsedArgsABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(argsABI))
	require.NoError(t, err)
	return parsed
}

func TestParseArgs(t *testing.T) {
	parsed := parsedArgsABI(t)

	t.Run("safeMint with a real recipient packs", func(t *testing.T) {
		method := parsed.Methods["safeMint"]
		values, err := ParseArgs(method.Inputs, []string{"0xE9Cf59540D87584Ba53C0084367Ed3e13f3325c5", "http://test.json"})
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xE9Cf59540D87584Ba53C0084367Ed3e13f3325c5"), values[0])
		assert.Equal(t, "http://test.json", values[1])

		_, err = parsed.Pack("safeMint", values...)
		require.NoError(t, err)
	})

	t.Run("empty recipient is not an address", func(t *testing.T) {
		_, err := ParseArgs(parsed.Methods["safeMint"].Inputs, []string{"", "http://test.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `argument to (address): invalid address ""`)
	})

	t.Run("argument count", func(t *testing.T) {
		_, err := ParseArgs(parsed.Methods["safeMint"].Inputs, []string{"http://test.json"})
		require.EqualError(t, err, "expected 2 argument(s), got 1")
	})

	t.Run("all supported types pack", func(t *testing.T) {
		values, err := ParseArgs(parsed.Methods["everything"].Inputs, []string{
			"1500000014",
			"0xff",
			"-5",
			"true",
			"0x0102",
			"0x01",
			`["0xE9Cf59540D87584Ba53C0084367Ed3e13f3325c5","0x9F57239C154a6604A6BD49909D3B4e8cFee6ED63"]`,
			`[1, "2"]`,
		})
		require.NoError(t, err)

		assert.Equal(t, big.NewInt(1500000014), values[0])
		assert.Equal(t, uint8(255), values[1])
		assert.Equal(t, int64(-5), values[2])
		assert.Equal(t, true, values[3])
		assert.Equal(t, []byte{1, 2}, values[4])
		assert.Equal(t, [32]byte{1}, values[5])
		assert.Len(t, values[6], 2)
		assert.Equal(t, [2]*big.Int{big.NewInt(1), big.NewInt(2)}, values[7])

		_, err = parsed.Pack("everything", values...)
		require.NoError(t, err)
	})
}

func TestParseValue_Errors(t *testing.T) {
	uint8Ty, _ := abi.NewType("uint8", "", nil)
	int8Ty, _ := abi.NewType("int8", "", nil)
	bytes2Ty, _ := abi.NewType("bytes2", "", nil)
	arrTy, _ := abi.NewType("uint256[2]", "", nil)
	boolTy, _ := abi.NewType("bool", "", nil)

	tests := []struct {
		name string
		typ  abi.Type
		raw  string
	}{
		{"uint overflow", uint8Ty, "256"},
		{"negative uint", uint8Ty, "-1"},
		{"int overflow", int8Ty, "128"},
		{"not a number", uint8Ty, "ten"},
		{"bytes too long", bytes2Ty, "0x010203"},
		{"bytes without prefix", bytes2Ty, "0102"},
		{"wrong array length", arrTy, "[1]"},
		{"not json", arrTy, "1,2"},
		{"bad bool", boolTy, "yes please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseValue(tt.typ, tt.raw)
			assert.Error(t, err)
		})
	}

	v, err := parseValue(int8Ty, "-128")
	require.NoError(t, err)
	assert.Equal(t, int8(-128), v)
}

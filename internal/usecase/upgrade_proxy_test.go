package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

func TestUpgradeProxy_Run(t *testing.T) {
	impl := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

	t.Run("forwards the literal proxy address unchanged", func(t *testing.T) {
		upgrader := &mockUpgrader{result: &UpgradeProxyResult{Implementation: impl, Kind: config.ProxyKindTransparent}}
		uc := NewUpgradeProxy(testRuntimeConfig("local"), newMockNetworkResolver("local"),
			newMockArtifacts("ERC1155StoreV2"), upgrader, nil, nil)

		result, err := uc.Run(context.Background(), UpgradeProxyParams{})
		require.NoError(t, err)
		assert.Equal(t, impl, result.Implementation)

		require.NotNil(t, upgrader.captured)
		assert.Equal(t, "0x9F57239C154a6604A6BD49909D3B4e8cFee6ED63", upgrader.captured.ProxyAddress)
		assert.Equal(t, "ERC1155StoreV2", upgrader.captured.Blueprint.ContractName)
		assert.Equal(t, "1500000014", upgrader.captured.Fees.MaxFeePerGas)
		assert.Equal(t, "1500000000", upgrader.captured.Fees.MaxPriorityFeePerGas)
	})

	t.Run("user supplied address is not normalised", func(t *testing.T) {
		upgrader := &mockUpgrader{result: &UpgradeProxyResult{Implementation: impl}}
		uc := NewUpgradeProxy(testRuntimeConfig("local"), newMockNetworkResolver("local"),
			newMockArtifacts("ERC721StoreV2"), upgrader, nil, nil)

		_, err := uc.Run(context.Background(), UpgradeProxyParams{
			ProxyAddress: "0xcc71679f3b9750635213902f6594ca9f784e90fe",
			Blueprint:    "ERC721StoreV2",
		})
		require.NoError(t, err)
		assert.Equal(t, "0xcc71679f3b9750635213902f6594ca9f784e90fe", upgrader.captured.ProxyAddress)
	})

	t.Run("helper failure is returned", func(t *testing.T) {
		upgrader := &mockUpgrader{err: errors.New("execution reverted")}
		uc := NewUpgradeProxy(testRuntimeConfig("local"), newMockNetworkResolver("local"),
			newMockArtifacts("ERC1155StoreV2"), upgrader, nil, nil)

		result, err := uc.Run(context.Background(), UpgradeProxyParams{})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "0x9F57239C154a6604A6BD49909D3B4e8cFee6ED63")
	})
}

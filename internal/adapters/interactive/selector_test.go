package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

func TestCreateFuzzySearchFunc(t *testing.T) {
	items := []string{
		"contracts/ERC1155Store.sol:ERC1155Store",
		"contracts/v2/ERC1155Store.sol:ERC1155Store",
		"contracts/NFTExchange.sol:NFTExchange",
	}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("V2", 1))
	assert.False(t, search("v2", 0))
	assert.True(t, search("nftx", 2))
	assert.False(t, search("zzz", 2))
}

func TestPrompter_NonInteractive(t *testing.T) {
	p := NewPrompter(&config.RuntimeConfig{NonInteractive: true})

	_, err := p.SelectOption(context.Background(), "Pick", []string{"a", "b"})
	require.Error(t, err)

	_, err = p.ConfirmBroadcast(context.Background(), &config.Network{Name: "ropsten"}, "deploy")
	require.Error(t, err)
}

func TestPrompter_SingleOption(t *testing.T) {
	p := NewPrompter(&config.RuntimeConfig{})
	index, err := p.SelectOption(context.Background(), "Pick", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

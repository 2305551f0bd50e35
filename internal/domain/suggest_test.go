package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"ERC721Store", "ERC1155Store", "ERC1155StoreV2", "NFTExchange"}

	assert.Equal(t, []string{"NFTExchange"}, Suggest("NFTExch", candidates))
	assert.Contains(t, Suggest("1155", candidates), "ERC1155Store")
	assert.Empty(t, Suggest("zzz", candidates))
	assert.Nil(t, Suggest("", candidates))
}

func TestUnknownNameErr(t *testing.T) {
	err := UnknownNameErr{Kind: "blueprint", Name: "NFTExch", Suggestions: []string{"NFTExchange"}}

	assert.EqualError(t, err, "blueprint 'NFTExch' not found (did you mean NFTExchange?)")
	assert.ErrorIs(t, err, ErrNotFound)
}

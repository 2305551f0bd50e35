package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SentTransaction is a signed transaction accepted by the node
type SentTransaction struct {
	Hash    common.Hash        `json:"hash"`
	From    common.Address     `json:"from"`
	To      *common.Address    `json:"to,omitempty"`
	Raw     *types.Transaction `json:"raw"`
	Receipt *types.Receipt     `json:"receipt,omitempty"`
}

// Succeeded reports whether a mined transaction executed successfully.
// Transactions without a receipt are considered pending, not failed.
func (t *SentTransaction) Succeeded() bool {
	return t.Receipt == nil || t.Receipt.Status == types.ReceiptStatusSuccessful
}

package render

import (
	"io"

	"github.com/trebuchet-org/storectl/internal/domain/models"
)

var _ Renderer[*models.SentTransaction] = (*TransactionRenderer)(nil)

// TransactionRenderer prints a sent transaction in go-ethereum's JSON form
type TransactionRenderer struct {
	out  io.Writer
	json bool
}

// NewTransactionRenderer creates a new transaction renderer
func NewTransactionRenderer(out io.Writer, json bool) *TransactionRenderer {
	return &TransactionRenderer{out: out, json: json}
}

// Render prints the raw signed transaction, then the receipt when one was awaited.
// With --json the whole record is printed as a single document.
func (r *TransactionRenderer) Render(tx *models.SentTransaction) error {
	if r.json {
		return writeJSON(r.out, tx)
	}
	if err := writeJSON(r.out, tx.Raw); err != nil {
		return err
	}
	if tx.Receipt != nil {
		return writeJSON(r.out, tx.Receipt)
	}
	return nil
}

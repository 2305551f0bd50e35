package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/storectl/internal/usecase"
)

var _ Renderer[*usecase.VerifyResult] = (*VerifyRenderer)(nil)

// VerifyRenderer renders explorer verification outcomes
type VerifyRenderer struct {
	out  io.Writer
	json bool
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer, json bool) *VerifyRenderer {
	return &VerifyRenderer{out: out, json: json}
}

// Render prints the explorer's verdict and where to look at the contract
func (r *VerifyRenderer) Render(result *usecase.VerifyResult) error {
	if r.json {
		return writeJSON(r.out, result)
	}
	if result.Verified {
		fmt.Fprintln(r.out, FormatSuccess(result.Message))
	} else {
		fmt.Fprintln(r.out, FormatWarning(result.Message))
	}
	if result.GUID != "" {
		fmt.Fprintf(r.out, "  GUID: %s\n", faintStyle.Sprint(result.GUID))
	}
	if result.ExplorerURL != "" {
		fmt.Fprintf(r.out, "  %s\n", result.ExplorerURL)
	}
	return nil
}

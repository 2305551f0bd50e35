package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/storectl/internal/usecase"
)

var (
	_ Renderer[*usecase.DeployProxyResult]  = (*DeployRenderer)(nil)
	_ Renderer[*usecase.UpgradeProxyResult] = (*UpgradeRenderer)(nil)
)

// DeployRenderer prints the address of a freshly deployed proxy
type DeployRenderer struct {
	out  io.Writer
	json bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, json bool) *DeployRenderer {
	return &DeployRenderer{out: out, json: json}
}

// Render prints `proxy address: <addr>` or the full result as JSON
func (r *DeployRenderer) Render(result *usecase.DeployProxyResult) error {
	if r.json {
		return writeJSON(r.out, result)
	}
	_, err := fmt.Fprintf(r.out, "proxy address: %s\n", result.Proxy.Hex())
	return err
}

// UpgradeRenderer prints the implementation a proxy now points at
type UpgradeRenderer struct {
	out  io.Writer
	json bool
}

// NewUpgradeRenderer creates a new upgrade renderer
func NewUpgradeRenderer(out io.Writer, json bool) *UpgradeRenderer {
	return &UpgradeRenderer{out: out, json: json}
}

// Render prints `Upgrade Implementation address: <impl>` or the full result as JSON
func (r *UpgradeRenderer) Render(result *usecase.UpgradeProxyResult) error {
	if r.json {
		return writeJSON(r.out, result)
	}
	_, err := fmt.Fprintf(r.out, "Upgrade Implementation address: %s\n", result.Implementation.Hex())
	return err
}

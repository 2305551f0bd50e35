package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out  io.Writer
	json bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, json bool) *NetworksRenderer {
	return &NetworksRenderer{out: out, json: json}
}

type networkView struct {
	Name     string `json:"name"`
	ChainID  uint64 `json:"chainId,omitempty"`
	Accounts int    `json:"accounts"`
	Error    string `json:"error,omitempty"`
}

// Render lists every configured network with its chain ID or why it could not be resolved.
// RPC URLs are left out since they usually embed API keys.
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.json {
		views := make([]networkView, 0, len(result.Networks))
		for _, n := range result.Networks {
			view := networkView{Name: n.Name, ChainID: n.ChainID, Accounts: n.Accounts}
			if n.Error != nil {
				view.Error = n.Error.Error()
			}
			views = append(views, view)
		}
		return writeJSON(r.out, views)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in the project file [networks]")
		return nil
	}

	fmt.Fprintln(r.out, headerStyle.Sprint("🌐 Available Networks:"))
	fmt.Fprintln(r.out)

	t := newTable(table.Row{"NETWORK", "CHAIN ID", "ACCOUNTS", "STATUS"})
	for _, n := range result.Networks {
		if n.Error != nil {
			t.AppendRow(table.Row{n.Name, "-", n.Accounts, failStyle.Sprintf("❌ %v", n.Error)})
			continue
		}
		t.AppendRow(table.Row{n.Name, strconv.FormatUint(n.ChainID, 10), n.Accounts, okStyle.Sprint("✅ ok")})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/storectl/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var _ Renderer[*usecase.ShowManifestResult] = (*ManifestRenderer)(nil)

// ManifestRenderer renders what was recorded for one network
type ManifestRenderer struct {
	out  io.Writer
	json bool
}

// NewManifestRenderer creates a new manifest renderer
func NewManifestRenderer(out io.Writer, json bool) *ManifestRenderer {
	return &ManifestRenderer{out: out, json: json}
}

// Render prints the proxy admin, the proxies and the implementations of the manifest
func (r *ManifestRenderer) Render(result *usecase.ShowManifestResult) error {
	m := result.Manifest
	if r.json {
		return writeJSON(r.out, m)
	}

	title := cases.Title(language.English).String(result.Network.Name)
	fmt.Fprintln(r.out, headerStyle.Sprintf("%s (chain %d)", title, m.ChainID))

	if m.Admin == nil && len(m.Proxies) == 0 && len(m.Impls) == 0 {
		fmt.Fprintln(r.out, "No deployments recorded")
		return nil
	}

	if m.Admin != nil {
		fmt.Fprintf(r.out, "ProxyAdmin: %s\n", addressStyle.Sprint(m.Admin.Address.Hex()))
	}

	if len(m.Proxies) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, headerStyle.Sprint("Proxies"))
		t := newTable(table.Row{"PROXY", "KIND", "BLUEPRINT", "IMPLEMENTATION", "DEPLOYED"})
		for _, p := range m.Proxies {
			deployed := formatTime(p.DeployedAt)
			if p.UpgradedAt != nil {
				deployed += faintStyle.Sprintf(" (upgraded %s)", formatTime(*p.UpgradedAt))
			}
			t.AppendRow(table.Row{
				addressStyle.Sprint(p.Address.Hex()),
				string(p.Kind),
				p.Blueprint,
				p.Implementation.Hex(),
				deployed,
			})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	if len(m.Impls) > 0 {
		impls := make([]string, 0, len(m.Impls))
		for hash := range m.Impls {
			impls = append(impls, hash)
		}
		sort.Slice(impls, func(i, j int) bool {
			a, b := m.Impls[impls[i]], m.Impls[impls[j]]
			if a.Blueprint != b.Blueprint {
				return a.Blueprint < b.Blueprint
			}
			return a.DeployedAt.Before(b.DeployedAt)
		})

		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, headerStyle.Sprint("Implementations"))
		t := newTable(table.Row{"BLUEPRINT", "ADDRESS", "DEPLOYED"})
		for _, hash := range impls {
			impl := m.Impls[hash]
			t.AppendRow(table.Row{impl.Blueprint, addressStyle.Sprint(impl.Address.Hex()), formatTime(impl.DeployedAt)})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render writes one row per network with its chain ID or the reason it is unusable
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		_, err := fmt.Fprintln(r.out, "No networks available")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Format.Header = text.FormatUpper
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "RPC URL"})

	for _, network := range result.Networks {
		if network.Error != nil {
			t.AppendRow(table.Row{
				color.New(color.FgRed).Sprint("✗"),
				network.Name,
				"-",
				color.New(color.FgRed).Sprint(network.Error.Error()),
			})
			continue
		}

		chainID := "-"
		if network.ChainID != 0 {
			chainID = fmt.Sprintf("%d", network.ChainID)
		}
		t.AppendRow(table.Row{
			color.New(color.FgGreen).Sprint("✓"),
			network.Name,
			chainID,
			network.RPCURL,
		})
	}

	t.Render()
	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)

package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pullpay/vault-deployer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	contractStyle  = color.New(color.FgYellow, color.Bold)
	addressStyle   = color.New(color.FgWhite)
	timestampStyle = color.New(color.Faint)
)

// DeploymentsRenderer renders recorded deployments as a table
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// Render writes one row per deployment
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		_, err := fmt.Fprintln(r.out, "No deployments found")
		return err
	}

	title := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Format.Header = text.FormatUpper

	t.AppendHeader(table.Row{"Chain", "Network", "Contract", "Address", "Block", "Deployed"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, d := range result.Deployments {
		t.AppendRow(table.Row{
			strconv.FormatUint(d.ChainID, 10),
			title.String(d.Network),
			contractStyle.Sprint(d.ContractName),
			addressStyle.Sprint(d.Address),
			strconv.FormatUint(d.BlockNumber, 10),
			timestampStyle.Sprint(d.CreatedAt.Local().Format("2006-01-02 15:04:05")),
		})
	}

	t.Render()
	return nil
}

var _ Renderer[*usecase.DeploymentListResult] = (*DeploymentsRenderer)(nil)

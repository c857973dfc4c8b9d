package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// Color styles for table format
var (
	networkBg          = color.BgCyan
	networkHeader      = color.New(networkBg, color.FgBlack)
	networkHeaderBold  = color.New(networkBg, color.FgBlack, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	tagsStyle          = color.New(color.FgCyan)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

// DeploymentsRenderer renders deployment lists grouped by network
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders one table per network
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := make(map[string][]*models.Deployment)
	for _, dep := range result.Deployments {
		groups[dep.Network] = append(groups[dep.Network], dep)
	}

	networks := make([]string, 0, len(groups))
	for name := range groups {
		networks = append(networks, name)
	}
	sort.Strings(networks)

	for _, name := range networks {
		deployments := groups[name]
		label := fmt.Sprintf("%-10s", "network:")
		value := fmt.Sprintf("%-30s", fmt.Sprintf("%s (%d)", name, deployments[0].ChainID))
		fmt.Fprintln(r.out, networkHeader.Sprintf(" ⛓ %s ", label)+networkHeaderBold.Sprint(value))
		fmt.Fprintln(r.out)
		fmt.Fprint(r.out, r.buildTable(deployments).Render())
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", result.Summary.Total)
	return nil
}

func (r *DeploymentsRenderer) buildTable(deployments []*models.Deployment) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "  ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignLeft},
	})
	t.AppendHeader(table.Row{
		sectionHeaderStyle.Sprint("CONTRACT"),
		sectionHeaderStyle.Sprint("ADDRESS"),
		sectionHeaderStyle.Sprint("BLOCK"),
		sectionHeaderStyle.Sprint("DEPLOYED"),
	})

	for _, dep := range deployments {
		contract := contractStyle.Sprint(dep.ContractName)
		if len(dep.Tags) > 0 {
			contract += " " + tagsStyle.Sprintf("(%s)", strings.Join(dep.Tags, ","))
		}
		t.AppendRow(table.Row{
			contract,
			addressStyle.Sprint(dep.Address),
			dep.BlockNumber,
			timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
		})
	}

	return t
}

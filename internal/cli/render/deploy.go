package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

var (
	networkStyle  = color.New(color.FgCyan, color.Bold)
	contractStyle = color.New(color.FgGreen, color.Bold)
	reusedStyle   = color.New(color.FgYellow)
	dryRunStyle   = color.New(color.FgMagenta)
	faintStyle    = color.New(color.Faint)
)

// DeployRenderer renders the outcome of a deployment run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render writes a summary of each deployment unit
func (r *DeployRenderer) Render(result *usecase.RunDeploymentsResult) error {
	fmt.Fprintf(r.out, "🌐 Network: %s %s\n",
		networkStyle.Sprint(result.Network.Name),
		faintStyle.Sprintf("(chain %d, %s)", result.Network.ChainID, result.Network.Class))
	if result.Accounts != nil {
		fmt.Fprintf(r.out, "   Deployer: %s\n", result.Accounts.Deployer.Hex())
		fmt.Fprintf(r.out, "   Service:  %s\n", result.Accounts.Service.Hex())
	}
	fmt.Fprintln(r.out)

	if len(result.Units) == 0 {
		fmt.Fprintln(r.out, "Nothing to deploy")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Unit", "Contract", "Address", "Status", "Args"})

	for _, unit := range result.Units {
		if unit.Skipped {
			t.AppendRow(table.Row{unit.Unit, "-", "-", faintStyle.Sprint("skipped"), ""})
			continue
		}

		res := unit.Result
		address := "-"
		if res.Deployment != nil {
			address = res.Deployment.Address
		}
		t.AppendRow(table.Row{
			unit.Unit,
			contractStyle.Sprint(res.ContractName),
			address,
			statusOf(res),
			strings.Join(res.Args, ", "),
		})
	}

	t.Render()
	fmt.Fprintln(r.out)

	if hasDryRun(result) {
		fmt.Fprintln(r.out, FormatWarning("Dry run: no transactions were sent"))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployment run %s complete", result.RunID)))
	}
	return nil
}

func statusOf(res *usecase.DeployContractResult) string {
	switch {
	case res.DryRun:
		return dryRunStyle.Sprint("dry-run")
	case res.Reused:
		return reusedStyle.Sprint("reused")
	case res.Deployment != nil:
		return color.New(color.FgGreen).Sprintf("deployed (%s, %d conf)", shortHash(res.Deployment.TxHash), res.Confirmations)
	default:
		return "-"
	}
}

func hasDryRun(result *usecase.RunDeploymentsResult) bool {
	for _, unit := range result.Units {
		if unit.Result != nil && unit.Result.DryRun {
			return true
		}
	}
	return false
}

// UnitJSON is the JSON shape of one deployment unit outcome
type UnitJSON struct {
	Unit          string   `json:"unit"`
	Skipped       bool     `json:"skipped,omitempty"`
	ContractName  string   `json:"contractName,omitempty"`
	Address       string   `json:"address,omitempty"`
	TxHash        string   `json:"txHash,omitempty"`
	Args          []string `json:"args,omitempty"`
	Fingerprint   string   `json:"fingerprint,omitempty"`
	Confirmations uint64   `json:"confirmations,omitempty"`
	Reused        bool     `json:"reused,omitempty"`
	DryRun        bool     `json:"dryRun,omitempty"`
}

// DeployRunJSON is the JSON shape of a deployment run
type DeployRunJSON struct {
	RunID    string                 `json:"runId"`
	Network  *domain.NetworkProfile `json:"network"`
	Deployer string                 `json:"deployer,omitempty"`
	Service  string                 `json:"service,omitempty"`
	Units    []UnitJSON             `json:"units"`
}

// NewDeployRunJSON converts a deployment run into its JSON shape
func NewDeployRunJSON(result *usecase.RunDeploymentsResult) DeployRunJSON {
	out := DeployRunJSON{
		RunID:   result.RunID,
		Network: result.Network,
		Units:   make([]UnitJSON, 0, len(result.Units)),
	}
	if result.Accounts != nil {
		out.Deployer = result.Accounts.Deployer.Hex()
		out.Service = result.Accounts.Service.Hex()
	}

	for _, unit := range result.Units {
		entry := UnitJSON{Unit: unit.Unit, Skipped: unit.Skipped}
		if res := unit.Result; res != nil {
			entry.ContractName = res.ContractName
			entry.Args = res.Args
			entry.Fingerprint = res.Fingerprint
			entry.Confirmations = res.Confirmations
			entry.Reused = res.Reused
			entry.DryRun = res.DryRun
			if res.Deployment != nil {
				entry.Address = res.Deployment.Address
				entry.TxHash = res.Deployment.TxHash
			}
		}
		out.Units = append(out.Units, entry)
	}
	return out
}

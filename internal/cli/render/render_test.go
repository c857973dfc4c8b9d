package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

func init() {
	color.NoColor = true
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ Unknown network: mumbia (did you mean mumbai?)",
		FormatError("unknown network: mumbia (did you mean mumbai?)"))
	assert.Equal(t, "❌ ", FormatError(""))
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "0x1234", shortHash("0x1234"))
	assert.Equal(t, "0xabcd…7890", shortHash("0xabcdef000000000000000000000000000000000000000000000000000001234567890"))
}

func TestDeployRenderer(t *testing.T) {
	network := &domain.NetworkProfile{Name: "mumbai", ChainID: 80001, Class: domain.ProductionNetwork, RequiredConfirmations: 6}
	result := &usecase.RunDeploymentsResult{
		RunID:   "run-1",
		Network: network,
		Accounts: &usecase.NamedAccounts{
			Deployer: common.HexToAddress("0x01"),
			Service:  common.HexToAddress("0x02"),
		},
		Units: []usecase.UnitResult{
			{Unit: usecase.TagMocks, Skipped: true},
			{Unit: usecase.TagEventCreator, Result: &usecase.DeployContractResult{
				ContractName:  domain.EventCreatorContract,
				Network:       network,
				Args:          []string{"0xFeed", "0x02"},
				Confirmations: 6,
				Deployment: &models.Deployment{
					Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
					TxHash:  "0xabcdef0000000000000000000000000000000000000000000000000000001234",
				},
			}},
		},
	}

	var out bytes.Buffer
	require.NoError(t, NewDeployRenderer(&out).Render(result))
	text := out.String()
	assert.Contains(t, text, "mumbai")
	assert.Contains(t, text, "skipped")
	assert.Contains(t, text, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	assert.Contains(t, text, "deployed (0xabcd…1234, 6 conf)")
	assert.Contains(t, text, "Deployment run run-1 complete")

	js := NewDeployRunJSON(result)
	require.Len(t, js.Units, 2)
	assert.True(t, js.Units[0].Skipped)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", js.Units[1].Address)
	assert.Equal(t, common.HexToAddress("0x01").Hex(), js.Deployer)
}

func TestNetworksJSON(t *testing.T) {
	result := &usecase.ListNetworksResult{Networks: []usecase.NetworkStatus{
		{
			Name:      "mumbai",
			Profile:   &domain.NetworkProfile{Name: "mumbai", ChainID: 80001, Class: domain.ProductionNetwork, RequiredConfirmations: 6},
			PriceFeed: common.HexToAddress("0x0715A7794a1dc8e42615F059dD6e406A6594651A"),
		},
		{Name: "broken", Error: errors.New("no rpc")},
	}}

	js := NetworksJSON(result)
	require.Len(t, js, 2)
	assert.Equal(t, "production", js[0].Class)
	assert.NotEmpty(t, js[0].PriceFeed)
	assert.Equal(t, "no rpc", js[1].Error)
	assert.Zero(t, js[1].ChainID)

	var out bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&out).RenderNetworksList(result))
	assert.Contains(t, out.String(), "mumbai - Chain ID: 80001 (Production, 6 confirmations)")
	assert.Contains(t, out.String(), "❌ broken - Error: no rpc")
}

package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// PromptFunc asks a yes/no question and returns promptui's result
type PromptFunc func(label string) (string, error)

// ConfirmerAdapter asks before sending deployments to production networks
type ConfirmerAdapter struct {
	config *config.RuntimeConfig
	prompt PromptFunc
}

// NewConfirmerAdapter creates a new confirmer using promptui
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{config: cfg, prompt: runPrompt}
}

// WithPrompt replaces the terminal prompt
func (c *ConfirmerAdapter) WithPrompt(prompt PromptFunc) *ConfirmerAdapter {
	c.prompt = prompt
	return c
}

// ConfirmDeployment shows what will be deployed and waits for a yes
func (c *ConfirmerAdapter) ConfirmDeployment(ctx context.Context, network *domain.NetworkProfile, contractName string, args []string) (bool, error) {
	// Scripted runs have nobody to ask
	if c.config.AssumeYes || c.config.NonInteractive {
		return true, nil
	}

	label := fmt.Sprintf("Deploy %s to %s (chain %d) with args [%s]",
		color.New(color.Bold).Sprint(contractName),
		color.New(color.FgYellow).Sprint(network.Name),
		network.ChainID,
		strings.Join(args, ", "),
	)

	_, err := c.prompt(label)
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, domain.ErrDeploymentAborted
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return true, nil
}

func runPrompt(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	return prompt.Run()
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentConfirmer = (*ConfirmerAdapter)(nil)

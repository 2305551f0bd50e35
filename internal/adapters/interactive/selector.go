package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// Prompter asks the user to choose or confirm on the terminal
type Prompter struct {
	config *config.RuntimeConfig
}

// NewPrompter creates a new terminal prompter
func NewPrompter(cfg *config.RuntimeConfig) *Prompter {
	return &Prompter{config: cfg}
}

// SelectOption asks the user to pick one of options
func (p *Prompter) SelectOption(ctx context.Context, prompt string, options []string) (int, error) {
	// In non-interactive mode, we can't select
	if p.config.NonInteractive {
		return -1, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(options) == 0 {
		return -1, fmt.Errorf("no options provided for selection")
	}
	if len(options) == 1 {
		return 0, nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return -1, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

// ConfirmBroadcast asks before sending transactions to a guarded network
func (p *Prompter) ConfirmBroadcast(ctx context.Context, network *config.Network, summary string) (bool, error) {
	if p.config.NonInteractive {
		return false, fmt.Errorf("confirmation not available in non-interactive mode")
	}

	label := fmt.Sprintf("About to %s on %s (chain %d). Continue",
		summary, color.New(color.FgYellow, color.Bold).Sprint(network.Name), network.ChainID)
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	// promptui reports "no" as ErrAbort
	if _, err := prompt.Run(); err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var (
	_ usecase.InteractiveSelector = (*Prompter)(nil)
	_ usecase.BroadcastConfirmer  = (*Prompter)(nil)
)

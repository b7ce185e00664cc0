package interactive

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/domain"
	"github.com/pullpay/vault-deployer/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// ProvideSelector returns a selector only when a user can answer the prompt.
// A nil selector makes ambiguous names fail with the full list of candidates.
func ProvideSelector(cfg *config.RuntimeConfig) usecase.ArtifactSelector {
	if cfg.NonInteractive || !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}
	return NewSelectorAdapter(cfg)
}

// SelectArtifact asks the user to pick one of several artifacts sharing a name
func (s *SelectorAdapter) SelectArtifact(ctx context.Context, artifacts []*domain.Artifact, prompt string) (*domain.Artifact, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts provided for selection")
	}

	if len(artifacts) == 1 {
		return artifacts[0], nil
	}

	options := formatArtifactOptions(artifacts)

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
		Searcher:          fuzzySearcher(artifactIDs(artifacts)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return artifacts[index], nil
}

// formatArtifactOptions renders "Name (source path)" for each artifact
func formatArtifactOptions(artifacts []*domain.Artifact) []string {
	options := make([]string, len(artifacts))
	for i, artifact := range artifacts {
		name := color.New(color.FgWhite, color.Bold).Sprint(artifact.Name)
		source := color.New(color.FgBlue).Sprint(artifact.SourceName)
		options[i] = fmt.Sprintf("%s (%s)", name, source)
	}
	return options
}

func artifactIDs(artifacts []*domain.Artifact) []string {
	ids := make([]string, len(artifacts))
	for i, artifact := range artifacts {
		ids[i] = strings.ToLower(artifact.ID())
	}
	return ids
}

// fuzzySearcher matches by substring first, then fuzzily
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := items[index]

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactSelector = (*SelectorAdapter)(nil)

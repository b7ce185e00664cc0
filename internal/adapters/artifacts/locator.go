package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/domain"
	"github.com/pullpay/vault-deployer/internal/domain/models"
	"github.com/pullpay/vault-deployer/internal/usecase"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

const maxSuggestions = 3

// Locator indexes compiled artifacts from Hardhat and Foundry build output
type Locator struct {
	dirs []string

	mu      sync.RWMutex
	indexed bool
	byID    map[string]*domain.Artifact   // key: "source:Name"
	byName  map[string][]*domain.Artifact // key: contract name

	unlinked map[string]error // artifacts skipped for missing library links, by name and id
}

// NewLocator creates a locator over the configured build output directories
func NewLocator(cfg *config.RuntimeConfig) *Locator {
	return NewLocatorForDirs(cfg.ArtifactDirs...)
}

// NewLocatorForDirs creates a locator over explicit build output directories
func NewLocatorForDirs(dirs ...string) *Locator {
	return &Locator{dirs: dirs}
}

// Locate returns the artifact for a contract name or "source:name" identifier
func (l *Locator) Locate(ctx context.Context, name string) (*domain.Artifact, error) {
	if err := l.ensureIndexed(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if strings.Contains(name, ":") {
		if artifact, ok := l.byID[name]; ok {
			return artifact, nil
		}
		return nil, l.notFound(name)
	}

	matches := l.byName[name]
	switch len(matches) {
	case 0:
		return nil, l.notFound(name)
	case 1:
		return matches[0], nil
	default:
		return nil, &domain.AmbiguousArtifactError{Name: name, Matches: matches}
	}
}

// notFound explains why name has no deployable artifact
func (l *Locator) notFound(name string) error {
	if err, ok := l.unlinked[name]; ok {
		return err
	}
	return &domain.NotFoundError{Name: name, Suggestions: l.suggest(name)}
}

// suggest returns the closest indexed names for a missing one
func (l *Locator) suggest(name string) []string {
	names := lo.Keys(l.byName)
	sort.Strings(names)

	if i := strings.LastIndex(name, ":"); i != -1 {
		name = name[i+1:]
	}

	matches := fuzzy.Find(name, names)
	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
	if len(suggestions) == 0 {
		// fuzzy needs every pattern rune in order; fall back to case-insensitive containment
		suggestions = lo.Filter(names, func(n string, _ int) bool {
			return strings.Contains(strings.ToLower(n), strings.ToLower(name)) ||
				strings.Contains(strings.ToLower(name), strings.ToLower(n))
		})
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// ensureIndexed builds the index on first use
func (l *Locator) ensureIndexed() error {
	l.mu.RLock()
	done := l.indexed
	l.mu.RUnlock()
	if done {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexed {
		return nil
	}

	l.byID = make(map[string]*domain.Artifact)
	l.byName = make(map[string][]*domain.Artifact)
	l.unlinked = make(map[string]error)

	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := filepath.WalkDir(dir, l.visit); err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", dir, err)
		}
	}

	l.indexed = true
	return nil
}

func (l *Locator) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return err
	}
	if d.IsDir() {
		// Compiler metadata, not deployable artifacts
		if d.Name() == "build-info" || d.Name() == "cache" {
			return filepath.SkipDir
		}
		return nil
	}
	if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
		return nil
	}

	artifact, err := loadArtifact(path)
	var linkErr *unlinkedError
	if errors.As(err, &linkErr) {
		l.unlinked[linkErr.name] = err
		l.unlinked[linkErr.source+":"+linkErr.name] = err
		return nil
	}
	if err != nil {
		return err
	}
	if artifact == nil {
		return nil
	}

	// Foundry and Hardhat can both hold the same contract; first directory wins
	if _, exists := l.byID[artifact.ID()]; exists {
		return nil
	}
	l.byID[artifact.ID()] = artifact
	l.byName[artifact.Name] = append(l.byName[artifact.Name], artifact)
	return nil
}

// loadArtifact parses a build output file. It returns nil for files that are
// not artifacts or that hold no deployable bytecode.
func loadArtifact(path string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw models.Artifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil // Skip files that aren't artifacts
	}

	if len(raw.ABI) == 0 {
		return nil, nil
	}

	code := strings.TrimSpace(raw.Bytecode.Object)
	if code == "" || code == "0x" {
		return nil, nil // Interfaces and abstract contracts
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}

	sourceName, contractName := raw.Target()
	if contractName == "" {
		// Foundry layout: out/<File>.sol/<Name>.json
		contractName = strings.TrimSuffix(filepath.Base(path), ".json")
		sourceName = filepath.Base(filepath.Dir(path))
	}

	if raw.HasLinkReferences() || strings.Contains(code, "__$") {
		return nil, &unlinkedError{source: sourceName, name: contractName}
	}

	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, nil // Skip invalid artifacts
	}

	parsedABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, nil
	}

	return &domain.Artifact{
		Name:         contractName,
		SourceName:   sourceName,
		ArtifactPath: path,
		Bytecode:     bytecode,
		ABI:          parsedABI,
	}, nil
}

// unlinkedError marks bytecode that still carries library placeholders
type unlinkedError struct {
	source string
	name   string
}

func (e *unlinkedError) Error() string {
	return fmt.Sprintf("%s:%s needs libraries linked before it can be deployed", e.source, e.name)
}

func (e *unlinkedError) Unwrap() error { return domain.ErrUnlinkedLibrary }

// Ensure the adapter implements the interface
var _ usecase.ArtifactLocator = (*Locator)(nil)

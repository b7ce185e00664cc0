package progress

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

// NewProgressSink picks the spinner for interactive terminals and stays
// silent otherwise. Debug runs are silent too so log lines are not interleaved
// with spinner frames.
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Debug || !isTerminal(os.Stderr) {
		return NewNopSink()
	}
	return NewSpinnerSink()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

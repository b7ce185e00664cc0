package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

// SpinnerSink renders deployment progress with a spinner on stderr so that
// stdout only carries the final result
type SpinnerSink struct {
	out     io.Writer
	spinner *spinner.Spinner
	started time.Time
}

// NewSpinnerSink creates a spinner-based progress sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{out: out, spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StageSubmitting:
		r.started = time.Now()
	case usecase.StageCompleted:
		r.stop()
		color.New(color.FgGreen).Fprintf(r.out, "✓ %s%s\n", event.Message, r.elapsed())
		return
	case usecase.StageFailed:
		r.stop()
		color.New(color.FgRed).Fprintf(r.out, "✗ Deployment %s%s\n", event.Message, r.elapsed())
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	r.stop()
	color.New(color.FgWhite, color.Faint).Fprintln(r.out, event.Message)
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() { color.New(color.FgCyan).Fprintln(r.out, message) })
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() { color.New(color.FgRed).Fprintln(r.out, message) })
}

// pause stops the spinner while print runs and restarts it afterwards
func (r *SpinnerSink) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	print()

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerSink) elapsed() string {
	if r.started.IsZero() {
		return ""
	}
	return fmt.Sprintf(" (%s)", time.Since(r.started).Round(time.Millisecond))
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/Veraticus/destiny-recharge/internal/engine"
	"github.com/schollz/progressbar/v3"
)

var _ engine.Progress = (*ProgressReporter)(nil)

// ProgressReporter draws a progress bar for each bulk phase of a run.
// It is safe for concurrent Step calls.
type ProgressReporter struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	phase  string
	mu     sync.Mutex
}

// NewProgressReporter creates a reporter writing to writer, or stdout when nil.
func NewProgressReporter(writer io.Writer) *ProgressReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ProgressReporter{writer: writer}
}

// Start begins a new phase, replacing any bar still running.
func (p *ProgressReporter) Start(phase string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finishLocked()
	p.phase = phase
	if total <= 0 {
		return
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]%s...[reset]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// Step advances the bar. A non-empty label is shown next to the phase,
// coloured when it names a ledger section.
func (p *ProgressReporter) Step(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		return
	}
	if label != "" {
		p.bar.Describe(fmt.Sprintf("[cyan][bold]%s:[reset] %s", p.phase, FormatSection(label)))
	}
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the current bar, if any.
func (p *ProgressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked()
}

func (p *ProgressReporter) finishLocked() {
	if p.bar == nil {
		return
	}
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	p.bar = nil
}

// Announce prints a milestone on its own line.
func (p *ProgressReporter) Announce(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		if err := p.bar.Clear(); err != nil {
			slog.Warn("Failed to clear progress bar", "error", err)
		}
	}
	if _, err := fmt.Fprintln(p.writer, FormatSuccess(message)); err != nil {
		slog.Warn("Failed to write announcement", "error", err)
	}
}

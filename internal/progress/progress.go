package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// ProgressBar reports how many inputs have been decoded. Safe for
// concurrent Increment calls from decode workers.
type ProgressBar struct {
	mu          sync.Mutex
	total       int
	current     int
	startTime   time.Time
	lastUpdate  time.Time
	interval    time.Duration
	output      io.Writer
	enabled     bool
	description string
}

// NewProgressBar creates a progress bar writing to stderr.
func NewProgressBar(total int, description string) *ProgressBar {
	return &ProgressBar{
		total:       total,
		startTime:   time.Now(),
		interval:    100 * time.Millisecond,
		output:      os.Stderr,
		enabled:     true,
		description: description,
	}
}

// SetOutput redirects progress output.
func (p *ProgressBar) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// Disable suppresses all output.
func (p *ProgressBar) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
}

// Increment records one finished item; label names it.
func (p *ProgressBar) Increment(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < p.total {
		p.current++
	}
	p.render(label, false)
}

// Current returns the number of finished items.
func (p *ProgressBar) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Finish renders the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	p.render("", true)
	fmt.Fprint(p.output, "\n")
}

func (p *ProgressBar) render(label string, force bool) {
	if !p.enabled {
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastUpdate) < p.interval && p.current < p.total {
		return
	}
	p.lastUpdate = now

	filled := 0
	if p.total > 0 {
		filled = barWidth * p.current / p.total
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled)

	line := fmt.Sprintf("\r[%s] %d/%d | %s", bar, p.current, p.total, formatDuration(time.Since(p.startTime)))
	if p.description != "" {
		line = "\r" + p.description + " " + line[1:]
	}
	if label != "" {
		line += " | " + label
	}
	fmt.Fprint(p.output, line)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

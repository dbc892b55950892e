package cliutil

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps github.com/schollz/progressbar/v3 into the nil-safe
// Progress capability the REC-GEN driver and diff evaluator accept
// (recgen.Progress, diff.Progress): the REC-GEN driver calls Add(1) once
// per couple and the diff evaluator once per generation, and the bar is
// inert when constructed with show=false.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar returns a progress bar over max units of work, writing to
// stderr so stdout stays reserved for the pedigree/report dump. Passing
// show=false returns a bar whose Add/Finish calls are no-ops.
func NewProgressBar(max int64, description string, show bool) *ProgressBar {
	if !show {
		return &ProgressBar{}
	}
	bar := progressbar.NewOptions64(
		max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(100),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(os.Stderr, "\n")
		}),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &ProgressBar{bar: bar}
}

// Add increments the bar by n, a no-op on a disabled bar.
func (p *ProgressBar) Add(n int) {
	if p.bar != nil {
		p.bar.Add(n)
	}
}

// Finish completes the bar, a no-op on a disabled bar.
func (p *ProgressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

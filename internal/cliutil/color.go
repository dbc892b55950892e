// Package cliutil holds the presentation helpers shared by the REC-GEN
// CLI binaries: colored status/summary output and a progress-bar wrapper.
// None of this is imported by the core library packages, which never
// touch stdout or stderr directly (spec §7).
package cliutil

import (
	"os"
	"strconv"

	"github.com/fatih/color"
)

var (
	// Success, Error, Warning, Info and Hint are the exit-status and
	// summary color functions cmd binaries use, grounded on
	// cmd/gedcom/internal/color.go's status palette.
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgBlue, color.Bold)
	Hint    = color.New(color.FgCyan)

	// CoupleID, GeneValue and Generation color pedigree-specific values
	// (a couple's stable ID, a gene symbol, a generation index) in
	// tree-info/tree-diff's human-readable reports.
	CoupleID   = color.New(color.FgMagenta, color.Bold)
	GeneValue  = color.New(color.FgCyan, color.Bold)
	Generation = color.New(color.FgYellow)
)

// InitColor enables or disables color globally, honoring NO_COLOR.
func InitColor(enableColor bool) {
	if noColor, _ := strconv.ParseBool(os.Getenv("NO_COLOR")); noColor {
		color.NoColor = true
		return
	}
	if !color.NoColor {
		color.NoColor = !enableColor
	}
}

// IsColorEnabled reports whether color output is currently enabled.
func IsColorEnabled() bool { return !color.NoColor }

// PrintSuccess prints a success message to stdout.
func PrintSuccess(format string, args ...interface{}) { Success.Printf(format, args...) }

// PrintError prints "Invalid commands." or another failure message to
// stdout, matching spec §7's user-visible error text.
func PrintError(format string, args ...interface{}) { Error.Printf(format, args...) }

// PrintWarning prints a warning message to stdout.
func PrintWarning(format string, args ...interface{}) { Warning.Printf(format, args...) }

// PrintInfo prints an informational message to stdout.
func PrintInfo(format string, args ...interface{}) { Info.Printf(format, args...) }

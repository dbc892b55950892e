// Package rlog implements the work/data logging channels spec
// SPEC_FULL.md's ambient stack describes: two independently-toggleable
// sinks, each optionally mirrored to stdout, each line timestamped
// relative to a start time recorded at construction. It models the
// reference implementation's MAKE_LOGGABLE/WPRINT/DPRINT macro pair as an
// explicit value rather than ambient global state, so callers can run more
// than one logger (and more than one pedigree) in the same process.
package rlog

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger holds the two logging channels REC-GEN's reference implementation
// calls "work" (WPRINT, narration of what the algorithm is doing) and
// "data" (DPRINT, numeric/statistical detail). Either sink may be nil, in
// which case writes to that channel are no-ops; EchoWork/EchoData mirror
// the corresponding channel to stdout in addition to its sink.
type Logger struct {
	work, data       io.Writer
	echoWork, echoData bool
	start            time.Time

	workFile, dataFile *os.File
}

// Discard returns a Logger with both channels disabled — the default for
// library callers that don't want logging (spec §7: "the core library
// never prints to stderr").
func Discard() *Logger {
	return &Logger{start: time.Now()}
}

// NewLogger opens workPath and dataPath (truncating, matching the
// reference implementation's fopen(path, "w")) and returns a Logger
// writing to both. Either path may be empty to leave that channel
// disabled. The caller decides whether a failed open is fatal; NewLogger
// never panics or prints.
func NewLogger(workPath, dataPath string) (*Logger, error) {
	l := &Logger{start: time.Now()}
	if workPath != "" {
		f, err := os.OpenFile(workPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("rlog: open work log %q: %w", workPath, err)
		}
		l.workFile = f
		l.work = f
	}
	if dataPath != "" {
		f, err := os.OpenFile(dataPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("rlog: open data log %q: %w", dataPath, err)
		}
		l.dataFile = f
		l.data = f
	}
	return l, nil
}

// EchoToStdout sets whether the work and/or data channel also mirrors to
// stdout, matching the reference's "-v"/"-w"/"-d" channel-selection flags.
func (l *Logger) EchoToStdout(work, data bool) *Logger {
	l.echoWork, l.echoData = work, data
	return l
}

// Close closes any files this Logger opened. Safe to call on a Logger
// built without NewLogger.
func (l *Logger) Close() error {
	var err error
	if l.workFile != nil {
		err = l.workFile.Close()
	}
	if l.dataFile != nil {
		if derr := l.dataFile.Close(); err == nil {
			err = derr
		}
	}
	return err
}

func (l *Logger) elapsed() float64 {
	return time.Since(l.start).Seconds()
}

// Work writes a timestamped line to the work channel (and stdout, if
// echoing), formatted with TPLUS's "[%.6f]" elapsed-seconds prefix. A nil
// sink and disabled echo make this a no-op, matching FPRINTF's "if(v)"
// guard.
func (l *Logger) Work(format string, args ...any) {
	l.emit(l.work, l.echoWork, format, args...)
}

// Data writes a timestamped line to the data channel (and stdout, if
// echoing).
func (l *Logger) Data(format string, args ...any) {
	l.emit(l.data, l.echoData, format, args...)
}

func (l *Logger) emit(sink io.Writer, echo bool, format string, args ...any) {
	if sink == nil && !echo {
		return
	}
	line := fmt.Sprintf("[%.6f] %s\n", l.elapsed(), fmt.Sprintf(format, args...))
	if sink != nil {
		io.WriteString(sink, line)
	}
	if echo {
		io.WriteString(os.Stdout, line)
	}
}

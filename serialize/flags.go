// Package serialize implements the flag-grammar dump/restore format used
// both for pedigree persistence and for the content lines inside a dump
// (spec §6, §4.2).
package serialize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned (optionally wrapped) whenever a flag string
// fails to parse: an unknown flag, a wrong-arity flag, or an argument that
// does not parse as a number where one is required (spec §7, "Input
// malformed").
var ErrInvalidInput = errors.New("invalid commands")

// FlagEffect is invoked with the collected argument tokens for one flag and
// the "possessed" value currently being built. It returns an error to abort
// parsing (wrapped in ErrInvalidInput by the caller).
type FlagEffect func(args []string, possessed any) error

type flagDef struct {
	narg   int
	effect FlagEffect
}

// FlagReader implements the "flag grammar" from spec §6: space-separated
// tokens, long `--name` or short `-n` (short flags may be concatenated,
// e.g. `-vwd`), each flag consuming a declared number of positional
// tokens, or a dynamic count read from a preceding integer token when
// declared with narg == -1. A flag declared with zero arguments that is
// left at the end of input still fires, with an empty argument slice.
type FlagReader struct {
	names map[byte]string
	defs  map[string]flagDef
	pos   any
}

// NewFlagReader returns an empty reader with no flags registered yet.
func NewFlagReader() *FlagReader {
	return &FlagReader{names: make(map[byte]string), defs: make(map[string]flagDef)}
}

// AddFlag registers a flag under its long name, with an optional short
// nickname (pass 0 for none), a declared argument count (-1 for dynamic),
// and the effect to run when the flag is encountered.
func (fr *FlagReader) AddFlag(name string, nick byte, narg int, effect FlagEffect) {
	fr.defs[name] = flagDef{narg: narg, effect: effect}
	if nick != 0 {
		fr.names[nick] = name
	}
}

// IsNew reports whether no flags have been registered yet.
func (fr *FlagReader) IsNew() bool { return len(fr.defs) == 0 }

// Possess sets the value flag effects will receive as their "possessed"
// argument in subsequent ReadString/ReadTokens calls.
func (fr *FlagReader) Possess(p any) { fr.pos = p }

// Possessed returns the currently-possessed value.
func (fr *FlagReader) Possessed() any { return fr.pos }

// ReadString tokenizes args on whitespace and parses it as flag grammar.
func (fr *FlagReader) ReadString(args string) error {
	return fr.ReadTokens(strings.Fields(args))
}

// ReadTokens parses a pre-tokenized argument list as flag grammar.
func (fr *FlagReader) ReadTokens(args []string) error {
	var queue []string
	i := 0
	for i < len(args) {
		s := args[i]
		switch {
		case len(s) > 0 && s[0] == '-':
			if len(s) < 2 {
				return fmt.Errorf("%w: bare '-'", ErrInvalidInput)
			}
			if s[1] == '-' {
				queue = append(queue, s[2:])
			} else {
				for j := 1; j < len(s); j++ {
					name, ok := fr.names[s[j]]
					if !ok {
						return fmt.Errorf("%w: unknown flag -%c", ErrInvalidInput, s[j])
					}
					queue = append(queue, name)
				}
			}
			i++
		default:
			if len(queue) == 0 {
				// No flag waiting for this argument: skip it rather than
				// raising an error, matching the reference grammar.
				i++
				continue
			}
			name := queue[0]
			queue = queue[1:]
			def, ok := fr.defs[name]
			if !ok {
				return fmt.Errorf("%w: unknown flag --%s", ErrInvalidInput, name)
			}
			n := def.narg
			if n < 0 {
				count, err := strconv.Atoi(args[i])
				if err != nil {
					return fmt.Errorf("%w: dynamic arity for --%s: %v", ErrInvalidInput, name, err)
				}
				n = count
				i++
			}
			if i+n > len(args) {
				return fmt.Errorf("%w: --%s wants %d argument(s)", ErrInvalidInput, name, n)
			}
			argv := append([]string(nil), args[i:i+n]...)
			if err := def.effect(argv, fr.pos); err != nil {
				return fmt.Errorf("%w: --%s: %w", ErrInvalidInput, name, err)
			}
			i += n
		}
	}
	// Leftover flags must take no arguments.
	for _, name := range queue {
		def, ok := fr.defs[name]
		if !ok || def.narg != 0 {
			return fmt.Errorf("%w: --%s left with no arguments but expects some", ErrInvalidInput, name)
		}
		if err := def.effect(nil, fr.pos); err != nil {
			return fmt.Errorf("%w: --%s: %w", ErrInvalidInput, name, err)
		}
	}
	return nil
}

// SplitOpts splits a comma-separated string into its component options,
// mirroring the reference implementation's split_opts helper (used for
// tree-info's -B and -T option strings).
func SplitOpts(s string) []string {
	return strings.Split(s, ",")
}

// ParseInt64 and ParseFloat are small wrappers that turn a strconv parse
// failure into an ErrInvalidInput-wrapped error, for use inside flag
// effects.
func ParseInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	return v, nil
}

func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return v, nil
}

func ParseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	return v, nil
}

package cliutil

import (
	"bufio"
	"io"
	"strings"
)

// Separator is the single-character marker spec §6 uses between two dumps
// on stdin/stdout.
const Separator = '~'

// ReadUntilSeparator reads r line by line up to (and discarding) the first
// standalone Separator line, returning everything read before it. If r is
// exhausted first, it returns everything read with no error — callers that
// only expect one dump on stdin (tree-info) rely on this.
func ReadUntilSeparator(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	var sb strings.Builder
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimRight(line, "\n")
		if trimmed == string(Separator) {
			return sb.String(), nil
		}
		sb.WriteString(line)
		if err != nil {
			if err == io.EOF {
				return sb.String(), nil
			}
			return sb.String(), err
		}
	}
}

package cliutil

import "fmt"

// WriteStatsTable prints a generation-labeled table of "A/B (p%)" stat
// strings (the shape diff.Stats.Format produces), one row per label, with
// the numeric column right-aligned. Grounded on
// cmd/gedcom/internal/output.go's WriteTable, adapted from arbitrary
// string grids to the nodes/edges/blocks report tree-diff emits.
func WriteStatsTable(rows [][2]string) {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	for _, r := range rows {
		label := r[0]
		if IsColorEnabled() {
			Info.Printf("%-*s", width+2, label)
		} else {
			fmt.Printf("%-*s", width+2, label)
		}
		fmt.Println(r[1])
	}
}

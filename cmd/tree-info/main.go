// Command tree-info reports structural analytics about a pedigree's
// extant population: joint-LCA defects, block-share statistics, and
// single-couple subtree dumps (spec §6 `tree-info`). It never registers
// the shared logging flags that rec-gen and tree-diff do — the reference
// implementation's treeinfo_main.cpp never calls LOG_FLAG_READ either,
// and tree-info's own `-b`/`-d` already claim those letters.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/config"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/internal/cliutil"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/serialize"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/simulate"
)

func main() {
	var (
		badLCA      bool
		blockShare  string
		sibShare    string
		subtreeID   int64
		hasSubtree  bool
		treePed     string
		configPath  string
		colorOut    bool
	)

	cmd := &cobra.Command{
		Use:   "tree-info",
		Short: "Report structural analytics about a pedigree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cliutil.InitColor(colorOut && cfg.Output.Color)

			p, err := loadPedigree(treePed)
			if err != nil {
				return err
			}

			a := pedigree.NewAnalysis(p)

			if badLCA {
				printBadLCA(a)
			}
			if blockShare != "" {
				printBlockShare(a, p, blockShare)
			}
			if sibShare != "" {
				printSiblingBlockShare(a, p, sibShare)
			}
			if hasSubtree {
				out, err := a.Subtree(subtreeID)
				if err != nil {
					return err
				}
				fmt.Print(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&badLCA, "badlca", "L", false, "report joint-LCA defects per generation")
	cmd.Flags().StringVarP(&blockShare, "blocks", "B", "", "report block-share statistics: \"div,gen\" (div=0/1, gen defaults to 0)")
	cmd.Flags().StringVarP(&sibShare, "siblocks", "b", "", "report sibling-block-share statistics: \"0\" or \"1\" (percentage)")
	cmd.Flags().Int64VarP(&subtreeID, "subtree", "d", 0, "dump the subtree rooted at this couple ID")
	cmd.Flags().StringVarP(&treePed, "tree-ped", "T", "", "build a deterministic tree pedigree \"blocks,generations,alpha\" instead of reading stdin")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&colorOut, "color", true, "colorize status output")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSubtree = cmd.Flags().Changed("subtree")
	}

	if err := cmd.Execute(); err != nil {
		cliutil.PrintError("%v\n", err)
		os.Exit(1)
	}
}

func loadPedigree(treePed string) (*pedigree.Pedigree, error) {
	if treePed != "" {
		parts := serialize.SplitOpts(treePed)
		if len(parts) != 3 {
			return nil, fmt.Errorf("--tree-ped wants exactly 3 comma-separated values, got %d", len(parts))
		}
		blocks, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, err
		}
		generations, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, err
		}
		alpha, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, err
		}
		return simulate.BuildTree(blocks, generations, alpha), nil
	}

	dump, err := cliutil.ReadUntilSeparator(os.Stdin)
	if err != nil {
		return nil, err
	}
	return serialize.RestoreExtant(dump)
}

func printBadLCA(a *pedigree.Analysis) {
	for i, b := range a.BadJointLCAs() {
		if i == 0 {
			continue // the extant layer has no ancestors to be a joint LCA.
		}
		pct := 0
		if b.Total > 0 {
			pct = 100 * b.Bad / b.Total
		}
		fmt.Printf("Generation %d:\t%d/%d\t%d%%\n", i, b.Bad, b.Total, pct)
	}
	fmt.Println()
}

func printBlockShare(a *pedigree.Analysis, p *pedigree.Pedigree, opts string) {
	fields := serialize.SplitOpts(opts)
	div := len(fields) > 0 && fields[0] != "0" && fields[0] != ""
	gen := 0
	if len(fields) > 1 {
		if g, err := strconv.Atoi(fields[1]); err == nil {
			gen = g
		}
	}
	blocks := p.NumBlocks()
	rows := a.BlockShare()
	if gen >= 0 && gen < len(rows) {
		for _, cat := range rows[gen] {
			fmt.Println(formatCounts(cat, div, blocks))
		}
	}
	fmt.Println()
}

func printSiblingBlockShare(a *pedigree.Analysis, p *pedigree.Pedigree, opts string) {
	div := opts != "0"
	blocks := p.NumBlocks()
	for _, row := range a.SiblingBlockShare() {
		fmt.Println(formatCounts(row, div, blocks))
	}
	fmt.Println()
}

func formatCounts(counts []int, div bool, blocks int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		if div && blocks > 0 {
			parts[i] = strconv.Itoa(100 * c / blocks)
		} else {
			parts[i] = strconv.Itoa(c)
		}
	}
	return strings.Join(parts, " ")
}

// Command tree-diff reads two full dumps from stdin, separated by `~` —
// the original pedigree then a REC-GEN reconstruction of it — and writes a
// per-generation and total accuracy report (spec §6 `tree-diff`).
package main

import (
	"bufio"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/config"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/diff"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/internal/cliutil"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/serialize"
)

func main() {
	var (
		childAccuracy float64
		hasChAcc      bool
		configPath    string
		colorOut      bool
		showProgress  bool
		logFlags      cliutil.LogFlags
	)

	cmd := &cobra.Command{
		Use:   "tree-diff",
		Short: "Score a REC-GEN reconstruction against its original pedigree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cliutil.InitColor(colorOut && cfg.Output.Color)

			// One buffered reader shared by both reads, so bytes the first
			// read buffers past the separator reach the second.
			in := bufio.NewReader(os.Stdin)
			origDump, err := cliutil.ReadUntilSeparator(in)
			if err != nil {
				return err
			}
			reconDump, err := cliutil.ReadUntilSeparator(in)
			if err != nil {
				return err
			}

			orig, err := serialize.RestoreFull(origDump)
			if err != nil {
				return err
			}
			recon, err := serialize.RestoreFull(reconDump)
			if err != nil {
				return err
			}

			log, err := logFlags.Build()
			if err != nil {
				return err
			}
			defer log.Close()

			acc := cfg.TreeDiff.ChildAccuracy
			if hasChAcc {
				acc = childAccuracy
			}

			d := diff.New(orig, recon).SetChildAccuracy(acc)
			if showProgress && cfg.Output.Progress {
				d.SetProgress(cliutil.NewProgressBar(int64(orig.NumGrades()), "tree-diff", true))
			}
			d.TopologyBiject().BlocksCheck()

			printReport(d.Stats)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&childAccuracy, "child-accuracy", "a", diff.DefaultChildAccuracy, "minimum fraction of children that must correspond for ancestral bijection")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&colorOut, "color", true, "colorize status output")
	cmd.Flags().BoolVar(&showProgress, "progress", true, "show a progress bar over the bijection loop")
	logFlags.Register(cmd)

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasChAcc = cmd.Flags().Changed("child-accuracy")
	}

	if err := cmd.Execute(); err != nil {
		cliutil.PrintError("%v\n", err)
		os.Exit(1)
	}
}

func printReport(stats diff.Stats) {
	rows := [][2]string{
		{"nodes", stats.Nodes.Format()},
		{"edges", stats.Edges.Format()},
		{"blocks", stats.Blocks.Format()},
	}
	for i := range stats.NodesByGen {
		gen := strconv.Itoa(i)
		rows = append(rows,
			[2]string{"nodes@" + gen, stats.NodesByGen[i].Format()},
			[2]string{"edges@" + gen, stats.EdgesByGen[i].Format()},
			[2]string{"blocks@" + gen, stats.BlocksByGen[i].Format()},
		)
	}
	cliutil.WriteStatsTable(rows)
}

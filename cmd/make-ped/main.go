// Command make-ped stochastically (or, with --deterministic, regularly)
// generates a synthetic pedigree and writes its extant dump, a separator,
// then its full dump to stdout (spec §6 `make-ped`).
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/config"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/internal/cliutil"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/serialize"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/simulate"
)

func main() {
	var (
		blocks, alpha, generations, founders int
		deterministic                        bool
		seed                                 int64
		configPath                           string
		colorOut                             bool
	)

	cmd := &cobra.Command{
		Use:   "make-ped",
		Short: "Generate a synthetic pedigree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cliutil.InitColor(colorOut && cfg.Output.Color)

			var p *pedigree.Pedigree
			if deterministic {
				p = simulate.BuildTree(blocks, generations, alpha)
			} else {
				rng := rand.New(rand.NewSource(seed))
				p = simulate.BuildPoisson(rng, simulate.Params{
					Blocks:      blocks,
					Alpha:       alpha,
					Generations: generations,
					FounderPop:  founders,
				})
			}

			fmt.Println(serialize.DumpExtant(p))
			fmt.Println(string(cliutil.Separator))
			fmt.Println(serialize.DumpFull(p))
			return nil
		},
	}

	cmd.Flags().IntVarP(&blocks, "blocks", "B", 10, "genes per genome")
	cmd.Flags().IntVarP(&alpha, "alpha", "A", 2, "expected (or exact, under --deterministic) children per couple")
	cmd.Flags().IntVarP(&generations, "generations", "T", 4, "number of generation layers")
	cmd.Flags().IntVarP(&founders, "founders", "N", 16, "founder population size")
	cmd.Flags().BoolVar(&deterministic, "deterministic", false, "use the fixed-branching tree-pedigree constructor instead of Poisson fertility")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for the Poisson simulator")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&colorOut, "color", true, "colorize status output")

	if err := cmd.Execute(); err != nil {
		cliutil.PrintError("%v\n", err)
		os.Exit(1)
	}
}

// Command rec-gen reads an extant-population dump from stdin and writes a
// full dump of the REC-GEN reconstruction to stdout (spec §6 `rec-gen`).
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/bp"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/collect"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/config"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/internal/cliutil"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/recgen"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/serialize"
)

func main() {
	var (
		sibList, candList                 string
		rec, decay, epsilon                float64
		richness, cacheSize                int
		basic, recursive, believeProp      bool
		collectorName, memMode             string
		pruneClaimed                       bool
		configPath                         string
		colorOut, showProgress             bool
		logFlags                           cliutil.LogFlags
	)

	cmd := &cobra.Command{
		Use:   "rec-gen",
		Short: "Reconstruct ancestral generations from an extant population",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cliutil.InitColor(colorOut && cfg.Output.Color)

			dump, err := cliutil.ReadUntilSeparator(os.Stdin)
			if err != nil {
				return err
			}
			p, err := serialize.RestoreExtant(dump)
			if err != nil {
				return err
			}

			log, err := logFlags.Build()
			if err != nil {
				return err
			}
			defer log.Close()

			name := resolveCollectorName(collectorName, basic, recursive, believeProp)
			coll, err := buildCollector(name, p, cfg, epsilon, memMode, cacheSize)
			if err != nil {
				return err
			}

			opts := recgen.Options{
				Sib:          cfg.RecGen.Sib,
				Cand:         cfg.RecGen.Cand,
				Rec:          rec,
				Decay:        decay,
				D:            richness,
				SibList:      parseFloatList(sibList),
				CandList:     parseFloatList(candList),
				PruneClaimed: pruneClaimed,
				Log:          log,
			}
			if showProgress && cfg.Output.Progress {
				opts.Progress = cliutil.NewProgressBar(int64(p.Size()), "rec-gen", true)
			}

			driver := recgen.NewDriver(coll, opts)
			p = driver.Run(p)

			fmt.Println(serialize.DumpFull(p))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sibList, "sib", "S", "", "comma-separated per-generation sibling threshold override list")
	cmd.Flags().StringVarP(&candList, "cand", "c", "", "comma-separated per-generation candidate-pair threshold override list")
	cmd.Flags().Float64VarP(&rec, "rec", "r", 0.5, "minimum recall threshold")
	cmd.Flags().Float64VarP(&decay, "decay", "y", 0.9, "per-generation threshold decay factor")
	cmd.Flags().IntVarP(&richness, "richness", "d", 3, "minimum clique size to assign a parent couple")
	cmd.Flags().BoolVarP(&basic, "basic", "B", false, "use the triple-vote symbol collector (the default)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "R", false, "use the bushiness (recursive) symbol collector")
	cmd.Flags().BoolVarP(&believeProp, "bp", "P", false, "use the belief-propagation symbol collector")
	cmd.Flags().StringVar(&collectorName, "collector", "", "explicit collector name: triplevote, mostfrequent, recursive, parsimony, bp")
	cmd.Flags().Float64VarP(&epsilon, "epsilon", "e", 0.01, "belief-propagation mutation parameter")
	cmd.Flags().StringVarP(&memMode, "memmode", "m", "full", "belief-propagation memory mode: full or purge_child")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 4096, "LRU cache size under purge_child memory mode")
	cmd.Flags().BoolVar(&pruneClaimed, "prune-claimed", false, "skip already-claimed couples when building sibling candidates")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&colorOut, "color", true, "colorize status output")
	cmd.Flags().BoolVar(&showProgress, "progress", true, "show a progress bar over the generation loop")
	logFlags.Register(cmd)

	if err := cmd.Execute(); err != nil {
		cliutil.PrintError("%v\n", err)
		os.Exit(1)
	}
}

func resolveCollectorName(explicit string, basic, recursive, believeProp bool) string {
	if explicit != "" {
		return explicit
	}
	switch {
	case basic:
		return "triplevote"
	case recursive:
		return "recursive"
	case believeProp:
		return "bp"
	default:
		return "triplevote"
	}
}

func buildCollector(name string, p *pedigree.Pedigree, cfg *config.Config, epsilon float64, memMode string, cacheSize int) (collect.Collector, error) {
	switch name {
	case "triplevote", "":
		return collect.TripleVote{}, nil
	case "mostfrequent":
		return collect.MostFrequent{}, nil
	case "recursive":
		return collect.NewRecursive(cfg.RecGen.BushThresh), nil
	case "parsimony":
		return collect.NewParsimony(), nil
	case "bp":
		mode := bp.MemFull
		if memMode == "purge_child" {
			mode = bp.MemPurgeChild
		}
		engine := bp.NewEngine(epsilon, mode, cacheSize)
		return collect.NewBeliefProp(engine, p.AllGenes()), nil
	default:
		return nil, fmt.Errorf("unknown collector %q", name)
	}
}

func parseFloatList(s string) []float64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

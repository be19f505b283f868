// Package report parses JUnit results directories and renders summary and
// comparison tables.
package report

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/config"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/junit"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/report"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/summary"
)

type Input struct {
	resultsDir  string
	baselineDir string
	label       string
	baseLabel   string
	saveTo      string
}

func NewCmdReport() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "report [results-dir]",
		Short: "Create a report from results.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.New()
			if len(args) == 1 {
				data.resultsDir = args[0]
				if err := processResult(&data); err != nil {
					log.Error(err)
					os.Exit(1)
				}
				return
			}
			// No directory given: report over the standard variant layout.
			if err := Run(cfg, data.saveTo); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		},
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().StringVarP(
		&data.baselineDir, "baseline", "b", "",
		"Baseline results directory to compare against. Example: -b build/test-results/original",
	)
	cmd.Flags().StringVar(&data.label, "label", "results", "Label of the results directory")
	cmd.Flags().StringVar(&data.baseLabel, "base-label", "baseline", "Label of the baseline directory")
	cmd.Flags().StringVarP(
		&data.saveTo, "save-to", "s", "",
		"Save failure lists, workbook and duration chart to disk. Example: -s ./results",
	)
	return cmd
}

// processResult reports over one explicit results directory, optionally
// against a baseline directory.
func processResult(input *Input) error {
	rs, err := junit.ParseDir(input.resultsDir, input.label)
	if err != nil {
		return err
	}
	report.ShowSummary(os.Stdout, rs)

	var base *junit.ResultSet
	if input.baselineDir != "" {
		base, err = junit.ParseDir(input.baselineDir, input.baseLabel)
		if err != nil {
			return err
		}
		if base == nil || rs == nil {
			// One side missing: skip the comparison, never fail the run.
			log.Infof("skipping comparison: one side has no results available")
		} else {
			report.ShowComparison(os.Stdout, summary.Compare(base, rs, base.Label+" vs "+rs.Label))
		}
	}

	if input.saveTo != "" {
		return report.SaveResults(input.saveTo, []*junit.ResultSet{base, rs})
	}
	return nil
}

// Run reports over the standard per-variant results layout: a summary per
// variant, a pairwise comparison of each obfuscated variant against the
// original, and the side-by-side table.
func Run(cfg *config.Config, saveTo string) error {
	sets := make([]*junit.ResultSet, 0, len(config.Variants))
	byVariant := map[string]*junit.ResultSet{}
	for _, variant := range config.Variants {
		dir := filepath.Join(cfg.ProjectDir, config.ResultsDir(variant))
		rs, err := junit.ParseDir(dir, variant)
		if err != nil {
			return err
		}
		sets = append(sets, rs)
		byVariant[variant] = rs
		report.ShowSummary(os.Stdout, rs)
	}

	base := byVariant[config.VariantOriginal]
	for _, variant := range []string{config.VariantBodies, config.VariantNames} {
		other := byVariant[variant]
		if base == nil || other == nil {
			log.Infof("skipping comparison %q vs %q: no results available for one side", config.VariantOriginal, variant)
			continue
		}
		report.ShowComparison(os.Stdout, summary.Compare(base, other, config.VariantOriginal+" vs "+variant))
	}

	report.ShowMultiComparison(os.Stdout, base, []*junit.ResultSet{byVariant[config.VariantBodies], byVariant[config.VariantNames]})

	if saveTo != "" {
		return report.SaveResults(saveTo, sets)
	}
	return nil
}

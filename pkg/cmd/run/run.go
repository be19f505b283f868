// Package run executes the whole evaluation pipeline: obfuscate, generate,
// test and report over all variants.
package run

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/config"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/generate"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/obfuscate"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/report"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/test"
)

type Input struct {
	saveTo string
}

func NewCmdRun() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full evaluation pipeline over all variants.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.New()
			if err := pipeline(cfg, &data); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(
		&data.saveTo, "save-to", "s", "",
		"Save failure lists, workbook and duration chart to disk. Example: -s ./results",
	)
	return cmd
}

// pipeline runs the stages in order. Per-variant failures inside a stage
// are recovered there; only setup errors stop the pipeline. The report is
// produced from whatever results exist on disk.
func pipeline(cfg *config.Config, data *Input) error {
	if err := obfuscate.Run(cfg, []string{config.VariantBodies, config.VariantNames}); err != nil {
		return err
	}
	if err := generate.Run(cfg, config.Variants); err != nil {
		return err
	}
	if err := test.Run(cfg, config.Variants); err != nil {
		return err
	}
	return report.Run(cfg, data.saveTo)
}

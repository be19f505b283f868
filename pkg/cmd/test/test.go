// Package test runs the Gradle test task per variant and collects the JUnit
// report documents into per-variant results directories.
package test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/config"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/gradle"
)

// gradleResultsDir is where the Gradle test task drops JUnit XML documents.
const gradleResultsDir = "build/test-results/test"

type Input struct {
	variant string
}

func NewCmdTest() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the generated tests for each variant.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.New()
			variants := config.Variants
			if data.variant != "all" {
				variants = []string{data.variant}
			}
			if err := Run(cfg, variants); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&data.variant, "variant", "all", "variant to run tests for: original, bodies, names or all")
	return cmd
}

// Run executes the test task per variant, filtering to the variant's
// generated test class, and moves the reports into the variant's results
// directory. A failing test run still produces reports, so runner errors
// are logged and the collection continues.
func Run(cfg *config.Config, variants []string) error {
	runner := gradle.NewRunner(cfg.ProjectDir, cfg.GradleTimeout)

	for _, variant := range variants {
		className := config.TestClassName(variant)
		log.Infof("Running tests for variant %q (class %s)...", variant, className)

		if err := runner.Test(context.Background(), "--tests", className); err != nil {
			log.Warnf("gradle test run for variant %q exited with error (reports may still exist): %v", variant, err)
		}

		if err := collectReports(cfg, variant); err != nil {
			log.Errorf("unable to collect reports for variant %q: %v", variant, err)
		}
	}
	return nil
}

// collectReports moves the XML documents of the last test run into the
// variant's own results directory so later runs do not overwrite them.
func collectReports(cfg *config.Config, variant string) error {
	src := filepath.Join(cfg.ProjectDir, gradleResultsDir)
	dst := filepath.Join(cfg.ProjectDir, config.ResultsDir(variant))

	files, err := filepath.Glob(filepath.Join(src, "*.xml"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warnf("no report documents found in %s for variant %q", src, variant)
		return nil
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, "unable to create results directory %s", dst)
	}
	for _, file := range files {
		target := filepath.Join(dst, filepath.Base(file))
		if err := os.Rename(file, target); err != nil {
			return errors.Wrapf(err, "unable to move report %s to %s", file, target)
		}
	}
	log.Infof("Collected %d report document(s) into %s", len(files), dst)
	return nil
}

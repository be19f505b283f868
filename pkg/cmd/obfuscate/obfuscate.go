// Package obfuscate drives the Gradle obfuscation task over the requested
// modes and prints the original and obfuscated source for review.
package obfuscate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/config"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/gradle"
)

type Input struct {
	mode string
}

func NewCmdObfuscate() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "obfuscate",
		Short: "Produce the obfuscated source variants.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.New()
			modes := []string{config.VariantBodies, config.VariantNames}
			if data.mode != "all" {
				modes = []string{data.mode}
			}
			if err := Run(cfg, modes); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&data.mode, "mode", "all", "obfuscation mode: bodies, names or all")
	return cmd
}

// Run executes the obfuscation task for each mode. A failed mode is
// reported and skipped; the remaining modes still run.
func Run(cfg *config.Config, modes []string) error {
	runner := gradle.NewRunner(cfg.ProjectDir, cfg.GradleTimeout)

	displaySourceFile(filepath.Join(cfg.ProjectDir, cfg.SourceFile), "Original")

	for _, mode := range modes {
		log.Infof("Starting Gradle obfuscation task for mode %q, output: %q", mode, config.ObfuscatedDir(mode))
		if err := runner.Obfuscate(context.Background(), mode, config.ObfuscatedDir(mode)); err != nil {
			log.Errorf("obfuscation for mode %q failed, skipping printing of obfuscated file: %v", mode, err)
			continue
		}
		displaySourceFile(filepath.Join(cfg.ProjectDir, cfg.VariantSource(mode)), fmt.Sprintf("Obfuscated (mode: %s)", mode))
	}
	return nil
}

// displaySourceFile prints the content of one source file between markers,
// as the evaluation log expects.
func displaySourceFile(path, description string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("%s file not found at %s: %v", description, path, err)
		return
	}
	name := filepath.Base(path)
	fmt.Printf("\n--- %s %s ---\n%s\n--- End of %s %s ---\n", description, name, content, description, name)
}

// Package generate asks the generation endpoint for a unit test class per
// source variant, sanitizes the response and installs it into the project's
// test tree.
package generate

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/config"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/llm"
)

const testTree = "src/test/java"

type Input struct {
	variant string
}

func NewCmdGenerate() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate unit tests for each source variant.",
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

	cmd.Flags().StringVar(&data.variant, "variant", "all", "variant to generate tests for: original, bodies, names or all")
	return cmd
}

// Run generates and installs a test class per variant. A failed generation
// skips that variant and keeps going; only a client setup error is returned.
func Run(cfg *config.Config, variants []string) error {
	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.EndpointTimeout)
	if err != nil {
		return err
	}

	for _, variant := range variants {
		if err := generateVariant(ctx, cfg, client, variant); err != nil {
			log.Errorf("test generation for variant %q failed, skipping: %v", variant, err)
		}
	}
	return nil
}

func generateVariant(ctx context.Context, cfg *config.Config, client *llm.Client, variant string) error {
	sourcePath := filepath.Join(cfg.ProjectDir, cfg.VariantSource(variant))
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return errors.Wrapf(err, "unable to read variant source %s (run 'obfeval obfuscate' first?)", sourcePath)
	}

	className := config.TestClassName(variant)
	log.Infof("Generating tests for variant %q from %s...", variant, sourcePath)

	raw, err := client.GenerateTests(ctx, string(source), className)
	if err != nil {
		return err
	}

	code := llm.Sanitize(raw)

	// The model may have ignored the requested name; trust the declaration
	// found in the sanitized code, fall back to the requested name.
	fileName := className
	if detected, ok := llm.DetectClassName(code); ok {
		fileName = detected
	} else {
		log.Warnf("no class declaration found in generated code for variant %q, using fallback name %s", variant, className)
	}

	target := filepath.Join(cfg.ProjectDir, testTree, fileName+".java")
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, "unable to create test tree %s", filepath.Dir(target))
	}
	if err := os.WriteFile(target, []byte(code), 0644); err != nil {
		return errors.Wrapf(err, "unable to write generated test %s", target)
	}

	log.Infof("Saved generated test for variant %q to %s", variant, target)
	return nil
}

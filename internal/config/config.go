// Package config assembles the tool configuration from flags and the
// environment. The config value is built once by the root command and passed
// explicitly to every command, there is no process-wide mutable state.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// VariantOriginal is the untouched source tree.
	VariantOriginal = "original"
	// VariantBodies is name changes plus method body removal.
	VariantBodies = "bodies"
	// VariantNames is method and variable name changes.
	VariantNames = "names"
)

// Variants lists the evaluation variants in pipeline order.
var Variants = []string{VariantOriginal, VariantBodies, VariantNames}

// Config carries every knob of the evaluation pipeline.
type Config struct {
	// ProjectDir is the root of the Gradle project under evaluation.
	ProjectDir string

	// SourceFile is the project-relative path of the file sent to the model.
	SourceFile string

	// Model and APIKey select the generation endpoint.
	Model  string
	APIKey string

	// EndpointTimeout bounds one generation call.
	EndpointTimeout time.Duration

	// GradleTimeout bounds one Gradle invocation.
	GradleTimeout time.Duration

	LogLevel string
}

// New builds a Config from the bound viper state.
func New() *Config {
	return &Config{
		ProjectDir:      viper.GetString("project-dir"),
		SourceFile:      viper.GetString("source-file"),
		Model:           viper.GetString("model"),
		APIKey:          viper.GetString("api-key"),
		EndpointTimeout: viper.GetDuration("endpoint-timeout"),
		GradleTimeout:   viper.GetDuration("gradle-timeout"),
		LogLevel:        viper.GetString("log-level"),
	}
}

// ObfuscatedDir returns the project-relative output directory of one
// obfuscation variant.
func ObfuscatedDir(variant string) string {
	return "build/obfuscated-source-" + variant
}

// VariantSource returns the project-relative path of the source file of one
// variant. The obfuscation task mirrors the tree below src/main/java into
// its output directory.
func (c *Config) VariantSource(variant string) string {
	if variant == VariantOriginal {
		return c.SourceFile
	}
	rel := strings.TrimPrefix(c.SourceFile, "src/main/java/")
	return ObfuscatedDir(variant) + "/" + rel
}

// TestClassName returns the generated test class name of one variant, so
// the variants' tests can coexist in the same test tree.
func TestClassName(variant string) string {
	return "Generated" + capitalize(variant) + "Test"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ResultsDir returns the project-relative JUnit results directory of one
// variant's test run.
func ResultsDir(variant string) string {
	return "build/test-results/" + variant
}

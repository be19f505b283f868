package cmd

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	logwriter "github.com/sirupsen/logrus/hooks/writer"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/generate"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/obfuscate"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/report"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/run"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/cmd/test"
	"github.com/obfuscation-bench/obfuscation-eval-tool/pkg/version"
)

const logFile = "obfeval.log"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "obfeval",
	Short: "Obfuscation evaluation tool",
	Long:  `obfeval evaluates how source-code obfuscation degrades LLM-generated unit tests: it obfuscates a Java project, asks a generation endpoint for tests per variant, runs them through Gradle and compares the JUnit results`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error

		// Validate logging level
		loglevel := viper.GetString("log-level")
		logrusLevel, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)

		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})

		log.SetOutput(os.Stdout)
		fdLog, err := os.OpenFile(logFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			log.Errorf("error opening file %s: %v", logFile, err)
		} else {
			log.AddHook(&logwriter.Hook{
				Writer: fdLog,
				LogLevels: []log.Level{
					log.PanicLevel,
					log.FatalLevel,
					log.ErrorLevel,
					log.WarnLevel,
					log.InfoLevel,
					log.DebugLevel,
				},
			})
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initBindFlag(flag string) {
	err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	if err != nil {
		log.Warnf("Unable to bind flag %s\n", flag)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "logging level")
	rootCmd.PersistentFlags().String("project-dir", ".", "root of the Gradle project under evaluation")
	rootCmd.PersistentFlags().String("source-file", "src/main/java/source/Main.java", "project-relative source file sent to the model")
	rootCmd.PersistentFlags().String("model", "", "generation model name")
	rootCmd.PersistentFlags().String("api-key", "", "generation API key (env GEMINI_API_KEY)")
	rootCmd.PersistentFlags().Duration("endpoint-timeout", 5*time.Minute, "timeout for one generation call")
	rootCmd.PersistentFlags().Duration("gradle-timeout", 15*time.Minute, "timeout for one Gradle invocation")
	initBindFlag("log-level")
	initBindFlag("project-dir")
	initBindFlag("source-file")
	initBindFlag("model")
	initBindFlag("api-key")
	initBindFlag("endpoint-timeout")
	initBindFlag("gradle-timeout")

	// Link in child commands
	rootCmd.AddCommand(obfuscate.NewCmdObfuscate())
	rootCmd.AddCommand(generate.NewCmdGenerate())
	rootCmd.AddCommand(test.NewCmdTest())
	rootCmd.AddCommand(report.NewCmdReport())
	rootCmd.AddCommand(run.NewCmdRun())
	rootCmd.AddCommand(version.NewCmdVersion())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.AutomaticEnv() // read in environment variables that match
	if viper.GetString("api-key") == "" {
		viper.Set("api-key", os.Getenv("GEMINI_API_KEY"))
	}
}

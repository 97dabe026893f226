// Package commands implements the CLI commands for cleantext.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cleantext/internal/logger"
	"github.com/jmylchreest/cleantext/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cleantext",
	Short: "Normalize noisy text for NLP pipelines",
	Long: `cleantext repairs broken unicode, transliterates to ASCII and replaces
URLs, emails, phone numbers, numbers, punctuation and other noise with
placeholder tokens.

Examples:
  # Clean a file with the default passes
  cleantext clean notes.txt

  # Clean stdin line by line on every CPU, dropping URLs and emails
  cat comments.txt | cleantext clean --lines -j -1 --no-urls --no-emails

  # Keep German umlauts and paragraph breaks
  cleantext clean --lang de --keep-two-line-breaks --lower=false brief.txt

  # Protect a pattern from every pass
  cleantext clean --no-punct --exception 'drive-thru' reviews.txt`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.cleantext.yaml or ./.cleantext.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".cleantext")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. CLEANTEXT_NO_URLS=true
	viper.SetEnvPrefix("CLEANTEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing default config file is fine; a broken or explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if viper.GetString("config") != "" || !errors.As(err, &notFound) {
			logError("reading config: %v", err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

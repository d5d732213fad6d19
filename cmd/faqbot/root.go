package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFlag  string
	faqsFlag string
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "faqbot",
	Short: "FAQ-matching chatbot for a shirt boutique",
	Long: `faqbot loads a fixed set of FAQ records, fits a TF-IDF model over them
and answers questions with the best-matching canned answer. Pricing and
collection questions are routed to dedicated handlers first.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// .env is optional; real environment variables win.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "config environment (default: $ENV or local)")
	rootCmd.PersistentFlags().StringVar(&faqsFlag, "faqs", "", "FAQ file path, overrides corpus.path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugMode  bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "booth",
	Short: "A smile-triggered photo booth",
	Long: `Booth watches a camera feed for a face, counts down, takes three photos
and loops them back as a short preview before waiting for the next visitor.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "booth.yaml", "YAML config file (missing file uses defaults)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Debug logging and runtime stats")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format: json or text")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

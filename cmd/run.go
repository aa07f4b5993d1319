package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/smile-booth-go/app"
	"github.com/soocke/smile-booth-go/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the booth window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.Debug = cfg.Debug || debugMode
		logger := NewLogger(logLevel(cfg.Debug), logFormat)
		logger.Info("booth starting", "config", configPath, "camera", cfg.Camera.Source, "detector", cfg.Detector.Kind)

		a, err := app.NewApp("Smile Booth", cfg, configPath, logger)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		a.Start()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

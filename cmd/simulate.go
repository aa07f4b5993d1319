package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/domain/booth"
	"github.com/soocke/smile-booth-go/pipeline"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run sessions headless with a synthetic camera and scripted detector",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.Camera.Source = config.SourceSynthetic
		cfg.Detector.Kind = config.DetectorScript
		if faces := mustGetIntSlice(cmd, "faces"); len(faces) > 0 {
			cfg.Detector.Script = faces
		}
		cfg = cfg.Scale(mustGetFloat64(cmd, "time-scale"))
		logger := NewLogger(logLevel(debugMode || cfg.Debug), logFormat)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		timeout := time.Duration(mustGetInt(cmd, "timeout")) * time.Second
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		n, err := simulate(ctx, cfg, mustGetInt(cmd, "sessions"), logger)
		fmt.Fprintf(cmd.OutOrStdout(), "completed %d session(s)\n", n)
		return err
	},
}

func init() {
	simulateCmd.Flags().IntSlice("faces", []int{0, 0, 1}, "Face counts reported per processed frame; the last value repeats")
	simulateCmd.Flags().Int("sessions", 1, "Stop after this many completed sessions")
	simulateCmd.Flags().Float64("time-scale", 0.1, "Multiplier applied to the configured time unit")
	simulateCmd.Flags().Int("timeout", 60, "Give up after this many seconds (0 disables)")
	rootCmd.AddCommand(simulateCmd)
}

// simulate runs the pipeline until sessions photo sessions completed.
func simulate(ctx context.Context, cfg *config.Config, sessions int, logger *slog.Logger) (int, error) {
	completed := make(chan struct{}, 16)
	p, err := pipeline.New(cfg, logger, pipeline.Hooks{
		Callbacks: booth.Callbacks{
			OnError: func(err error) { logger.Warn("session error", "error", err) },
		},
		OnPhase: func(prev, next booth.Phase) {
			if prev == booth.PhaseCoolingDown && next == booth.PhaseIdle {
				select {
				case completed <- struct{}{}:
				default:
				}
			}
		},
	})
	if err != nil {
		return 0, err
	}
	defer p.Close()

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.Start()
	go p.Pump(pumpCtx, time.Second/time.Duration(cfg.Camera.FPS))

	n := 0
	for n < sessions {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return n, fmt.Errorf("simulate: timed out after %d of %d sessions", n, sessions)
			}
			return n, nil
		case <-completed:
			n++
			logger.Info("session completed", "count", n)
		}
	}
	return n, nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Matze99/solar-sim/app"
	"github.com/Matze99/solar-sim/config"
	"github.com/Matze99/solar-sim/core/sizing"
	"github.com/Matze99/solar-sim/infra/logger"
	"github.com/Matze99/solar-sim/pkg/export"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Solve the model over the configured PV capacity grid",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	go func() {
		if err := svc.StartProm(ctx); err != nil {
			logger.New("sweep-command").Errorf("prom server: %v", err)
		}
	}()

	points, err := svc.Sweep()
	if err != nil {
		return err
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()
	return export.WriteSweepCSV(w, sizing.CurveOf(points))
}

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
	"github.com/Matze99/solar-sim/infra/logger"
	"github.com/Matze99/solar-sim/pkg/export"
)

var sizeHourly bool

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Solve the sizing model once and print the result",
	RunE:  runSize,
}

func init() {
	sizeCmd.Flags().BoolVar(&sizeHourly, "hourly", false, "emit the hourly series as CSV instead of the JSON summary")
	rootCmd.AddCommand(sizeCmd)
}

func runSize(cmd *cobra.Command, args []string) error {
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
			logger.New("size-command").Errorf("prom server: %v", err)
		}
	}()

	res, err := svc.Size()
	if err != nil {
		return err
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()
	if sizeHourly {
		return export.WriteHourlyCSV(w, res)
	}
	return export.WriteSummaryJSON(w, res)
}

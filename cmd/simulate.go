package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Matze99/solar-sim/app"
	"github.com/Matze99/solar-sim/config"
	"github.com/Matze99/solar-sim/pkg/export"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Size the system, then replay it over multiple years with degradation",
	RunE:  runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}

	sized, sim, err := svc.Simulate()
	if err != nil {
		return err
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()
	return export.WriteJSON(w, map[string]any{
		"capacities": sized.Capacities,
		"simulation": sim,
	})
}

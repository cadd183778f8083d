package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Matze99/solar-sim/app"
	"github.com/Matze99/solar-sim/config"
	"github.com/Matze99/solar-sim/pkg/export"
)

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Size the system and assess the investment's rate of return",
	RunE:  runROI,
}

func init() {
	rootCmd.AddCommand(roiCmd)
}

func runROI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}

	sized, assessment, roi, err := svc.ROI()
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
		"investment": assessment.Investment(sized),
		"roi":        roi,
	})
}

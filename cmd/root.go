// Package cmd implements the solar-sim command line interface.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	outPath string
)

var rootCmd = &cobra.Command{
	Use:   "solar-sim",
	Short: "Energy system sizing, simulation and ROI analysis",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// output opens the --out target, falling back to stdout. The returned
// closer is a no-op for stdout.
func output() (io.Writer, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

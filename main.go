package main

import (
	"os"

	"github.com/Matze99/solar-sim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/portree-dev/portree/internal/ui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/portree-dev/portree/internal/config"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the configuration to TOML",
	Long: `Export the repository configuration to TOML.

Writes to stdout unless a file is given.

Examples:
  pt config export
  pt config export portree.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	repoRoot, err := repository.FindRoot(cwd)
	if err != nil {
		return err
	}
	cfg, diags, err := repository.LoadConfig(repoRoot)
	if err != nil {
		return err
	}
	for _, d := range diags {
		ui.Warning("config: %s", d)
	}

	if len(args) == 1 {
		if err := config.ExportTOMLFile(args[0], cfg); err != nil {
			return err
		}
		ui.Success("exported configuration to %s", args[0])
		return nil
	}

	out, err := config.ExportTOML(cfg)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

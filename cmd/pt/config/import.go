package config

import (
	"fmt"
	"os"

	"github.com/portree-dev/portree/internal/config"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a TOML configuration",
	Long: `Import a TOML configuration export and write it as the repository's
runtime configuration file.

Examples:
  pt config import portree.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	repoRoot, err := repository.FindRoot(cwd)
	if err != nil {
		return err
	}

	cfg, err := config.ImportTOMLFile(args[0])
	if err != nil {
		return err
	}

	configPath := repository.ConfigPath(repoRoot)
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}
	ui.Success("imported configuration to %s", configPath)
	return nil
}

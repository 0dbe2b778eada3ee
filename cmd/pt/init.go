package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/portree-dev/portree/internal/config"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/scan"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create the portree configuration",
	Long: `Create ` + config.FileName + ` for the current repository.

The repository is scanned for env-style files and the port variables they
declare, and the results pre-seed the wizard's answers.

Examples:
  pt init`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	repoRoot, err := repository.FindRoot(cwd)
	if err != nil {
		return err
	}

	configPath := repository.ConfigPath(repoRoot)
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := ui.Confirm(config.FileName+" already exists. Overwrite?", false)
		if err != nil {
			return err
		}
		if !overwrite {
			ui.Info("keeping existing configuration")
			return nil
		}
	}

	envFiles, err := scan.ScanEnvFiles(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to scan repository: %w", err)
	}
	if len(envFiles) > 0 {
		ui.Info("found %d env file(s)", len(envFiles))
	}

	cfg := config.Default()

	cfg.PortOffsetIncrement, err = ui.InputInt(
		"Port offset increment per worktree:",
		"Each worktree's ports are shifted by index * increment", cfg.PortOffsetIncrement)
	if err != nil {
		return err
	}

	cfg.StartContainers, err = ui.Confirm("Start containers when creating a worktree?", true)
	if err != nil {
		return err
	}

	if err := askEnvFiles(cfg, envFiles); err != nil {
		return err
	}
	if err := askPorts(cfg, envFiles); err != nil {
		return err
	}
	if err := askContainerNames(cfg); err != nil {
		return err
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}
	ui.Success("wrote %s", configPath)
	fmt.Printf("\nNext steps:\n  pt add -b <branch>\n")
	return nil
}

func askEnvFiles(cfg *config.Config, found []scan.EnvFile) error {
	var options []string
	for _, f := range found {
		options = append(options, f.Path)
	}
	if len(options) == 0 {
		path, err := ui.Input("Primary environment file:", "Relative path, created per worktree", config.DefaultEnvFile)
		if err != nil {
			return err
		}
		cfg.EnvFiles = []string{path}
		return nil
	}
	selected, err := ui.MultiSelect("Env files to seed into new worktrees:", options, options)
	if err != nil {
		return err
	}
	cfg.EnvFiles = selected
	return nil
}

func askPorts(cfg *config.Config, found []scan.EnvFile) error {
	// Aggregate scanned port variables; the first sighting of a name wins.
	seen := map[string]int{}
	for _, f := range found {
		for _, p := range f.Ports {
			if _, ok := seen[p.Name]; !ok {
				seen[p.Name] = p.Port
			}
		}
	}

	if len(seen) > 0 {
		var options []string
		for name, port := range seen {
			options = append(options, name+":"+strconv.Itoa(port))
		}
		sort.Strings(options)
		selected, err := ui.MultiSelect("Port variables to offset per worktree:", options, options)
		if err != nil {
			return err
		}
		for _, item := range selected {
			name, value, _ := strings.Cut(item, ":")
			base, _ := strconv.Atoi(value)
			cfg.SetPort(config.PortMapping{Name: name, Base: base, Valid: true})
		}
		return nil
	}

	// Nothing scanned; ask for entries one by one.
	for {
		name, err := ui.Input("Port variable (empty to finish):", "e.g. API_PORT", "")
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		base, err := ui.InputInt("Base port for "+name+":", "", 3000)
		if err != nil {
			return err
		}
		cfg.SetPort(config.PortMapping{Name: name, Base: base, Valid: true})
	}
}

func askContainerNames(cfg *config.Config) error {
	for {
		name, err := ui.Input("Container name variable (empty to finish):", "e.g. DB_CONTAINER", "")
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		tmpl, err := ui.Input("Template for "+name+":",
			"May embed {{WORKTREE_NAME}} and {{WORKTREE_INDEX}}",
			"myapp-{{WORKTREE_NAME}}")
		if err != nil {
			return err
		}
		cfg.SetContainerName(config.ContainerName{Name: name, Template: tmpl})
	}
}

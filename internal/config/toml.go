package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TOML is the interchange shape used by 'pt config export/import'.
// Runtime configuration stays in the line-oriented format; TOML is only
// the snapshot format for moving configuration between repositories.
type tomlConfig struct {
	StartContainers     bool             `toml:"start_containers"`
	PortOffsetIncrement int              `toml:"port_offset_increment"`
	EnvFiles            []string         `toml:"env_files"`
	Ports               []tomlPort       `toml:"ports"`
	Containers          []tomlContainer  `toml:"containers"`
	Updates             []tomlFileUpdate `toml:"updates"`
}

type tomlPort struct {
	Name string `toml:"name"`
	Base int    `toml:"base"`
}

type tomlContainer struct {
	Name     string `toml:"name"`
	Template string `toml:"template"`
}

type tomlFileUpdate struct {
	Path        string `toml:"path"`
	Type        string `toml:"type"`
	Spec        string `toml:"spec,omitempty"`
	Pattern     string `toml:"pattern,omitempty"`
	Replacement string `toml:"replacement,omitempty"`
}

// ExportTOML exports the configuration to TOML format. Port mappings with
// invalid base ports are skipped: they carry no usable value to export.
func ExportTOML(cfg *Config) (string, error) {
	out := tomlConfig{
		StartContainers:     cfg.StartContainers,
		PortOffsetIncrement: cfg.PortOffsetIncrement,
		EnvFiles:            cfg.EnvFiles,
	}
	for _, p := range cfg.PortMappings {
		if !p.Valid {
			continue
		}
		out.Ports = append(out.Ports, tomlPort{Name: p.Name, Base: p.Base})
	}
	for _, c := range cfg.ContainerNames {
		out.Containers = append(out.Containers, tomlContainer{Name: c.Name, Template: c.Template})
	}
	for _, u := range cfg.FileUpdates {
		t := tomlFileUpdate{Path: u.Path}
		switch a := u.Action.(type) {
		case EnvVars:
			t.Type = "env_vars"
			t.Spec = u.Spec
		case Replace:
			t.Type = "replace"
			t.Pattern = a.Pattern
			t.Replacement = a.Replacement
		case Append:
			t.Type = "append"
			t.Spec = a.Payload
		}
		out.Updates = append(out.Updates, t)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// ImportTOML imports configuration from TOML format, applying defaults
// for unset scalars.
func ImportTOML(data string) (*Config, error) {
	var in tomlConfig
	meta, err := toml.Decode(data, &in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg := Default()
	if meta.IsDefined("start_containers") {
		cfg.StartContainers = in.StartContainers
	}
	if in.PortOffsetIncrement > 0 {
		cfg.PortOffsetIncrement = in.PortOffsetIncrement
	}
	cfg.EnvFiles = in.EnvFiles
	for _, p := range in.Ports {
		cfg.SetPort(PortMapping{Name: p.Name, Base: p.Base, Valid: true})
	}
	for _, c := range in.Containers {
		cfg.SetContainerName(ContainerName{Name: c.Name, Template: c.Template})
	}
	for _, u := range in.Updates {
		switch u.Type {
		case "env_vars":
			upd, err := parseFileUpdate(u.Path + "|env_vars|" + u.Spec)
			if err != nil {
				return nil, err
			}
			cfg.FileUpdates = append(cfg.FileUpdates, upd)
		case "replace":
			if u.Pattern == "" || u.Replacement == "" {
				return nil, fmt.Errorf("replace update for %s needs pattern and replacement", u.Path)
			}
			cfg.FileUpdates = append(cfg.FileUpdates, FileUpdate{
				Path:   u.Path,
				Spec:   u.Replacement,
				Action: Replace{Pattern: u.Pattern, Replacement: u.Replacement},
			})
		case "append":
			cfg.FileUpdates = append(cfg.FileUpdates, FileUpdate{
				Path:   u.Path,
				Spec:   u.Spec,
				Action: Append{Payload: u.Spec},
			})
		default:
			return nil, fmt.Errorf("unknown update type %q for %s", u.Type, u.Path)
		}
	}

	return cfg, nil
}

// ExportTOMLFile writes the TOML export to a file.
func ExportTOMLFile(path string, cfg *Config) error {
	data, err := ExportTOML(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ImportTOMLFile reads a TOML export from a file.
func ImportTOMLFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ImportTOML(string(data))
}

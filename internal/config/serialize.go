package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Serialize renders the configuration back into the line-oriented file
// format. Parse(Serialize(c)) yields a configuration equal to c.
func Serialize(cfg *Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "START_CONTAINERS=%t\n", cfg.StartContainers)
	fmt.Fprintf(&b, "PORT_OFFSET_INCREMENT=%d\n", cfg.PortOffsetIncrement)

	writeBlock(&b, "PORT_MAPPINGS", cfg.PortMappings, func(p PortMapping) string {
		if p.Valid {
			return p.Name + ":" + strconv.Itoa(p.Base)
		}
		// Invalid entries round-trip with their original token.
		return p.Name + ":" + p.Raw
	})
	writeBlock(&b, "CONTAINER_NAMES", cfg.ContainerNames, func(c ContainerName) string {
		return c.Name + ":" + c.Template
	})
	writeBlock(&b, "ENV_FILES", cfg.EnvFiles, func(f string) string {
		return f
	})
	writeBlock(&b, "FILE_UPDATES", cfg.FileUpdates, formatFileUpdate)

	return b.String()
}

// Save writes the serialized configuration to path.
func Save(path string, cfg *Config) error {
	if err := os.WriteFile(path, []byte(Serialize(cfg)), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func writeBlock[T any](b *strings.Builder, key string, items []T, format func(T) string) {
	fmt.Fprintf(b, "%s=(\n", key)
	for _, item := range items {
		fmt.Fprintf(b, "    %q\n", format(item))
	}
	b.WriteString(")\n")
}

func formatFileUpdate(u FileUpdate) string {
	switch a := u.Action.(type) {
	case EnvVars:
		return u.Path + "|env_vars|" + strings.Join(a.Vars, ",")
	case Replace:
		return u.Path + "|replace|" + a.Pattern + "|" + a.Replacement
	case Append:
		return u.Path + "|append|" + a.Payload
	}
	return u.Path
}

package scan

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvFile is a discovered environment file and the port-like variables it
// declares. Used only to pre-seed the 'pt init' wizard.
type EnvFile struct {
	// Path is relative to the scanned root
	Path string
	// Ports are KEY=value entries whose key mentions PORT and whose value
	// is a plausible TCP port
	Ports []PortVar
}

type PortVar struct {
	Name string
	Port int
}

// skipDirs are directories never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// ScanEnvFiles walks the repository looking for env-style files
// (.env, .env.*, *.env) and collects their port-like variables.
func ScanEnvFiles(root string) ([]EnvFile, error) {
	var found []EnvFile

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries we can't access
		}

		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isEnvFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		found = append(found, EnvFile{Path: rel, Ports: parsePortVars(path)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func isEnvFile(name string) bool {
	return name == ".env" ||
		strings.HasPrefix(name, ".env.") ||
		strings.HasSuffix(name, ".env")
}

func parsePortVars(path string) []PortVar {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var vars []PortVar
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || !strings.Contains(strings.ToUpper(key), "PORT") {
			continue
		}
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || port < 1 || port > 65535 {
			continue
		}
		vars = append(vars, PortVar{Name: strings.TrimSpace(key), Port: port})
	}
	return vars
}

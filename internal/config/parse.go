package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Parse parses the line-oriented configuration format on top of the
// built-in defaults. It is total: malformed input never fails the parse.
// Every skipped or defaulted entry is reported as a diagnostic so callers
// can surface what was ignored.
func Parse(data string) (*Config, []string) {
	cfg := Default()
	var diags []string

	var blockKey string // non-empty while inside a KEY=( ... ) block
	for n, raw := range strings.Split(data, "\n") {
		line := strings.TrimSpace(raw)
		lineNo := n + 1

		// Comments and blank lines are ignored everywhere, including
		// inside list blocks.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if blockKey != "" {
			if line == ")" {
				blockKey = ""
				continue
			}
			parseBlockItem(cfg, blockKey, stripQuotes(line), lineNo, &diags)
			continue
		}

		if key, ok := strings.CutSuffix(line, "=("); ok {
			blockKey = strings.TrimSpace(key)
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			diags = append(diags, fmt.Sprintf("line %d: not a KEY=value assignment: %q", lineNo, line))
			continue
		}
		parseScalar(cfg, strings.TrimSpace(key), strings.TrimSpace(value), lineNo, &diags)
	}

	if blockKey != "" {
		diags = append(diags, fmt.Sprintf("unterminated %s block", blockKey))
	}

	return cfg, diags
}

// Load reads the configuration file at path. A missing file is not an
// error: the defaults are returned unchanged.
func Load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, diags := Parse(string(data))
	return cfg, diags, nil
}

func parseScalar(cfg *Config, key, value string, lineNo int, diags *[]string) {
	switch key {
	case "START_CONTAINERS":
		b, ok := parseBool(value)
		if !ok {
			*diags = append(*diags, fmt.Sprintf("line %d: START_CONTAINERS: unrecognized value %q, keeping %v", lineNo, value, cfg.StartContainers))
			return
		}
		cfg.StartContainers = b
	case "PORT_OFFSET_INCREMENT":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			*diags = append(*diags, fmt.Sprintf("line %d: PORT_OFFSET_INCREMENT: not a positive integer: %q, keeping %d", lineNo, value, cfg.PortOffsetIncrement))
			return
		}
		cfg.PortOffsetIncrement = n
	default:
		*diags = append(*diags, fmt.Sprintf("line %d: unknown key %q", lineNo, key))
	}
}

func parseBlockItem(cfg *Config, key, item string, lineNo int, diags *[]string) {
	switch key {
	case "PORT_MAPPINGS":
		name, value, ok := strings.Cut(item, ":")
		if !ok || name == "" {
			*diags = append(*diags, fmt.Sprintf("line %d: PORT_MAPPINGS: expected VAR:port, got %q", lineNo, item))
			return
		}
		base, err := strconv.Atoi(value)
		if err != nil {
			// The entry is kept with an invalid marker rather than dropped
			// or coerced to 0; consumers report it downstream.
			*diags = append(*diags, fmt.Sprintf("line %d: PORT_MAPPINGS: %s: %q is not a number", lineNo, name, value))
			cfg.SetPort(PortMapping{Name: name, Raw: value})
			return
		}
		cfg.SetPort(PortMapping{Name: name, Base: base, Valid: true, Raw: value})
	case "CONTAINER_NAMES":
		// Split on the first ':' only; the template may itself contain ':'.
		name, tmpl, ok := strings.Cut(item, ":")
		if !ok || name == "" {
			*diags = append(*diags, fmt.Sprintf("line %d: CONTAINER_NAMES: expected VAR:template, got %q", lineNo, item))
			return
		}
		cfg.SetContainerName(ContainerName{Name: name, Template: tmpl})
	case "ENV_FILES":
		cfg.EnvFiles = append(cfg.EnvFiles, item)
	case "FILE_UPDATES":
		upd, err := parseFileUpdate(item)
		if err != nil {
			*diags = append(*diags, fmt.Sprintf("line %d: FILE_UPDATES: %v", lineNo, err))
			return
		}
		cfg.FileUpdates = append(cfg.FileUpdates, upd)
	default:
		*diags = append(*diags, fmt.Sprintf("line %d: unknown block %q", lineNo, key))
	}
}

// parseFileUpdate parses one pipe-delimited FILE_UPDATES entry:
//
//	path|env_vars|VAR1,VAR2
//	path|replace|searchPattern|replacementTemplate
//	path|append|payloadTemplate
func parseFileUpdate(item string) (FileUpdate, error) {
	fields := strings.Split(item, "|")
	if len(fields) < 3 || fields[0] == "" {
		return FileUpdate{}, fmt.Errorf("expected path|type|spec, got %q", item)
	}
	path, updateType := fields[0], fields[1]

	switch updateType {
	case "env_vars":
		spec := strings.Join(fields[2:], "|")
		var vars []string
		for _, v := range strings.Split(spec, ",") {
			if v = strings.TrimSpace(v); v != "" {
				vars = append(vars, v)
			}
		}
		return FileUpdate{Path: path, Spec: spec, Action: EnvVars{Vars: vars}}, nil
	case "replace":
		// A replace rule without both a pattern and a replacement must never
		// be applied partially.
		if len(fields) < 4 || fields[2] == "" || fields[3] == "" {
			return FileUpdate{}, fmt.Errorf("replace rule needs path|replace|pattern|replacement, got %q", item)
		}
		replacement := strings.Join(fields[3:], "|")
		return FileUpdate{
			Path:   path,
			Spec:   replacement,
			Action: Replace{Pattern: fields[2], Replacement: replacement},
		}, nil
	case "append":
		payload := strings.Join(fields[2:], "|")
		return FileUpdate{Path: path, Spec: payload, Action: Append{Payload: payload}}, nil
	default:
		return FileUpdate{}, fmt.Errorf("unknown update type %q", updateType)
	}
}

func parseBool(value string) (b, ok bool) {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

// stripQuotes removes one level of surrounding single or double quotes.
// Double-quoted items are unescaped when they parse as a Go string
// literal, which is how the serializer writes them; hand-written items
// with escapes the literal syntax rejects keep their bytes as-is.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
		return s[1 : len(s)-1]
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

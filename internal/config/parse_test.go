package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.StartContainers {
		t.Error("expected start containers enabled by default")
	}
	if cfg.PortOffsetIncrement != 10 {
		t.Errorf("expected increment 10, got %d", cfg.PortOffsetIncrement)
	}
	if len(cfg.PortMappings) != 0 || len(cfg.ContainerNames) != 0 || len(cfg.FileUpdates) != 0 {
		t.Error("expected empty mappings and rules by default")
	}
	if cfg.PrimaryEnvFile() != ".env" {
		t.Errorf("expected default primary env file '.env', got %q", cfg.PrimaryEnvFile())
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		startContainers bool
		increment       int
		wantDiags       int
	}{
		{"defaults on empty", "", true, 10, 0},
		{"explicit values", "START_CONTAINERS=false\nPORT_OFFSET_INCREMENT=100\n", false, 100, 0},
		{"bool yes", "START_CONTAINERS=yes\n", true, 10, 0},
		{"bool NO", "START_CONTAINERS=NO\n", false, 10, 0},
		{"bool 1", "START_CONTAINERS=1\n", true, 10, 0},
		{"bool 0", "START_CONTAINERS=0\n", false, 10, 0},
		{"bad bool keeps default", "START_CONTAINERS=maybe\n", true, 10, 1},
		{"bad int keeps default", "PORT_OFFSET_INCREMENT=ten\n", true, 10, 1},
		{"negative increment keeps default", "PORT_OFFSET_INCREMENT=-5\n", true, 10, 1},
		{"unknown key", "FROBNICATE=1\n", true, 10, 1},
		{"comments and blanks ignored", "# a comment\n\nSTART_CONTAINERS=no\n", false, 10, 0},
		{"not an assignment", "garbage line\n", true, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, diags := Parse(tt.input)
			if cfg.StartContainers != tt.startContainers {
				t.Errorf("StartContainers = %v, want %v", cfg.StartContainers, tt.startContainers)
			}
			if cfg.PortOffsetIncrement != tt.increment {
				t.Errorf("PortOffsetIncrement = %d, want %d", cfg.PortOffsetIncrement, tt.increment)
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("got %d diagnostics %v, want %d", len(diags), diags, tt.wantDiags)
			}
		})
	}
}

func TestParsePortMappings(t *testing.T) {
	cfg, diags := Parse(`PORT_MAPPINGS=(
    "API_PORT:3000"
    # comment inside a block
    'CLIENT_PORT:3001'

    DB_PORT:5432
)
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []PortMapping{
		{Name: "API_PORT", Base: 3000, Valid: true, Raw: "3000"},
		{Name: "CLIENT_PORT", Base: 3001, Valid: true, Raw: "3001"},
		{Name: "DB_PORT", Base: 5432, Valid: true, Raw: "5432"},
	}
	if len(cfg.PortMappings) != len(want) {
		t.Fatalf("got %d mappings, want %d", len(cfg.PortMappings), len(want))
	}
	for i, w := range want {
		if cfg.PortMappings[i] != w {
			t.Errorf("mapping %d = %+v, want %+v", i, cfg.PortMappings[i], w)
		}
	}
}

func TestParsePortMappingNotANumber(t *testing.T) {
	// A non-numeric base port is kept as a stored-but-invalid entry, not
	// dropped and not coerced to 0.
	cfg, diags := Parse(`PORT_MAPPINGS=(
    "CLIENT_PORT:not_a_number"
)
`)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", diags)
	}
	p, ok := cfg.Port("CLIENT_PORT")
	if !ok {
		t.Fatal("expected CLIENT_PORT entry to be present")
	}
	if p.Valid {
		t.Error("expected entry to be marked invalid")
	}
	if p.Base != 0 || p.Raw != "not_a_number" {
		t.Errorf("got %+v, want raw token preserved", p)
	}
}

func TestParseDuplicatePortMappingLastWriteWins(t *testing.T) {
	cfg, _ := Parse(`PORT_MAPPINGS=(
    "API_PORT:3000"
    "API_PORT:4000"
)
`)
	if len(cfg.PortMappings) != 1 {
		t.Fatalf("got %d mappings, want 1", len(cfg.PortMappings))
	}
	if p, _ := cfg.Port("API_PORT"); p.Base != 4000 {
		t.Errorf("got base %d, want 4000 (last write wins)", p.Base)
	}
}

func TestParseContainerNames(t *testing.T) {
	cfg, diags := Parse(`CONTAINER_NAMES=(
    "DB_CONTAINER:myapp-{{WORKTREE_NAME}}-db"
    "WEB_CONTAINER:registry.local:5000/web-{{WORKTREE_INDEX}}"
)
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(cfg.ContainerNames) != 2 {
		t.Fatalf("got %d container names, want 2", len(cfg.ContainerNames))
	}
	// Split happens on the first ':' only; templates may contain ':'.
	if cfg.ContainerNames[1].Template != "registry.local:5000/web-{{WORKTREE_INDEX}}" {
		t.Errorf("template = %q, colon split must happen once", cfg.ContainerNames[1].Template)
	}
}

func TestParseEnvFiles(t *testing.T) {
	cfg, _ := Parse(`ENV_FILES=(
    ".env"
    "services/api/.env"
)
`)
	if len(cfg.EnvFiles) != 2 {
		t.Fatalf("got %d env files, want 2", len(cfg.EnvFiles))
	}
	if cfg.PrimaryEnvFile() != ".env" {
		t.Errorf("primary env file = %q, want .env", cfg.PrimaryEnvFile())
	}
}

func TestParseFileUpdates(t *testing.T) {
	cfg, diags := Parse(`FILE_UPDATES=(
    ".env|env_vars|API_PORT,CLIENT_PORT"
    "docker-compose.yml|replace|myapp-db|myapp-{{WORKTREE_NAME}}-db"
    "README.md|append|Worktree: {{WORKTREE_NAME}}"
)
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(cfg.FileUpdates) != 3 {
		t.Fatalf("got %d file updates, want 3", len(cfg.FileUpdates))
	}

	ev, ok := cfg.FileUpdates[0].Action.(EnvVars)
	if !ok {
		t.Fatalf("rule 0: expected EnvVars, got %T", cfg.FileUpdates[0].Action)
	}
	if len(ev.Vars) != 2 || ev.Vars[0] != "API_PORT" || ev.Vars[1] != "CLIENT_PORT" {
		t.Errorf("rule 0 vars = %v", ev.Vars)
	}

	rp, ok := cfg.FileUpdates[1].Action.(Replace)
	if !ok {
		t.Fatalf("rule 1: expected Replace, got %T", cfg.FileUpdates[1].Action)
	}
	if rp.Pattern != "myapp-db" || rp.Replacement != "myapp-{{WORKTREE_NAME}}-db" {
		t.Errorf("rule 1 = %+v", rp)
	}
	// The Spec field mirrors the replacement for replace rules.
	if cfg.FileUpdates[1].Spec != rp.Replacement {
		t.Errorf("rule 1 Spec = %q, want %q", cfg.FileUpdates[1].Spec, rp.Replacement)
	}

	ap, ok := cfg.FileUpdates[2].Action.(Append)
	if !ok {
		t.Fatalf("rule 2: expected Append, got %T", cfg.FileUpdates[2].Action)
	}
	if ap.Payload != "Worktree: {{WORKTREE_NAME}}" {
		t.Errorf("rule 2 payload = %q", ap.Payload)
	}
}

func TestParseMalformedFileUpdates(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"replace missing replacement", `"a.txt|replace|pattern"`},
		{"replace empty pattern", `"a.txt|replace||repl"`},
		{"replace empty replacement", `"a.txt|replace|pattern|"`},
		{"unknown type", `"a.txt|delete|x"`},
		{"too few fields", `"a.txt|env_vars"`},
		{"empty path", `"|env_vars|API_PORT"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, diags := Parse("FILE_UPDATES=(\n    " + tt.input + "\n)\n")
			if len(cfg.FileUpdates) != 0 {
				t.Errorf("malformed rule must be skipped, got %+v", cfg.FileUpdates)
			}
			if len(diags) != 1 {
				t.Errorf("expected 1 diagnostic, got %v", diags)
			}
		})
	}
}

func TestParseReplacementMayContainPipes(t *testing.T) {
	cfg, diags := Parse(`FILE_UPDATES=(
    "Makefile|replace|run: .*|run: a || b"
)
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	rp := cfg.FileUpdates[0].Action.(Replace)
	if rp.Replacement != "run: a || b" {
		t.Errorf("replacement = %q, trailing fields must rejoin", rp.Replacement)
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	cfg, diags := Parse("PORT_MAPPINGS=(\n    \"API_PORT:3000\"\n")
	if _, ok := cfg.Port("API_PORT"); !ok {
		t.Error("items before the missing ')' must still parse")
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "unterminated") {
		t.Errorf("expected unterminated-block diagnostic, got %v", diags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, diags, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}
	if diags != nil {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if cfg.PortOffsetIncrement != 10 {
		t.Errorf("expected defaults, got increment %d", cfg.PortOffsetIncrement)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("PORT_OFFSET_INCREMENT=50\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, diags, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if cfg.PortOffsetIncrement != 50 {
		t.Errorf("increment = %d, want 50", cfg.PortOffsetIncrement)
	}
}

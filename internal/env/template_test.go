package env

import (
	"testing"

	"github.com/portree-dev/portree/internal/config"
)

func testPorts() []config.PortMapping {
	return []config.PortMapping{
		{Name: "API_PORT", Base: 3000, Valid: true},
		{Name: "CLIENT_PORT", Base: 3001, Valid: true},
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		index, increment, want int
	}{
		{0, 10, 0},
		{0, 1000, 0},
		{1, 10, 10},
		{2, 10, 20},
		{3, 25, 75},
		{7, 1, 7},
	}
	for _, tt := range tests {
		if got := Offset(tt.index, tt.increment); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.index, tt.increment, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	ctx := Context{Name: "feature1", Index: 1, Offset: 10}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"name placeholder", "myapp-{{WORKTREE_NAME}}-db", "myapp-feature1-db"},
		{"index placeholder", "net-{{WORKTREE_INDEX}}", "net-1"},
		{"port placeholder shifted", "http://localhost:{{API_PORT}}", "http://localhost:3010"},
		{"all together", "{{WORKTREE_NAME}}:{{WORKTREE_INDEX}}:{{API_PORT}}:{{CLIENT_PORT}}", "feature1:1:3010:3011"},
		{"multiple occurrences", "{{WORKTREE_NAME}}-{{WORKTREE_NAME}}", "feature1-feature1"},
		{"unknown placeholder inert", "{{UNKNOWN_VAR}}-{{WORKTREE_NAME}}", "{{UNKNOWN_VAR}}-feature1"},
		{"no placeholders", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, ctx, testPorts()); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRenderStable(t *testing.T) {
	// Once every placeholder is resolved, re-rendering is the identity.
	ctx := Context{Name: "feature1", Index: 1, Offset: 10}
	out := Render("{{WORKTREE_NAME}}:{{API_PORT}}", ctx, testPorts())
	if again := Render(out, ctx, testPorts()); again != out {
		t.Errorf("re-render changed output: %q -> %q", out, again)
	}
}

func TestRenderInvalidPortInert(t *testing.T) {
	ports := []config.PortMapping{{Name: "BAD_PORT", Raw: "nope"}}
	ctx := Context{Name: "w", Index: 1, Offset: 10}
	if got := Render("x:{{BAD_PORT}}", ctx, ports); got != "x:{{BAD_PORT}}" {
		t.Errorf("invalid mapping must leave its placeholder verbatim, got %q", got)
	}
}

func TestRenderZeroOffset(t *testing.T) {
	// The primary worktree renders unshifted base ports.
	ctx := Context{Name: "main", Index: 0, Offset: 0}
	if got := Render("{{API_PORT}}", ctx, testPorts()); got != "3000" {
		t.Errorf("got %q, want base port for offset 0", got)
	}
}

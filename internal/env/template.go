package env

import (
	"strconv"
	"strings"

	"github.com/portree-dev/portree/internal/config"
)

// Template placeholders recognized wherever a template is rendered.
const (
	PlaceholderName  = "{{WORKTREE_NAME}}"
	PlaceholderIndex = "{{WORKTREE_INDEX}}"
)

// Render expands placeholders in template against the worktree context and
// the configured port mappings. Substitution order is fixed: worktree name
// first, then worktree index, then each port variable as its offset port.
// Placeholders that match nothing are left verbatim so partial templates
// can be rendered in stages. Rendering never fails.
func Render(template string, ctx Context, ports []config.PortMapping) string {
	out := strings.ReplaceAll(template, PlaceholderName, ctx.Name)
	out = strings.ReplaceAll(out, PlaceholderIndex, strconv.Itoa(ctx.Index))
	for _, p := range ports {
		if !p.Valid {
			// An unusable base port leaves its placeholder inert.
			continue
		}
		out = strings.ReplaceAll(out, "{{"+p.Name+"}}", strconv.Itoa(p.Base+ctx.Offset))
	}
	return out
}

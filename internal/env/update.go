package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/portree-dev/portree/internal/config"
)

// Updater applies file-update rules and environment-file upserts inside a
// single worktree. File paths are resolved relative to Dir.
type Updater struct {
	Dir    string
	Config *config.Config
}

// ApplyRule dispatches one configured file-update rule to its strategy.
func (u *Updater) ApplyRule(rule config.FileUpdate, ctx Context) error {
	switch a := rule.Action.(type) {
	case config.EnvVars:
		return u.upsertVars(rule.Path, a.Vars, ctx)
	case config.Replace:
		return u.replace(rule.Path, a, ctx)
	case config.Append:
		return u.appendPayload(rule.Path, a.Payload, ctx)
	default:
		return fmt.Errorf("unknown update action %T", rule.Action)
	}
}

// UpsertPorts upserts every configured port-mapping variable into rel,
// shifted by the context offset. This runs outside the per-rule loop so
// every declared port variable ends up set even when no env_vars rule
// references it.
func (u *Updater) UpsertPorts(rel string, ctx Context) error {
	var names []string
	for _, p := range u.Config.PortMappings {
		names = append(names, p.Name)
	}
	return u.upsertVars(rel, names, ctx)
}

// UpsertContainerNames upserts every configured container-name template
// into rel. Container names are never port-shifted: templates render with
// offset 0 but the real worktree name and index.
func (u *Updater) UpsertContainerNames(rel string, ctx Context) error {
	if len(u.Config.ContainerNames) == 0 {
		return nil
	}
	target, err := u.ensureFile(rel)
	if err != nil {
		return err
	}
	nameCtx := Context{Name: ctx.Name, Index: ctx.Index, Offset: 0}
	var errs []error
	for _, c := range u.Config.ContainerNames {
		rendered := Render(c.Template, nameCtx, u.Config.PortMappings)
		if err := upsertLine(target, c.Name, rendered); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

// upsertVars applies env_vars semantics: each named variable is looked up
// in the port-mapping table; unknown names are a deliberate no-op. The
// target file is created empty when absent.
func (u *Updater) upsertVars(rel string, names []string, ctx Context) error {
	target, err := u.ensureFile(rel)
	if err != nil {
		return err
	}
	var errs []error
	for _, name := range names {
		p, ok := u.Config.Port(name)
		if !ok {
			continue
		}
		if !p.Valid {
			errs = append(errs, fmt.Errorf("port mapping %s: %q is not a number", name, p.Raw))
			continue
		}
		if err := upsertLine(target, name, strconv.Itoa(p.Base+ctx.Offset)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// replace applies a global regex substitution. A missing target file is a
// silent no-op: there is nothing to rewrite, unlike the env_vars
// auto-create behavior.
func (u *Updater) replace(rel string, a config.Replace, ctx Context) error {
	target := filepath.Join(u.Dir, rel)
	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	re, err := regexp.Compile(a.Pattern)
	if err != nil {
		return fmt.Errorf("invalid search pattern %q: %w", a.Pattern, err)
	}
	// The replacement is rendered first, then used as a regex replacement,
	// so it may carry both placeholders and back-references.
	rendered := Render(a.Replacement, ctx, u.Config.PortMappings)
	out := re.ReplaceAllString(string(data), rendered)
	if out == string(data) {
		return nil
	}
	return os.WriteFile(target, []byte(out), 0644)
}

// appendPayload appends the rendered payload preceded by a newline,
// creating the file when absent. Re-running with identical inputs is a
// no-op: a payload already present as a line block is never appended
// again, so several append rules targeting the same file stay stable
// across runs.
func (u *Updater) appendPayload(rel string, payload string, ctx Context) error {
	target := filepath.Join(u.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	rendered := "\n" + Render(payload, ctx, u.Config.PortMappings)
	if data, err := os.ReadFile(target); err == nil {
		content := string(data)
		if strings.HasSuffix(content, rendered) || strings.Contains(content, rendered+"\n") {
			return nil
		}
	}
	f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(rendered); err != nil {
		return err
	}
	return nil
}

// ensureFile resolves rel under the worktree and creates it empty (with
// parent directories) when absent.
func (u *Updater) ensureFile(rel string) (string, error) {
	target := filepath.Join(u.Dir, rel)
	if _, err := os.Stat(target); err == nil {
		return target, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, nil, 0644); err != nil {
		return "", err
	}
	return target, nil
}

// upsertLine replaces the first ^KEY= line in place, preserving the rest
// of the file, or appends a new KEY=value line when no line matches.
func upsertLine(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(data)
	assignment := key + "=" + value

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, key+"=") {
			if line == assignment {
				return nil
			}
			lines[i] = assignment
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
		}
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += assignment + "\n"
	return os.WriteFile(path, []byte(content), 0644)
}

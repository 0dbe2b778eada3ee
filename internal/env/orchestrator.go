package env

import (
	"fmt"

	"github.com/portree-dev/portree/internal/config"
)

// Indexer resolves a worktree's stable creation-order index. Index 0 is
// reserved for the primary worktree.
type Indexer interface {
	Index(name string) (int, error)
}

// RuleFailure records one file-update rule that could not be applied.
// Failures are collected, not thrown: one bad rule must not stop the rest
// of the batch.
type RuleFailure struct {
	Path string
	Err  error
}

func (f RuleFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Result reports the outcome of one Apply call.
type Result struct {
	Context  Context
	Failures []RuleFailure
}

// Apply runs the full environment update for one worktree: resolve the
// index, compute the port offset, apply the declared file-update rules in
// order, then upsert all port mappings and container names into the
// primary environment file. It fails outright only when index resolution
// fails; everything else is collected into the result. Re-running with the
// same configuration and index yields byte-identical files.
func Apply(name, dir string, cfg *config.Config, idx Indexer) (*Result, error) {
	index, err := idx.Index(name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree index: %w", err)
	}

	ctx := Context{
		Name:   name,
		Index:  index,
		Offset: Offset(index, cfg.PortOffsetIncrement),
	}
	u := &Updater{Dir: dir, Config: cfg}
	result := &Result{Context: ctx}

	for _, rule := range cfg.FileUpdates {
		if err := u.ApplyRule(rule, ctx); err != nil {
			result.Failures = append(result.Failures, RuleFailure{Path: rule.Path, Err: err})
		}
	}

	primary := cfg.PrimaryEnvFile()
	if err := u.UpsertPorts(primary, ctx); err != nil {
		result.Failures = append(result.Failures, RuleFailure{Path: primary, Err: err})
	}
	if err := u.UpsertContainerNames(primary, ctx); err != nil {
		result.Failures = append(result.Failures, RuleFailure{Path: primary, Err: err})
	}

	return result, nil
}

package env

// Context is the resolved per-worktree substitution context. It is
// recomputed on every orchestration call and never persisted.
type Context struct {
	Name   string // worktree name
	Index  int    // stable creation-order index; 0 for the primary worktree
	Offset int    // port offset, Index * increment
}

// Offset derives a worktree's port offset from its creation index and the
// configured per-index increment. The primary worktree (index 0) is never
// shifted.
func Offset(index, increment int) int {
	return index * increment
}

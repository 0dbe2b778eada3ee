package config

// FileName is the per-repository configuration file, looked up at the
// primary worktree root.
const FileName = ".portree.conf"

// DefaultEnvFile is the primary environment file when ENV_FILES is empty.
const DefaultEnvFile = ".env"

// PortMapping is one PORT_MAPPINGS entry.
// Valid is false when the configured base port was not a number; the entry
// is kept (with the raw token in Raw) so that downstream consumers can
// report it instead of silently dropping or zeroing it.
type PortMapping struct {
	Name  string
	Base  int
	Valid bool
	Raw   string // original value token, kept for serialization and diagnostics
}

// ContainerName is one CONTAINER_NAMES entry. The template may embed
// {{WORKTREE_NAME}} and {{WORKTREE_INDEX}} placeholders.
type ContainerName struct {
	Name     string
	Template string
}

// Action is the closed set of file-update strategies. Exactly one of
// EnvVars, Replace, or Append implements it.
type Action interface {
	isAction()
}

// EnvVars upserts KEY=port lines for the named port-mapping variables.
type EnvVars struct {
	Vars []string
}

// Replace applies a global regex substitution across the file content.
type Replace struct {
	Pattern     string
	Replacement string
}

// Append appends a rendered payload to the file.
type Append struct {
	Payload string
}

func (EnvVars) isAction() {}
func (Replace) isAction() {}
func (Append) isAction()  {}

// FileUpdate is one configured rewrite rule. Rules are applied in
// declaration order.
type FileUpdate struct {
	Path   string
	Spec   string // raw spec field; for replace rules this mirrors the replacement
	Action Action
}

// Config is the per-repository portree configuration, loaded once per
// invocation and immutable afterwards.
type Config struct {
	StartContainers     bool
	PortOffsetIncrement int
	EnvFiles            []string
	PortMappings        []PortMapping
	ContainerNames      []ContainerName
	FileUpdates         []FileUpdate
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		StartContainers:     true,
		PortOffsetIncrement: 10,
	}
}

// Port looks up a port mapping by variable name.
func (c *Config) Port(name string) (PortMapping, bool) {
	for _, p := range c.PortMappings {
		if p.Name == name {
			return p, true
		}
	}
	return PortMapping{}, false
}

// SetPort inserts or replaces a port mapping. Duplicate names are
// last-write-wins, replacing in place to preserve declaration order.
func (c *Config) SetPort(p PortMapping) {
	for i := range c.PortMappings {
		if c.PortMappings[i].Name == p.Name {
			c.PortMappings[i] = p
			return
		}
	}
	c.PortMappings = append(c.PortMappings, p)
}

// SetContainerName inserts or replaces a container-name template,
// last-write-wins like SetPort.
func (c *Config) SetContainerName(n ContainerName) {
	for i := range c.ContainerNames {
		if c.ContainerNames[i].Name == n.Name {
			c.ContainerNames[i] = n
			return
		}
	}
	c.ContainerNames = append(c.ContainerNames, n)
}

// PrimaryEnvFile returns the worktree's primary environment file: the
// first ENV_FILES entry, or .env when none are configured.
func (c *Config) PrimaryEnvFile() string {
	if len(c.EnvFiles) > 0 {
		return c.EnvFiles[0]
	}
	return DefaultEnvFile
}

package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	// DefaultStagingPrefix names hidden staging directories: <prefix>-<pid>-<random>.
	DefaultStagingPrefix = "ctnotes"
	// DefaultExtractTimeout bounds a single extractor run.
	DefaultExtractTimeout = "2m"
	// DefaultIcons selects the nerd font icon set.
	DefaultIcons = "nerd"
	// DefaultTheme is the palette used when none is configured.
	DefaultTheme = "kanagawa"
)

// StagingConfig controls the hidden staging locations used for encrypted documents.
type StagingConfig struct {
	// TempRoot is the parent directory for staging directories. Empty means the OS temp dir.
	TempRoot string `yaml:"temp_root,omitempty" toml:"temp_root,omitempty" json:"temp_root,omitempty" jsonschema:"description=Parent directory for hidden staging directories (default: OS temp dir)"`
	// Prefix is the leading part of every staging directory name.
	Prefix string `yaml:"prefix,omitempty" toml:"prefix,omitempty" json:"prefix,omitempty" jsonschema:"description=Name prefix for staging directories"`
	// StrictExtensions rejects visible paths outside the .ctx/.ctz transform table.
	StrictExtensions *bool `yaml:"strict_extensions,omitempty" toml:"strict_extensions,omitempty" json:"strict_extensions,omitempty" jsonschema:"description=Fail instead of falling back to the unmodified basename for unknown suffixes (default: true)"`
	// SweepOnStart removes staging directories orphaned by dead processes at launch.
	SweepOnStart bool `yaml:"sweep_on_start,omitempty" toml:"sweep_on_start,omitempty" json:"sweep_on_start,omitempty" jsonschema:"description=Remove staging directories left behind by crashed instances on startup"`
}

// DocumentsConfig controls how documents are opened.
type DocumentsConfig struct {
	// ExtractCommand is the argv template used to unpack encrypted documents.
	// Placeholders: {src} visible path, {dst} hidden file path, {dir} hidden directory.
	ExtractCommand []string `yaml:"extract_command,omitempty" toml:"extract_command,omitempty" json:"extract_command,omitempty" jsonschema:"description=Command template used to unpack encrypted documents ({src} {dst} {dir})"`
	ExtractTimeout string   `yaml:"extract_timeout,omitempty" toml:"extract_timeout,omitempty" json:"extract_timeout,omitempty" jsonschema:"description=Maximum duration of one extractor run (Go duration syntax)"`
	// Watch reports on-disk changes of loaded documents.
	Watch bool `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch,omitempty" jsonschema:"description=Watch loaded documents for changes on disk"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"description=Color palette (kanagawa, gruvbox, terminal)"`
	Icons string `yaml:"icons,omitempty" toml:"icons,omitempty" json:"icons,omitempty" jsonschema:"enum=nerd,enum=ascii,description=Icon set"`
}

// InstanceConfig controls single-instance forwarding.
type InstanceConfig struct {
	// Enabled makes later launches hand their files to the running instance.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty" jsonschema:"description=Forward launches to an already running instance (default: true)"`
}

// Config is the application configuration store.
type Config struct {
	Version   string          `yaml:"version" toml:"version" json:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
	Staging   StagingConfig   `yaml:"staging" toml:"staging" json:"staging" jsonschema:"description=Hidden staging locations for encrypted documents"`
	Documents DocumentsConfig `yaml:"documents" toml:"documents" json:"documents" jsonschema:"description=Document loading"`
	TUI       TUIConfig       `yaml:"tui" toml:"tui" json:"tui" jsonschema:"description=Presentation settings"`
	Instance  InstanceConfig  `yaml:"instance" toml:"instance" json:"instance" jsonschema:"description=Single-instance behavior"`

	// Extensions holds any top-level section not modelled above (e.g. "logging").
	Extensions map[string]interface{} `yaml:"-" toml:"-" json:"-" jsonschema:"-"`
}

// knownSections lists the top-level keys decoded into Config fields.
var knownSections = map[string]bool{
	"version":   true,
	"staging":   true,
	"documents": true,
	"tui":       true,
	"instance":  true,
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Staging.Prefix == "" {
		c.Staging.Prefix = DefaultStagingPrefix
	}
	if c.Staging.StrictExtensions == nil {
		strict := true
		c.Staging.StrictExtensions = &strict
	}
	if c.Documents.ExtractTimeout == "" {
		c.Documents.ExtractTimeout = DefaultExtractTimeout
	}
	if c.TUI.Icons == "" {
		c.TUI.Icons = DefaultIcons
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = DefaultTheme
	}
	if c.Instance.Enabled == nil {
		enabled := true
		c.Instance.Enabled = &enabled
	}
}

// StrictExtensions reports whether unknown staging suffixes are rejected.
func (c *Config) StrictExtensions() bool {
	return c.Staging.StrictExtensions == nil || *c.Staging.StrictExtensions
}

// InstanceEnabled reports whether launches are forwarded to a running instance.
func (c *Config) InstanceEnabled() bool {
	return c.Instance.Enabled == nil || *c.Instance.Enabled
}

// ExtractTimeout returns the parsed extractor timeout, falling back to the default.
func (c *Config) ExtractTimeout() time.Duration {
	d, err := time.ParseDuration(c.Documents.ExtractTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultExtractTimeout)
	}
	return d
}

// UnmarshalExtension decodes a specific extension's configuration into the
// provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing section leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

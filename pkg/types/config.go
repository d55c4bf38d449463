package types

import "time"

// IndexConfig holds settings for the metadata index.
type IndexConfig struct {
	// Path is the index file. A .yaml or .yml suffix selects YAML, anything
	// else is written as indented JSON.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// ConfigDir is the default root scanned for config artifacts.
	ConfigDir string `json:"config_dir" yaml:"config_dir" mapstructure:"config_dir"`

	// CodeDir is the default root scanned for code artifacts.
	CodeDir string `json:"code_dir" yaml:"code_dir" mapstructure:"code_dir"`

	// ConfigExts and CodeExts are the file extensions (with leading dot)
	// picked up for each catalog.
	ConfigExts []string `json:"config_exts" yaml:"config_exts" mapstructure:"config_exts"`
	CodeExts   []string `json:"code_exts" yaml:"code_exts" mapstructure:"code_exts"`

	// Strict makes a corrupt index file a startup error instead of an
	// empty index.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// Exts returns the configured extensions for kind.
func (c IndexConfig) Exts(kind CatalogKind) []string {
	if kind == CatalogCode {
		return c.CodeExts
	}
	return c.ConfigExts
}

// ReportConfig holds settings for running report classes.
type ReportConfig struct {
	// JavaBin is the java launcher (default "java").
	JavaBin string `json:"java_bin" yaml:"java_bin" mapstructure:"java_bin"`

	// Classpath is passed to the launcher with -cp.
	Classpath string `json:"classpath" yaml:"classpath" mapstructure:"classpath"`

	// OutputDir is where report files are written (default "reports").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Timeout bounds one report run (default 5m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	Version string `json:"version" yaml:"version" mapstructure:"version"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last filesystem event before
	// a rescan starts.
	Debounce time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce"`
}

// Config groups all settings.
type Config struct {
	Index  IndexConfig  `json:"index" yaml:"index" mapstructure:"index"`
	Report ReportConfig `json:"report" yaml:"report" mapstructure:"report"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Watch  WatchConfig  `json:"watch" yaml:"watch" mapstructure:"watch"`
}

// DefaultConfig returns the settings used when no config file or flag
// overrides them.
func DefaultConfig() Config {
	return Config{
		Index: IndexConfig{
			Path:       "metadata_index.json",
			ConfigDir:  "configs",
			CodeDir:    "src",
			ConfigExts: []string{".sql"},
			CodeExts:   []string{".java"},
		},
		Report: ReportConfig{
			JavaBin:   "java",
			OutputDir: "reports",
			Timeout:   5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Name:    "tradedesk",
			Version: "dev",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

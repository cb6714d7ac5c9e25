// Package config provides configuration structures and loading for godepend.
package config

// Config represents the complete application configuration.
type Config struct {
	Server  DatabaseConfig `yaml:"server" mapstructure:"server"`
	Resolve ResolveConfig  `yaml:"resolve" mapstructure:"resolve"`
	Logging LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents a MySQL server connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// ResolveConfig represents dependency resolution defaults. CLI flags
// override these per invocation.
type ResolveConfig struct {
	Direction     string `yaml:"direction" mapstructure:"direction"` // dependents or dependencies
	IncludeSelf   bool   `yaml:"include_self" mapstructure:"include_self"`
	IncludeScript bool   `yaml:"include_script" mapstructure:"include_script"`
	IncludeSystem bool   `yaml:"include_system" mapstructure:"include_system"`
	MaxDepth      int    `yaml:"max_depth" mapstructure:"max_depth"` // discovery depth cap, 0 = default
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Server: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Resolve: ResolveConfig{
			Direction:     "dependents",
			IncludeSelf:   false,
			IncludeScript: true,
			IncludeSystem: false,
			MaxDepth:      25,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

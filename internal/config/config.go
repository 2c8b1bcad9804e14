package config

// Config holds the deckforge MCP server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Include IncludeConfig `yaml:"include"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig identifies the server to MCP clients.
type ServerConfig struct {
	Name    string `yaml:"name" env:"SERVER_NAME"`
	Version string `yaml:"version" env:"SERVER_VERSION"`
}

// IncludeConfig controls <!-- include: path --> expansion.
type IncludeConfig struct {
	// Root is the directory include paths resolve under.
	Root string `yaml:"root" env:"INCLUDE_ROOT"`
	// MaxDepth bounds include nesting.
	MaxDepth int `yaml:"max_depth" env:"INCLUDE_MAX_DEPTH"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Defaults.
const (
	defaultServerName      = "deckforge-mcp"
	defaultServerVersion   = "1.0.0"
	defaultIncludeRoot     = "."
	defaultIncludeMaxDepth = 10
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return LoadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = defaultServerName
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = defaultServerVersion
	}
	if cfg.Include.Root == "" {
		cfg.Include.Root = defaultIncludeRoot
	}
	if cfg.Include.MaxDepth <= 0 {
		cfg.Include.MaxDepth = defaultIncludeMaxDepth
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}

// LoadOrDefault loads config from file, or returns defaults if the file
// doesn't exist. MCP servers are usually launched without a config file.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
		setDefaults(cfg)
		applyEnvOverrides(cfg)
	}
	return cfg
}

// NewDefault creates a new config with all default values.
func NewDefault() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

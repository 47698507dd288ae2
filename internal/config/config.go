package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/esg-research/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Research ResearchConfig `yaml:"research" mapstructure:"research"`
	MCP      MCPConfig      `yaml:"mcp" mapstructure:"mcp"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the checklist HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ResearchConfig configures checklist files and assembly.
type ResearchConfig struct {
	Format              string `yaml:"format" mapstructure:"format"`
	MaxConcurrentScopes int    `yaml:"max_concurrent_scopes" mapstructure:"max_concurrent_scopes"`
	Company             string `yaml:"company" mapstructure:"company"`
}

// MCPConfig holds the identity the MCP server reports to clients.
type MCPConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ESG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("research.format", string(model.FormatJSON))
	v.SetDefault("research.max_concurrent_scopes", len(model.Scopes))
	v.SetDefault("research.company", "")
	v.SetDefault("mcp.name", "esg-research")
	v.SetDefault("mcp.version", "v0.1.0")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// "research", "serve" and "mcp".
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "research":
		if _, err := model.ParseFormat(c.Research.Format); err != nil {
			problems = append(problems, "research.format must be json or yaml")
		}
		if c.Research.MaxConcurrentScopes < 1 || c.Research.MaxConcurrentScopes > len(model.Scopes) {
			problems = append(problems, "research.max_concurrent_scopes must be between 1 and 4")
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	case "mcp":
		if c.MCP.Name == "" {
			problems = append(problems, "mcp.name is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

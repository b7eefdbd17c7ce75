package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the application configuration.
type Config struct {
	AI struct {
		Provider    string  `koanf:"provider"` // "openai" or "ollama"
		Model       string  `koanf:"model"`
		APIKey      string  `koanf:"api_key"`
		BaseURL     string  `koanf:"base_url"`
		Temperature float64 `koanf:"temperature"`
	} `koanf:"ai"`

	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`

	Log struct {
		Level string `koanf:"level"`
		File  string `koanf:"file"`
	} `koanf:"log"`
}

// Load layers configuration: built-in defaults, then the TOML file (the given
// path or the first default location that exists), then REDLINE_* environment
// variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	k.Load(confmap.Provider(map[string]interface{}{
		"ai.provider":    "openai",
		"ai.model":       "gpt-4o-mini",
		"ai.temperature": 0.2,
		"server.port":    8080,
		"log.level":      "info",
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range []string{"./redline.toml", "$HOME/.redline.toml"} {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	k.Load(env.Provider("REDLINE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "REDLINE_")), "_", ".", -1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Init writes a sample configuration file.
func Init(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sample := `# Redline configuration

[ai]
provider = "openai"
model = "gpt-4o-mini"
api_key = "your-api-key"
temperature = 0.2

[server]
port = 8080

[log]
level = "info"
`
	return os.WriteFile(configPath, []byte(sample), 0644)
}

// Validate checks the parts of the configuration the current command needs.
func Validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required for the openai provider")
		}
	case "ollama":
		// Local server, no key needed.
	default:
		return fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
	if cfg.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	return nil
}

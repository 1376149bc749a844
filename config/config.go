// Package config resolves nanoagent's runtime configuration once per process.
//
// Values come from hard-coded defaults, an optional YAML file, a dotenv file
// and the process environment, in increasing order of precedence. Provider
// specific variables (OPENAI_*, ANTHROPIC_*) act as fallbacks below the
// NANOAGENT_* names.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Supported providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Defaults applied before any source is loaded.
const (
	DefaultProvider    = ProviderOpenAI
	DefaultModel       = "gpt-4.1-mini"
	DefaultTemperature = 0.7
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

var (
	// ErrMissingCredentials is returned when a live model call lacks an API key or base URL.
	ErrMissingCredentials = errors.New("missing LLM configuration")
	// ErrUnknownProvider is returned for a provider other than openai or anthropic.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Config is the resolved, immutable configuration shared by every agent.
type Config struct {
	Provider         string    `koanf:"provider"`
	Model            string    `koanf:"model"`
	APIKey           string    `koanf:"api_key"`
	APIBase          string    `koanf:"api_base"`
	Temperature      float64   `koanf:"temperature"`
	MaxTokens        int       `koanf:"max_tokens"` // 0 keeps the provider default
	InstructionsFile string    `koanf:"instructions_file"`
	Log              LogConfig `koanf:"log"`

	// EnvFile is the dotenv file that was read, empty when none was found.
	EnvFile string `koanf:"-"`
}

// LogConfig selects the logger built by the CLI.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%w %q (expected %s or %s)", ErrUnknownProvider, c.Provider, ProviderOpenAI, ProviderAnthropic)
	}

	switch c.Log.Format {
	case "text", "json", "console":
	default:
		return fmt.Errorf("invalid log format %q (expected text, json or console)", c.Log.Format)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}

	return nil
}

// RequireCredentials reports ErrMissingCredentials when the API key (and,
// with requireBase, the API base URL) is unset. The message names the
// variables to set.
func (c Config) RequireCredentials(requireBase bool) error {
	var missing []string

	keyVars, baseVars := credentialVars(c.Provider)
	if c.APIKey == "" {
		missing = append(missing, strings.Join(keyVars, " or "))
	}
	if requireBase && c.APIBase == "" {
		missing = append(missing, strings.Join(baseVars, " or "))
	}

	if len(missing) == 0 {
		return nil
	}

	return fmt.Errorf("%w: set %s (tip: create a .env file with these values)", ErrMissingCredentials, strings.Join(missing, " and "))
}

func credentialVars(provider string) (keyVars, baseVars []string) {
	if provider == ProviderAnthropic {
		return []string{envPrefix + "API_KEY", "ANTHROPIC_API_KEY"},
			[]string{envPrefix + "API_BASE", "ANTHROPIC_BASE_URL"}
	}
	return []string{envPrefix + "API_KEY", "OPENAI_API_KEY"},
		[]string{envPrefix + "API_BASE", "OPENAI_API_BASE", "OPENAI_BASE_URL"}
}

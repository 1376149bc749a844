package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "NANOAGENT_"
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Default dotenv candidates, tried in order when LoadOptions.EnvFile is empty.
var defaultEnvFiles = []string{".env", ".env.template"}

// Fallback chains for provider specific variables, highest priority first.
var fallbackChains = map[string]map[string][]string{
	ProviderOpenAI: {
		"api_key":  {"OPENAI_API_KEY"},
		"api_base": {"OPENAI_API_BASE", "OPENAI_BASE_URL"},
	},
	ProviderAnthropic: {
		"api_key":  {"ANTHROPIC_API_KEY"},
		"api_base": {"ANTHROPIC_BASE_URL"},
	},
}

// LoadOptions selects the optional file sources.
type LoadOptions struct {
	// ConfigFile is an optional YAML file. Missing files are an error.
	ConfigFile string
	// EnvFile overrides the dotenv candidates. Missing files are an error.
	EnvFile string
	// SkipEnvFile disables dotenv loading entirely.
	SkipEnvFile bool
	// LookupEnv reads the process environment; os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration.
//
// Precedence (highest to lowest):
//  1. NANOAGENT_* process environment variables
//  2. NANOAGENT_* entries of the dotenv file
//  3. Provider fallbacks (OPENAI_API_KEY, OPENAI_API_BASE, OPENAI_BASE_URL,
//     ANTHROPIC_API_KEY, ANTHROPIC_BASE_URL) from the process environment,
//     then the dotenv file
//  4. YAML config file
//  5. Hard-coded defaults
func Load(opts LoadOptions) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"provider":    DefaultProvider,
		"model":       DefaultModel,
		"temperature": DefaultTemperature,
		"max_tokens":  0,
		"log.level":   DefaultLogLevel,
		"log.format":  DefaultLogFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if opts.ConfigFile != "" {
		content, err := readConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", opts.ConfigFile, err)
		}
	}

	var (
		dotenv  map[string]string
		envFile string
	)
	if !opts.SkipEnvFile {
		var err error
		dotenv, envFile, err = readEnvFile(opts.EnvFile)
		if err != nil {
			return nil, err
		}
	}

	// Merged view with dotenv semantics: existing process variables win.
	merged := func(key string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return dotenv[key]
	}

	provider := k.String("provider")
	if v := merged(envPrefix + "PROVIDER"); v != "" {
		provider = strings.ToLower(v)
	}

	fallbacks := map[string]any{}
	for key, chain := range fallbackChains[provider] {
		for _, name := range chain {
			if v := merged(name); v != "" {
				fallbacks[key] = v
				break
			}
		}
	}
	if err := k.Load(confmap.Provider(fallbacks, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load provider fallbacks: %w", err)
	}

	fromDotenv := map[string]any{}
	for name, v := range dotenv {
		if key := envKey(name); key != "" && v != "" {
			fromDotenv[key] = v
		}
	}
	if err := k.Load(confmap.Provider(fromDotenv, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	if opts.LookupEnv == nil {
		if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(name, value string) (string, any) {
			if value == "" {
				return "", nil
			}
			return envKey(name), value
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment variables: %w", err)
		}
	} else {
		// Injected lookups cannot be enumerated; probe the known names.
		fromEnv := map[string]any{}
		for _, name := range knownEnvNames {
			if v, ok := lookup(name); ok && v != "" {
				fromEnv[envKey(name)] = v
			}
		}
		if err := k.Load(confmap.Provider(fromEnv, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment variables: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Provider = strings.ToLower(cfg.Provider)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.EnvFile = envFile

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

var knownEnvNames = []string{
	envPrefix + "PROVIDER",
	envPrefix + "MODEL",
	envPrefix + "API_KEY",
	envPrefix + "API_BASE",
	envPrefix + "TEMPERATURE",
	envPrefix + "MAX_TOKENS",
	envPrefix + "INSTRUCTIONS_FILE",
	envPrefix + "LOG_LEVEL",
	envPrefix + "LOG_FORMAT",
}

// envKey maps NANOAGENT_LOG_LEVEL to log.level and NANOAGENT_API_KEY to
// api_key. Names without the prefix map to "".
func envKey(name string) string {
	if !strings.HasPrefix(name, envPrefix) {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// readEnvFile parses the explicit dotenv file or the first existing default
// candidate. It never mutates the process environment.
func readEnvFile(path string) (map[string]string, string, error) {
	if path != "" {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		return values, path, nil
	}

	for _, candidate := range defaultEnvFiles {
		values, err := godotenv.Read(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read env file %s: %w", candidate, err)
		}
		return values, candidate, nil
	}

	return nil, "", nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

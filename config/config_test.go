package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{SkipEnvFile: true, LookupEnv: lookupFrom(nil)})
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.EnvFile)
}

func TestLoad_FallbackOrder(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantKey  string
		wantBase string
	}{
		{
			name:     "nanoagent wins",
			env:      map[string]string{"NANOAGENT_API_KEY": "n", "OPENAI_API_KEY": "o", "NANOAGENT_API_BASE": "nb", "OPENAI_API_BASE": "ob"},
			wantKey:  "n",
			wantBase: "nb",
		},
		{
			name:     "openai fallback",
			env:      map[string]string{"OPENAI_API_KEY": "o", "OPENAI_API_BASE": "ob", "OPENAI_BASE_URL": "ou"},
			wantKey:  "o",
			wantBase: "ob",
		},
		{
			name:     "base url last",
			env:      map[string]string{"OPENAI_BASE_URL": "ou"},
			wantBase: "ou",
		},
		{
			name:     "empty values are skipped",
			env:      map[string]string{"NANOAGENT_API_KEY": "", "OPENAI_API_KEY": "o"},
			wantKey:  "o",
			wantBase: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(LoadOptions{SkipEnvFile: true, LookupEnv: lookupFrom(tt.env)})
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cfg.APIKey)
			assert.Equal(t, tt.wantBase, cfg.APIBase)
		})
	}
}

func TestLoad_AnthropicFallbacks(t *testing.T) {
	cfg, err := Load(LoadOptions{SkipEnvFile: true, LookupEnv: lookupFrom(map[string]string{
		"NANOAGENT_PROVIDER": "Anthropic",
		"OPENAI_API_KEY":     "o",
		"ANTHROPIC_API_KEY":  "a",
	})})
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "a", cfg.APIKey)
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, ".env", "NANOAGENT_API_KEY=from-file\nNANOAGENT_MODEL=gpt-file\nOPENAI_API_BASE=https://file.example\n")

	cfg, err := Load(LoadOptions{EnvFile: path, LookupEnv: lookupFrom(map[string]string{
		"NANOAGENT_MODEL": "gpt-env",
		"OPENAI_API_KEY":  "process-openai",
	})})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "gpt-env", cfg.Model)
	assert.Equal(t, "https://file.example", cfg.APIBase)
	assert.Equal(t, path, cfg.EnvFile)
}

func TestLoad_MissingExplicitFiles(t *testing.T) {
	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "nope.env"), LookupEnv: lookupFrom(nil)})
	assert.Error(t, err)

	_, err = Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"), SkipEnvFile: true, LookupEnv: lookupFrom(nil)})
	assert.Error(t, err)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", "model: gpt-yaml\ntemperature: 0.2\nmax_tokens: 300\nlog:\n  level: debug\n  format: json\n")

	cfg, err := Load(LoadOptions{ConfigFile: path, SkipEnvFile: true, LookupEnv: lookupFrom(map[string]string{
		"NANOAGENT_LOG_FORMAT":  "console",
		"NANOAGENT_TEMPERATURE": "0.4",
	})})
	require.NoError(t, err)

	assert.Equal(t, "gpt-yaml", cfg.Model)
	assert.InDelta(t, 0.4, cfg.Temperature, 1e-9)
	assert.Equal(t, 300, cfg.MaxTokens)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("NANOAGENT_MODEL", "gpt-process")
	t.Setenv("NANOAGENT_LOG_LEVEL", "warn")

	cfg, err := Load(LoadOptions{SkipEnvFile: true})
	require.NoError(t, err)
	assert.Equal(t, "gpt-process", cfg.Model)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_UnknownProvider(t *testing.T) {
	_, err := Load(LoadOptions{SkipEnvFile: true, LookupEnv: lookupFrom(map[string]string{"NANOAGENT_PROVIDER": "llama"})})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRequireCredentials(t *testing.T) {
	cfg := Config{Provider: ProviderOpenAI}

	err := cfg.RequireCredentials(false)
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "NANOAGENT_API_KEY or OPENAI_API_KEY")
	assert.NotContains(t, err.Error(), "API_BASE")

	cfg.APIKey = "k"
	assert.NoError(t, cfg.RequireCredentials(false))

	err = cfg.RequireCredentials(true)
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "NANOAGENT_API_BASE or OPENAI_API_BASE or OPENAI_BASE_URL")

	cfg.APIBase = "https://example"
	assert.NoError(t, cfg.RequireCredentials(true))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "api_key", envKey("NANOAGENT_API_KEY"))
	assert.Equal(t, "log.format", envKey("NANOAGENT_LOG_FORMAT"))
	assert.Equal(t, "", envKey("OPENAI_API_KEY"))
}

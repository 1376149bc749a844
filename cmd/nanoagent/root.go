package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/nanoagent/config"
	"github.com/hupe1980/nanoagent/internal/provider"
	"github.com/hupe1980/nanoagent/logging"
	"github.com/hupe1980/nanoagent/model"
)

// app carries the global flags and the I/O of one CLI invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// lookupEnv and skipEnvFile are overridden by tests.
	lookupEnv   func(string) (string, bool)
	skipEnvFile bool

	configFile string
	envFile    string
	logLevel   string
	logFormat  string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nanoagent",
		Short: "Password generating agents in three tiers",
		Long: `nanoagent generates secure passwords with an LLM agent.

  basic     one-shot request to the model
  tools     the model calls local password tools until it can answer
  pipeline  Planner, Implementer and Tester agents hand off to each other

Every tier supports --mock to run without contacting a model.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file (default .env, then .env.template)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json, console)")

	cmd.AddCommand(newBasicCmd(a))
	cmd.AddCommand(newToolsCmd(a))
	cmd.AddCommand(newPipelineCmd(a))

	return cmd
}

// setup resolves the configuration, applies flag overrides and builds the
// logger. Every error it returns is a configuration error.
func (a *app) setup() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:  a.configFile,
		EnvFile:     a.envFile,
		SkipEnvFile: a.skipEnvFile,
		LookupEnv:   a.lookupEnv,
	})
	if err != nil {
		return nil, nil, &configError{err}
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = strings.ToLower(a.logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, &configError{err}
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, &configError{err}
	}

	logger := logging.New(logging.Config{Level: level, Format: cfg.Log.Format, Output: a.stderr})
	logger.Debug("config.loaded",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"env_file", cfg.EnvFile,
		"api_base_set", cfg.APIBase != "",
	)

	return cfg, logger, nil
}

// liveModel checks the credentials a tier needs and builds the provider.
func (a *app) liveModel(cfg *config.Config, requireBase bool) (model.Model, error) {
	if err := cfg.RequireCredentials(requireBase); err != nil {
		return nil, err
	}
	m, err := provider.New(cfg)
	if err != nil {
		return nil, &configError{err}
	}
	return m, nil
}

func promptArg(args []string, def string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	return def
}

// readInstructions returns the system prompt for the tool tier. An explicit
// path must exist.
func readInstructions(path, def string) (string, error) {
	if path == "" {
		return def, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &configError{fmt.Errorf("read instructions file: %w", err)}
	}
	if s := strings.TrimSpace(string(b)); s != "" {
		return s, nil
	}
	return def, nil
}

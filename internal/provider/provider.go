// Package provider builds the live model.Model selected by the resolved
// configuration.
package provider

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/nanoagent/config"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/model/anthropic"
	"github.com/hupe1980/nanoagent/model/openai"
)

// New constructs the provider adapter for cfg. Credentials are checked by the
// caller with cfg.RequireCredentials since the requirement differs per tier.
func New(cfg *config.Config) (model.Model, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.Model
			o.Temperature = cfg.Temperature
			o.MaxTokens = int64(cfg.MaxTokens)
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.APIBase
		}), nil
	case config.ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model != "" && cfg.Model != config.DefaultModel {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			o.Temperature = cfg.Temperature
			if cfg.MaxTokens > 0 {
				o.MaxTokens = int64(cfg.MaxTokens)
			}
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.APIBase
		}), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

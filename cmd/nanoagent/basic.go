package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/nanoagent/flow"
	"github.com/hupe1980/nanoagent/model"
)

func newBasicCmd(a *app) *cobra.Command {
	var mock bool

	cmd := &cobra.Command{
		Use:   "basic [prompt]",
		Short: "Level 1: one-shot request to the model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}

			var m model.Model
			if mock {
				m = flow.NewBasicMockModel(a.stdout)
			} else if m, err = a.liveModel(cfg, false); err != nil {
				return err
			}

			_, err = flow.NewSingle(m, func(o *flow.Options) {
				o.Logger = logger
				o.Transcript = a.stdout
				if cfg.MaxTokens > 0 {
					o.MaxTokens = cfg.MaxTokens
				}
			}).Run(cmd.Context(), promptArg(args, flow.DefaultBasicPrompt))

			return err
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "run without calling the model")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/nanoagent/orchestrator"
)

func newPipelineCmd(a *app) *cobra.Command {
	var mock bool

	cmd := &cobra.Command{
		Use:   "pipeline [request]",
		Short: "Level 3: Planner, Implementer and Tester agents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}

			opts := func(o *orchestrator.Options) {
				o.Mock = mock
				o.Logger = logger
				o.Transcript = a.stdout
			}

			if !mock {
				m, err := a.liveModel(cfg, false)
				if err != nil {
					return err
				}
				base := opts
				opts = func(o *orchestrator.Options) {
					base(o)
					o.Model = m
				}
			}

			_, err = orchestrator.New(opts).Run(cmd.Context(), promptArg(args, orchestrator.DefaultPrompt))
			return err
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "run every agent on its canned response")

	return cmd
}

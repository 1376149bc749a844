package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/nanoagent/flow"
	"github.com/hupe1980/nanoagent/model"
	"github.com/hupe1980/nanoagent/password"
	"github.com/hupe1980/nanoagent/tool"
)

func newToolsCmd(a *app) *cobra.Command {
	var (
		mock         bool
		instructions string
	)

	cmd := &cobra.Command{
		Use:   "tools [prompt]",
		Short: "Level 2: the model calls local password tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}

			path := instructions
			if path == "" {
				path = cfg.InstructionsFile
			}
			system, err := readInstructions(path, flow.DefaultToolInstructions)
			if err != nil {
				return err
			}

			prompt := promptArg(args, flow.DefaultToolPrompt)

			var m model.Model
			if mock {
				m = flow.NewToolMockModel(prompt, a.stdout)
			} else if m, err = a.liveModel(cfg, true); err != nil {
				return err
			}

			_, err = flow.NewToolLoop(m, tool.NewPasswordRegistry(password.Generator{}), func(o *flow.Options) {
				o.Instructions = system
				o.Logger = logger
				o.Transcript = a.stdout
				o.MaxTokens = cfg.MaxTokens
			}).Run(cmd.Context(), prompt)

			return err
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "run without calling the model")
	cmd.Flags().StringVar(&instructions, "instructions", "", "file with the system instructions")

	return cmd
}

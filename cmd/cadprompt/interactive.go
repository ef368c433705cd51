package main

import (
	"github.com/bastiangx/cadprompt/internal/cli"
	"github.com/bastiangx/cadprompt/internal/render"
	"github.com/bastiangx/cadprompt/internal/tui"
	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newCliCmd(a *app) *cobra.Command {
	var noPreview bool
	cmd := &cobra.Command{
		Use:   "cli",
		Short: "Try templates line by line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, err := a.planner()
			if err != nil {
				return err
			}
			opts := cli.Options{
				ShowPreview: a.cfg.CLI.ShowPreview && !noPreview,
				MaxInput:    a.cfg.Engine.MaxInput,
				Styles:      render.NewStyles(a.cfg.CLI.Color),
			}
			return cli.NewInputHandler(planner, opts, cmd.InOrStdin(), cmd.OutOrStdout()).Start()
		},
	}
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "Hide the template preview line")
	return cmd
}

func newTuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive prompt with suggestions on every keystroke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, err := a.planner()
			if err != nil {
				return err
			}
			return tui.Run(planner, tui.Config{
				ShowPreview: a.cfg.CLI.ShowPreview,
				MaxInput:    a.cfg.Engine.MaxInput,
				Styles:      render.NewStyles(a.cfg.CLI.Color),
				OnSubmit: func(text string, res match.Result) {
					log.Debug("Submitted", "template", res.TemplateID(), "complete", res.Complete, "text", text)
				},
			})
		},
	}
}

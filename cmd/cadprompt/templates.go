package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/cadprompt/internal/render"
	"github.com/bastiangx/cadprompt/pkg/template"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the loaded templates",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List templates in priority order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				planner, err := a.planner()
				if err != nil {
					return err
				}
				st := render.NewStyles(a.cfg.CLI.Color)
				for _, t := range planner.Registry().Templates() {
					printTemplate(cmd.OutOrStdout(), t, st)
				}
				stats := planner.Stats()
				fmt.Fprintf(cmd.OutOrStdout(), "%d templates, %d parameters\n", stats["templates"], stats["parameters"])
				return nil
			},
		},
		&cobra.Command{
			Use:   "check FILE...",
			Short: "Validate template files without loading them",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return checkFiles(cmd.OutOrStdout(), args)
			},
		},
	)
	return cmd
}

func printTemplate(w io.Writer, t *template.Template, st render.Styles) {
	fmt.Fprintf(w, "%s  %s\n", st.Filled.Render(t.ID), t.Name)
	fmt.Fprintf(w, "    %s\n", t.String())
	if t.Example != "" {
		fmt.Fprintf(w, "    %s\n", st.Muted.Render("e.g. "+t.Example))
	}
}

// checkFiles loads every file and reports each template; any definition
// error fails the command.
func checkFiles(w io.Writer, paths []string) error {
	var errs []error
	for _, path := range paths {
		templates, err := template.LoadFile(path)
		for _, t := range templates {
			fmt.Fprintf(w, "ok    %s: %s\n", path, t.ID)
		}
		if err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "error %s: %s\n", path, line)
			}
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files have errors: %w", len(errs), len(paths), errors.Join(errs...))
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/cadprompt/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the msgpack IPC server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
}

func (a *app) runServe(cmd *cobra.Command) error {
	sigHandler()
	planner, err := a.planner()
	if err != nil {
		return err
	}
	if a.debug {
		showStartupInfo(planner.Stats())
	}
	srv := server.NewServerWithIO(planner, a.cfg.Server, Version, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(stats map[string]int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " cadprompt ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Info("templates", "count", stats["templates"], "parameters", stats["parameters"])
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
}

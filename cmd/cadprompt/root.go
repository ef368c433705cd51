package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/cadprompt/internal/logger"
	"github.com/bastiangx/cadprompt/internal/utils"
	"github.com/bastiangx/cadprompt/pkg/config"
	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/bastiangx/cadprompt/pkg/template"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0-beta"
	AppName = config.AppName
	gh      = "https://github.com/bastiangx/cadprompt"
)

// ErrNoTemplates is returned when builtin templates are disabled and no
// template file could be loaded.
var ErrNoTemplates = errors.New("no templates loaded")

// app carries the persistent flags and what is loaded from them.
type app struct {
	configPath string
	debug      bool
	templates  []string

	cfg        *config.Config
	loadedFrom string
}

// NewRootCmd builds the command tree. The bare command runs the IPC server.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           AppName,
		Short:         "Template-aware autocomplete for text-to-CAD prompts",
		Long:          "cadprompt recognizes command templates while a CAD prompt is typed and suggests values for their blanks.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default is [UserConfigDir]/cadprompt/config.toml)")
	flags.BoolVarP(&a.debug, "debug", "d", false, "Toggle debug mode")
	flags.StringSliceVar(&a.templates, "templates", nil, "Extra template files or directories (TOML or YAML)")

	root.AddCommand(
		newServeCmd(a),
		newCliCmd(a),
		newTuiCmd(a),
		newTemplatesCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup() error {
	logger.Setup(a.debug)
	cfg, path, err := config.LoadConfigWithPriority(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.loadedFrom = path
	log.Debug("Config loaded", "path", config.GetActiveConfigPath(path))
	return nil
}

// registry assembles the templates in priority order. Broken templates are
// logged and skipped; only an empty result is an error.
func (a *app) registry() (*template.Registry, error) {
	b := template.NewBuilder()
	if a.cfg.Engine.BuiltinTemplates {
		if err := b.AddAll(template.Builtin()...); err != nil {
			return nil, fmt.Errorf("builtin templates: %w", err)
		}
	}

	files, dir := a.cfg.TemplatePaths(a.loadedFrom)
	for _, f := range files {
		a.addFile(b, f)
	}
	if resolver, err := utils.NewPathResolver(config.AppName); err == nil {
		if found := resolver.TemplateDir(dir); found != "" {
			a.addDir(b, found)
		} else if dir != "" {
			log.Warnf("Template dir %s holds no template files", dir)
		}
	}
	for _, p := range a.templates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			a.addDir(b, p)
			continue
		}
		a.addFile(b, p)
	}

	reg := b.Build()
	if reg.Len() == 0 {
		return nil, ErrNoTemplates
	}
	log.Debug("Registry ready", "templates", reg.Len())
	return reg, nil
}

func (a *app) addFile(b *template.Builder, path string) {
	templates, err := template.LoadFile(path)
	warnLoad(path, err)
	// AddAll logs each rejected template itself.
	_ = b.AddAll(templates...)
}

// warnLoad logs file level failures. Skipped templates were already logged
// by the loader.
func warnLoad(path string, err error) {
	var defErr *template.DefinitionError
	if err != nil && !errors.As(err, &defErr) {
		log.Warnf("Loading %s: %v", path, err)
	}
}

func (a *app) addDir(b *template.Builder, dir string) {
	templates, err := template.LoadDir(dir)
	warnLoad(dir, err)
	_ = b.AddAll(templates...)
}

func (a *app) planner() (*match.Planner, error) {
	reg, err := a.registry()
	if err != nil {
		return nil, err
	}
	return match.NewPlanner(reg, a.cfg.Engine.MaxSuggestions), nil
}

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

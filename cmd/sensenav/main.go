package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-sensenav/internal/config"
	"github.com/goliatone/go-sensenav/internal/log"
	"github.com/goliatone/go-sensenav/pkg/helper"
	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/navpanel"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, os.Environ).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by every command once the root command has
// loaded configuration.
type app struct {
	out     io.Writer
	errOut  io.Writer
	environ func() []string

	logLevel    string
	catalogPath string
	listsPath   string
	addr        string

	cfg    *config.Config
	logger zerolog.Logger
	panel  *model.Field
}

func newRootCmd(out, errOut io.Writer, environ func() []string) *cobra.Command {
	a := &app{out: out, errOut: errOut, environ: environ}

	root := &cobra.Command{
		Use:   "sensenav",
		Short: "Property panel of the navigation button extension",
		Long: `sensenav builds the property panel definition of the navigation
button extension and answers questions about it: which fields a layout
shows, whether a layout is valid and what a new object starts with.

Environment Variables:
  SENSENAV_LOG_LEVEL      Log level (default: info)
  SENSENAV_SERVER_ADDR    Listen address for serve (default: :8080)
  SENSENAV_CATALOG_PATH   Icon catalog replacing the embedded one
  SENSENAV_LISTS_PATH     Fixture with apps, sheets, stories, bookmarks, fields`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.catalogPath, "catalog", "", "icon catalog file (JSON or YAML)")
	flags.StringVar(&a.listsPath, "lists", "", "host list fixture file (JSON or YAML)")

	root.AddCommand(
		a.exportCmd(),
		a.iconsCmd(),
		a.defaultsCmd(),
		a.visibleCmd(),
		a.validateCmd(),
		a.lintCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(
		config.WithEnviron(a.environ),
		config.WithOverrides(map[string]any{
			"log.level":    a.logLevel,
			"catalog.path": a.catalogPath,
			"lists.path":   a.listsPath,
			"server.addr":  a.addr,
		}),
	)
	if err != nil {
		return a.report(err)
	}
	a.cfg = cfg

	log.Configure(log.Config{Level: cfg.Log.Level, Output: a.errOut})
	a.logger = log.WithComponent("cli")

	var lister helper.Lister = &helper.Static{}
	if cfg.Lists.Path != "" {
		static, err := helper.LoadFile(cfg.Lists.Path)
		if err != nil {
			return a.report(err)
		}
		lister = static
	}

	var opts []navpanel.Option
	if cfg.Catalog.Path != "" {
		data, err := os.ReadFile(cfg.Catalog.Path)
		if err != nil {
			return a.report(fmt.Errorf("read icon catalog: %w", err))
		}
		opts = append(opts, navpanel.WithCatalogData(data))
	}

	panel, err := navpanel.New(lister, opts...)
	if err != nil {
		return a.report(err)
	}
	a.panel = panel
	a.logger.Debug().
		Str("catalog", cfg.Catalog.Path).
		Str("lists", cfg.Lists.Path).
		Msg("panel ready")
	return nil
}

// run adapts a command body so its error is logged before cobra returns it;
// cobra's own error printing is silenced.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return a.report(err)
		}
		return nil
	}
}

// report logs err and returns it. Before configuration is loaded there is no
// logger yet, so the error is written as plain text.
func (a *app) report(err error) error {
	if a.cfg == nil {
		fmt.Fprintf(a.errOut, "sensenav: %v\n", err)
		return err
	}
	a.logger.Error().Err(err).Msg("command failed")
	return err
}

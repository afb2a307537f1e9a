package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sensenav/components/icons"
	"github.com/goliatone/go-sensenav/internal/api"
	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/navpanel"
	"github.com/goliatone/go-sensenav/pkg/validation"
)

var (
	errInvalidLayout = errors.New("layout is invalid")
	errLintFailed    = errors.New("panel has lint issues")
)

func (a *app) exportCmd() *cobra.Command {
	var (
		format  string
		resolve bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the property panel definition",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			panel := a.panel
			if resolve {
				resolved, err := model.NewResolver(model.WithLogger(a.logger)).Resolve(cmd.Context(), panel)
				if err != nil {
					return err
				}
				panel = resolved
			}
			return a.write(format, panel)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "inline host lists into the dropdown options")
	return cmd
}

func (a *app) iconsCmd() *cobra.Command {
	var (
		query string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "List the icon options offered by the panel",
		Args:  cobra.NoArgs,
		RunE: a.run(func(*cobra.Command, []string) error {
			field, ok := model.FindRef(a.panel, navpanel.RefButtonIcon)
			if !ok {
				return fmt.Errorf("icon field %s not found", navpanel.RefButtonIcon)
			}
			results := icons.Search(field.Options, query, limit)
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, option := range results {
				fmt.Fprintf(tw, "%v\t%s\n", option.Value, option.Label)
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by label or id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of icons (0 lists all)")
	return cmd
}

func (a *app) defaultsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the layout a new object starts with",
		Args:  cobra.NoArgs,
		RunE: a.run(func(*cobra.Command, []string) error {
			layout, err := model.Defaults(a.panel)
			if err != nil {
				return err
			}
			return a.write(format, layout)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	return cmd
}

func (a *app) visibleCmd() *cobra.Command {
	var (
		layoutPath string
		all        bool
	)
	cmd := &cobra.Command{
		Use:   "visible",
		Short: "Print the refs a layout shows",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			layout, err := readLayout(layoutPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			states, err := model.Evaluate(a.panel, layout)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, state := range states {
				switch {
				case all:
					fmt.Fprintf(tw, "%s\t%t\n", state.Ref, state.Visible)
				case state.Visible:
					fmt.Fprintln(tw, state.Ref)
				}
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "-", "layout file (JSON or YAML, - for stdin)")
	cmd.Flags().BoolVar(&all, "all", false, "list hidden refs too")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var layoutPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a layout against the panel",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			layout, err := readLayout(layoutPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			result := validation.ValidateLayout(cmd.Context(), a.panel, layout)
			return a.printResult(result, errInvalidLayout)
		}),
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "-", "layout file (JSON or YAML, - for stdin)")
	return cmd
}

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check the panel definition for structural problems",
		Args:  cobra.NoArgs,
		RunE: a.run(func(*cobra.Command, []string) error {
			return a.printResult(validation.LintPanel(a.panel), errLintFailed)
		}),
	}
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the panel over HTTP",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			handler, err := a.router()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, handler)
		}),
	}
	cmd.Flags().StringVar(&a.addr, "addr", "", "listen address (default :8080)")
	return cmd
}

// router serves the panel built by setup, so the icon endpoint lists the
// same catalog as the icons command.
func (a *app) router() (http.Handler, error) {
	return api.NewRouter(a.panel, api.WithLogger(a.logger))
}

func (a *app) serve(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	a.logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *app) printResult(result validation.Result, failure error) error {
	if result.Valid {
		fmt.Fprintln(a.out, "ok")
		return nil
	}
	for _, issue := range result.Issues {
		location := issue.Field
		if location == "" {
			location = "(document)"
		}
		fmt.Fprintf(a.out, "%s: %s\n", location, issue.Message)
	}
	return failure
}

func (a *app) write(format string, value any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml", "yml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// readLayout decodes a layout document from path, or from stdin when path is
// "-". Files ending in .yaml or .yml are decoded as YAML.
func readLayout(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	layout := map[string]any{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return layout, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &layout)
	default:
		err = json.Unmarshal(data, &layout)
	}
	if err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", path, err)
	}
	return layout, nil
}

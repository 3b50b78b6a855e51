package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"world-report/internal/config"
	"world-report/internal/menu"
	"world-report/internal/observability/logging"
	"world-report/internal/query"
	"world-report/internal/render"
)

type rootOptions struct {
	configFile string
	write      bool
	reportDir  string
	logLevel   string
}

type reportOptions struct {
	family string
	scope  string
	filter string
	top    int
	hasTop bool
	out    string
}

// newRootCmd builds the command tree. Running the root without a
// subcommand starts the menu.
func newRootCmd(factory appFactory, in io.Reader, out io.Writer) *cobra.Command {
	var (
		opts   rootOptions
		a      *app
		logger *slog.Logger
	)

	root := &cobra.Command{
		Use:           "world-report",
		Short:         "Population reports over the world database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger = logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			slog.SetDefault(logger)

			ctx := logging.WithLogger(cmd.Context(), logger)
			cmd.SetContext(ctx)

			if cfg.Metrics.Enabled {
				startMetricsServer(ctx, logger, cfg.Metrics.Port)
			}

			a, err = factory(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("startup: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.shutdown(logger)
			return runMenu(cmd, a, in, out)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file (overrides REPORT_CONFIG_FILE)")
	flags.BoolVar(&opts.write, "write", false, "also write every report as Markdown (overrides REPORT_WRITE)")
	flags.StringVar(&opts.reportDir, "report-dir", "", "directory for Markdown reports (overrides REPORT_DIR)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	root.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Run the interactive report menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.shutdown(logger)
			return runMenu(cmd, a, in, out)
		},
	})
	root.AddCommand(newReportCmd(&a, &logger, out))

	return root
}

func newReportCmd(a **app, logger **slog.Logger, out io.Writer) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a single report and print it",
		Long: `Run one report variant through the same engine as the menu.

Examples:
  # Top 3 cities of a district
  world-report report --family city --scope district --filter Kabol --top 3

  # Population breakdown of every continent, saved as Markdown
  world-report report --family breakdown --scope continent --write --out breakdown.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer (*a).shutdown(*logger)
			opts.hasTop = cmd.Flags().Changed("top")
			req, err := opts.request()
			if err != nil {
				return err
			}
			var saver menu.Saver
			if (*a).saver != nil {
				saver = (*a).saver
				if opts.out != "" {
					saver = namedSaver{saver: saver, name: opts.out}
				}
			}
			return menu.Execute(cmd.Context(), out, (*a).runner, saver, req)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.family, "family", "", "country, city, capital, breakdown, population or language")
	flags.StringVar(&opts.scope, "scope", "world", "world, continent, region, country, district or city")
	flags.StringVar(&opts.filter, "filter", "", "scope value, e.g. a continent name")
	flags.IntVar(&opts.top, "top", 0, "limit to the N most populous rows")
	flags.StringVar(&opts.out, "out", "", "Markdown file name (default derived from the report)")
	_ = cmd.MarkFlagRequired("family")

	return cmd
}

// request converts the flags into a report request. --top given with any
// value, including zero or a negative number, selects a top-N report.
func (o reportOptions) request() (query.Request, error) {
	family, err := query.ParseFamily(o.family)
	if err != nil {
		return query.Request{}, err
	}
	scope, err := query.ParseScope(o.scope)
	if err != nil {
		return query.Request{}, err
	}
	if scope.Filtered() && o.filter == "" && family != query.FamilyPopulationBreakdown {
		return query.Request{}, fmt.Errorf("--filter is required for scope %s", scope)
	}

	req := query.Request{Family: family, Scope: scope, Filter: o.filter, Cardinality: query.All()}
	if o.hasTop {
		req.Cardinality = query.Top(o.top)
	}
	return req, nil
}

// needsApp reports whether cmd runs reports. Help and completion do not
// touch the store.
func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return cmd.Parent() == nil || cmd.Parent().Name() != "completion"
}

func runMenu(cmd *cobra.Command, a *app, in io.Reader, out io.Writer) error {
	var opts []menu.Option
	if a.saver != nil {
		opts = append(opts, menu.WithSaver(a.saver))
	}
	err := menu.New(in, out, a.runner, opts...).Start(cmd.Context())
	if cmd.Context().Err() != nil {
		// interrupted by a signal
		return nil
	}
	return err
}

// loadConfig reads the configuration and applies root flag overrides.
func loadConfig(cmd *cobra.Command, opts rootOptions) (*config.Config, error) {
	if opts.configFile != "" {
		if err := os.Setenv("REPORT_CONFIG_FILE", opts.configFile); err != nil {
			return nil, err
		}
	}

	cfg, warnings, err := config.Load()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		slog.Warn("configuration fallback applied", slog.String("warning", w))
	}

	flags := cmd.Flags()
	if flags.Changed("write") {
		cfg.Report.Write = opts.write
	}
	if flags.Changed("report-dir") {
		cfg.Report.Dir = opts.reportDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// namedSaver writes under a fixed file name.
type namedSaver struct {
	saver menu.Saver
	name  string
}

func (n namedSaver) Save(_ string, t render.Table) string {
	return n.saver.Save(n.name, t)
}

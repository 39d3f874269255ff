package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/foodtruckfinder/internal/cli/pagination"
	"github.com/rshade/foodtruckfinder/internal/config"
	"github.com/rshade/foodtruckfinder/internal/engine"
	"github.com/rshade/foodtruckfinder/internal/foodtruck"
	"github.com/rshade/foodtruckfinder/internal/logging"
	"github.com/rshade/foodtruckfinder/internal/socrata"
	"github.com/rshade/foodtruckfinder/internal/tui"
	"github.com/rshade/foodtruckfinder/pkg/version"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags holds the values of the root command's persistent flags.
type rootFlags struct {
	configPath    string
	debug         bool
	baseURL       string
	fetchLimit    int
	appToken      string
	timeout       time.Duration
	pageSize      int
	sort          string
	noRowNumbers  bool
	maxWidth      int
	output        string
	skipMalformed bool
	timezone      string
	day           string
	clock         string
}

// NewRootCmd creates the root Cobra command for the foodtruckfinder CLI.
// Running it without a subcommand browses the trucks open now.
func NewRootCmd(ver string) *cobra.Command {
	var flags rootFlags
	var logResult *logging.LogPathResult
	closeLog := func() error {
		r := logResult
		logResult = nil
		return cleanupLogging(r)
	}

	cmd := &cobra.Command{
		Use:           "foodtruckfinder",
		Short:         "List San Francisco food trucks that are open right now",
		Long:          "foodtruckfinder pages through the city's mobile food permit dataset and shows the trucks open right now, ten at a time.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg, &flags)
			if err = cfg.Validate(); err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Cobra skips PersistentPostRunE when RunE fails.
			err := runBrowse(cmd, config.GetGlobalConfig())
			if closeErr := closeLog(); err == nil {
				err = closeErr
			}
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML config file (default ~/.foodtruckfinder/config.yaml)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.baseURL, "base-url", socrata.DefaultBaseURL, "Socrata dataset endpoint")
	pf.IntVar(&flags.fetchLimit, "fetch-limit", socrata.DefaultLimit, "records requested per upstream call")
	pf.StringVar(&flags.appToken, "app-token", "", "Socrata application token")
	pf.DurationVar(&flags.timeout, "timeout", config.DefaultTimeout, "timeout for each upstream request (0 = none)")
	pf.IntVar(&flags.pageSize, "page-size", pagination.DefaultPageSize, "trucks shown per page")
	pf.StringVar(&flags.sort, "sort", "", "sort each page: name, address, name:desc, ...")
	pf.BoolVar(&flags.noRowNumbers, "no-row-numbers", false, "hide the # column")
	pf.IntVar(&flags.maxWidth, "max-width", tui.DefaultMaxWidth, "truncate cells longer than this (0 = never)")
	pf.StringVarP(&flags.output, "output", "o", tui.FormatTable, "output format: table or plain")
	pf.BoolVar(&flags.skipMalformed, "skip-malformed", false, "skip records with unparseable hours instead of failing")
	pf.StringVar(&flags.timezone, "timezone", "", "IANA timezone used for \"now\" (default local)")
	pf.StringVar(&flags.day, "day", "", "pretend today is this weekday (e.g. Monday)")
	pf.StringVar(&flags.clock, "time", "", "pretend the time is HH:MM")

	cmd.AddCommand(newVersionCmd(ver), newConfigCmd())
	return cmd
}

const rootCmdExample = `  # Show the trucks open now, ten at a time
  foodtruckfinder

  # Sort each page by name and show 20 per page
  foodtruckfinder --sort name --page-size 20

  # What is open on Saturday at 11:30?
  foodtruckfinder --day Saturday --time 11:30

  # Plain columns for piping
  foodtruckfinder --output plain < answers.txt

  # Print the effective configuration
  foodtruckfinder config show`

// applyFlagOverrides copies explicitly set flags onto cfg; CLI flags beat
// environment variables and the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, f *rootFlags) {
	changed := cmd.Flags().Changed

	if changed("base-url") {
		cfg.Upstream.BaseURL = f.baseURL
	}
	if changed("fetch-limit") {
		cfg.Upstream.FetchLimit = f.fetchLimit
	}
	if changed("app-token") {
		cfg.Upstream.AppToken = f.appToken
	}
	if changed("timeout") {
		cfg.Upstream.Timeout = f.timeout
	}
	if changed("page-size") {
		cfg.Display.PageSize = f.pageSize
	}
	if changed("sort") {
		cfg.Display.Sort = f.sort
	}
	if changed("no-row-numbers") {
		cfg.Display.RowNumbers = !f.noRowNumbers
	}
	if changed("max-width") {
		cfg.Display.MaxWidth = f.maxWidth
	}
	if changed("output") {
		cfg.Display.Format = f.output
	}
	if changed("skip-malformed") {
		cfg.Filter.SkipMalformed = f.skipMalformed
	}
	if changed("timezone") {
		cfg.Filter.Timezone = f.timezone
	}
	if changed("day") {
		cfg.Filter.Day = f.day
	}
	if changed("time") {
		cfg.Filter.Time = f.clock
	}
}

// runBrowse wires the client, session and renderer from cfg and runs the
// interactive loop on the command's streams.
func runBrowse(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, err := socrata.NewClient(cfg.Upstream.BaseURL,
		socrata.WithLimit(cfg.Upstream.FetchLimit),
		socrata.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
		socrata.WithAppToken(cfg.Upstream.AppToken),
		socrata.WithUserAgent(version.UserAgent()),
	)
	if err != nil {
		return err
	}

	now, err := cfg.Filter.Moment(time.Now())
	if err != nil {
		return err
	}

	session, err := engine.NewSession(client, engine.SessionConfig{
		PageSize:   cfg.Display.PageSize,
		FetchLimit: client.Limit(),
		Policy:     cfg.Filter.Policy(),
		Now: func() foodtruck.Moment {
			m, momentErr := cfg.Filter.Moment(time.Now())
			if momentErr != nil {
				return now
			}
			return m
		},
	})
	if err != nil {
		return err
	}

	display, err := pagination.NewDisplayParamsFromFlags(cfg.Display.PageSize, cfg.Display.Sort)
	if err != nil {
		return err
	}

	renderer, err := tui.NewTableRenderer(tui.RenderOptions{
		Format:     cfg.Display.Format,
		RowNumbers: cfg.Display.RowNumbers,
		MaxWidth:   cfg.Display.MaxWidth,
		Styled:     isTerminalWriter(out),
	})
	if err != nil {
		return err
	}

	summary, browseErr := Browse(ctx, session, renderer, BrowseOptions{
		Now:         now,
		Display:     display,
		Sorter:      pagination.NewTruckSorter(),
		EchoNewline: !isTerminalReader(cmd.InOrStdin()),
	}, cmd.InOrStdin(), out)

	logger.Info().Ctx(ctx).
		Int("pages", summary.Pages).
		Int("trucks", summary.Trucks).
		Int("scanned", summary.Scanned).
		Int("fetches", summary.Fetches).
		Float64("match_rate", summary.MatchRate).
		Dur("elapsed", summary.Elapsed).
		Int("offset", session.Offset()).
		Int("buffered", session.Buffered()).
		Msg("browse finished")

	if err = PrintSummary(cmd.ErrOrStderr(), summary); err != nil && browseErr == nil {
		return err
	}
	return browseErr
}

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

// isTerminalReader reports whether r is a terminal.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && tui.IsTerminal(f)
}

// newVersionCmd prints the build version.
func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			channel := "development build"
			if version.IsRelease() {
				channel = "release"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "foodtruckfinder %s (%s)\n", ver, channel)
			return err
		},
	}
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration commands"}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.GetGlobalConfig().Redacted())
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

// Package app contains the bookdesk command tree. Commands are thin page
// controllers: they dispatch through the shared session, read the resulting
// cache snapshots, and render them.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kgrae/bookdesk/internal/bookapi"
	"github.com/kgrae/bookdesk/internal/config"
	"github.com/kgrae/bookdesk/internal/session"
)

var (
	cfg  config.Config
	sess *session.Session

	flagConfig      string
	flagAPI         string
	flagNoColor     bool
	flagOutput      string
	flagMetricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "bookdesk",
	Short: "Back-office client for the bookstore service",
	Long: `bookdesk is a terminal client for an online bookstore's HTTP API:
catalog browsing, book detail views, a shopping cart, and admin commands
for books, authors, publishers, and categories.

Run 'bookdesk' with no arguments to launch the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context())
	},
}

// Execute runs the command tree until completion or ctx cancellation.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/bookdesk/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Book service URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format: table, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		color.NoColor = color.NoColor || flagNoColor

		switch flagOutput {
		case "table", "json", "yaml":
		default:
			return fmt.Errorf("unknown output format %q", flagOutput)
		}

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if url := strings.TrimSpace(flagAPI); url != "" {
			cfg.APIURL = url
		}

		metrics := bookapi.NewMetrics()
		api, err := bookapi.NewClient(cfg.APIURL)
		if err != nil {
			return fmt.Errorf("init api client: %w", err)
		}
		api.WithTimeout(cfg.Timeout).WithMetrics(metrics)
		sess = session.New(api)

		if addr := strings.TrimSpace(flagMetricsAddr); addr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			go func() {
				if err := http.ListenAndServe(addr, mux); err != nil {
					warn("metrics listener: %v", err)
				}
			}()
		}
		return nil
	}

	rootCmd.AddCommand(
		newBrowseCmd(),
		newBooksCmd(),
		newAuthorsCmd(),
		newPublishersCmd(),
		newCategoriesCmd(),
		newVersionCmd(),
	)
}

// PrintError writes a fatal command error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

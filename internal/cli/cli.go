package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/williampepple1/bondsports-scraper/internal/config"
	"github.com/williampepple1/bondsports-scraper/internal/dom"
	"github.com/williampepple1/bondsports-scraper/internal/io"
	"github.com/williampepple1/bondsports-scraper/internal/logging"
	"github.com/williampepple1/bondsports-scraper/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds the persistent flags
type options struct {
	configFile string
	engine     string
	logLevel   string
	logFormat  string
	headless   bool
	out        string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "scraper",
		Short: "Scrape BondSports volleyball training sessions and camps to JSON",
		Long: `Loads BondSports program pages in a headless browser, extracts the
session and camp cards, and writes them to a JSON file.

Categories that fail to load are written with an empty event list; the
command only fails when the browser cannot be started or the output
cannot be written.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to configuration file (YAML)")
	flags.StringVar(&opts.engine, "engine", "", "DOM driver: chromedp, playwright or http")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	flags.BoolVar(&opts.headless, "headless", true, "Run the browser headless")
	flags.StringVar(&opts.out, "out", "", "Output file path")

	cmd.AddCommand(newTrainingCmd(opts), newCampsCmd(opts))
	return cmd
}

func newTrainingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "training",
		Short: "Scrape the configured training categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, s *scraper.Scraper, cfg *config.AppConfig) (any, string, error) {
				payload, err := s.RunTraining(ctx, cfg.Training.Categories)
				return payload, cfg.Training.OutputFile, err
			})
		},
	}
}

func newCampsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "camps",
		Short: "Scrape the camps page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, s *scraper.Scraper, cfg *config.AppConfig) (any, string, error) {
				payload, err := s.RunCamps(ctx, cfg.Camps.URL, cfg.CampsSignupURL())
				return payload, cfg.Camps.OutputFile, err
			})
		},
	}
}

type runFunc func(ctx context.Context, s *scraper.Scraper, cfg *config.AppConfig) (payload any, outPath string, err error)

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig(cmd *cobra.Command, opts *options) (*config.AppConfig, error) {
	cfg := config.CreateDefault()
	if opts.configFile != "" {
		var err error
		cfg, err = config.Load(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
	}

	if opts.engine != "" {
		cfg.Browser.Engine = config.Engine(opts.engine)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = opts.headless
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, fn runFunc) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	browser, err := acquireBrowser(ctx, cfg)
	if err != nil {
		return fmt.Errorf("acquiring browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Warn("closing browser failed", "error", err)
		}
	}()

	payload, outPath, err := fn(ctx, scraper.New(browser, cfg, log), cfg)
	if err != nil {
		return err
	}

	if opts.out != "" {
		outPath = opts.out
	}
	if err := io.NewPayloadWriter(outPath).Write(payload); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info("wrote output", "path", outPath)
	return nil
}

// acquireBrowser is swapped in tests
var acquireBrowser = func(ctx context.Context, cfg *config.AppConfig) (dom.Browser, error) {
	return scraper.NewBrowser(ctx, cfg)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}

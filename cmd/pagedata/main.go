package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/config"
	"github.com/fwojciec/pagedata/harvest"
	pdslog "github.com/fwojciec/pagedata/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Source overrides the page source built from configuration.
	// Set before calling Run(); used for end-to-end testing.
	Source pagedata.PageSource
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagedata"),
		kong.Description("Recover structured data embedded in web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagedata --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}
	aggregator := pagedata.NewAggregator(logger, pdslog.WrapExtractors(logger, newExtractors(cfg, classifier, logger)...)...)

	deps.Config = cfg
	deps.Logger = logger
	deps.Aggregator = aggregator

	if needsSource(kongCtx.Command(), cli) {
		src := m.Source
		if src == nil {
			src, err = newSource(cfg, logger)
			if err != nil {
				if cfg.Engine == config.EngineBrowser {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --engine browser")
				}
				return fmt.Errorf("failed to start page source: %w", err)
			}
			defer src.Close()
		}
		deps.Source = src
		deps.Harvester = &harvest.Harvester{
			Source:      src,
			Aggregator:  aggregator,
			RateLimiter: harvest.NewDomainLimiter(cfg.RatePerSecond),
			Concurrency: cfg.Concurrency,
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the configuration file and environment, then applies
// command-line overrides.
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.Engine != "" {
		cfg.Engine = cli.Engine
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.Concurrency > 0 {
		cfg.Concurrency = cli.Concurrency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// needsSource reports whether the parsed command captures pages.
func needsSource(command string, cli *CLI) bool {
	name, _, _ := strings.Cut(command, " ")
	if name == "search" && cli.Search.Doc != "" {
		return false
	}
	return true
}

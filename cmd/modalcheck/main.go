// Command modalcheck runs the calculator modal regression suite against a
// live page and compares every displayed value with the reference
// calculator.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"loan-quote/config"
	"loan-quote/harness"
	"loan-quote/service"
)

var errScenariosFailed = errors.New("modal scenarios failed")

type options struct {
	baseURL  string
	headless bool
	timeout  time.Duration
	only     []string
	list     bool
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errScenariosFailed) {
			fmt.Fprintln(os.Stderr, "modalcheck:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "modalcheck",
		Short:         "Verify the loan calculator modal against the reference quotes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// A broken configuration only matters when it would supply the URL.
	defaultBase := config.DefaultModalBaseURL
	cfg, cfgErr := config.Load()
	if cfgErr == nil {
		defaultBase = cfg.ModalBaseURL
	}
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil && !cmd.Flags().Changed("base-url") {
			return fmt.Errorf("load config (pass --base-url to skip it): %w", cfgErr)
		}
		return run(cmd.Context(), opts)
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.baseURL, "base-url", defaultBase, "page hosting the calculator modal")
	flags.BoolVar(&opts.headless, "headless", true, "run Chromium without a window")
	flags.DurationVar(&opts.timeout, "timeout", harness.DefaultTimeout, "timeout for each browser action and expectation")
	flags.StringSliceVar(&opts.only, "only", nil, "run only scenarios whose name contains one of these")
	flags.BoolVar(&opts.list, "list", false, "print scenario names and exit")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	scenarios := harness.Select(harness.DefaultScenarios(), opts.only)
	if opts.list {
		for _, scenario := range scenarios {
			fmt.Println(scenario.Name)
		}
		return nil
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenario matches %v", opts.only)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, err := harness.LaunchPlaywright(harness.PlaywrightOptions{
		Headless: opts.headless,
		Timeout:  opts.timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := driver.Close(); err != nil {
			logger.Warn("failed to close browser", "error", err)
		}
	}()

	runner := harness.NewRunner(driver, opts.baseURL, service.NewDefaultCalculator(), logger)
	runner.Timeout = opts.timeout

	logger.Info("checking modal", "base_url", opts.baseURL, "scenarios", len(scenarios))
	report := runner.Run(ctx, scenarios)
	logger.Info("done", "summary", report.Summary())

	if !report.Passed() {
		return errScenariosFailed
	}
	return nil
}

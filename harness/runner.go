package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"loan-quote/service"
)

const (
	DefaultTimeout      = 5 * time.Second
	defaultPollInterval = 100 * time.Millisecond
)

type Result struct {
	Name     string
	Err      error
	Skipped  bool
	Duration time.Duration
}

func (r Result) Passed() bool {
	return r.Err == nil && !r.Skipped
}

type Report struct {
	Results []Result
}

// Passed is true when every scenario ran and passed.
func (r Report) Passed() bool {
	for _, result := range r.Results {
		if !result.Passed() {
			return false
		}
	}
	return true
}

func (r Report) Failures() []Result {
	var failed []Result
	for _, result := range r.Results {
		if !result.Passed() {
			failed = append(failed, result)
		}
	}
	return failed
}

func (r Report) Summary() string {
	passed, skipped := 0, 0
	for _, result := range r.Results {
		switch {
		case result.Passed():
			passed++
		case result.Skipped:
			skipped++
		}
	}
	failed := len(r.Results) - passed - skipped
	return fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
}

type Runner struct {
	driver       Driver
	baseURL      string
	calc         *service.Calculator
	logger       *slog.Logger
	Timeout      time.Duration
	PollInterval time.Duration
}

// NewRunner creates a Runner. A nil logger falls back to slog.Default().
func NewRunner(driver Driver, baseURL string, calc *service.Calculator, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		driver:       driver,
		baseURL:      baseURL,
		calc:         calc,
		logger:       logger,
		Timeout:      DefaultTimeout,
		PollInterval: defaultPollInterval,
	}
}

// Run executes scenarios one after another. Each starts from the landing
// page. Once ctx is done the remaining scenarios are reported as skipped.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) Report {
	report := Report{Results: make([]Result, 0, len(scenarios))}

	for _, scenario := range scenarios {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, Result{Name: scenario.Name, Err: err, Skipped: true})
			continue
		}

		start := time.Now()
		err := r.runOne(ctx, scenario)
		result := Result{Name: scenario.Name, Err: err, Duration: time.Since(start)}
		report.Results = append(report.Results, result)

		if err != nil {
			r.logger.ErrorContext(ctx, "scenario failed", "scenario", scenario.Name, "duration", result.Duration, "error", err)
		} else {
			r.logger.InfoContext(ctx, "scenario passed", "scenario", scenario.Name, "duration", result.Duration)
		}
	}
	return report
}

func (r *Runner) runOne(ctx context.Context, scenario Scenario) error {
	if resetter, ok := r.driver.(Resetter); ok {
		if err := resetter.Reset(); err != nil {
			return fmt.Errorf("reset browser: %w", err)
		}
	}

	session := &Session{
		ctx:      ctx,
		driver:   r.driver,
		baseURL:  r.baseURL,
		calc:     r.calc,
		timeout:  r.Timeout,
		interval: r.PollInterval,
	}
	if err := session.OpenDefault(); err != nil {
		return fmt.Errorf("open modal: %w", err)
	}
	return scenario.Run(session)
}

// Select keeps scenarios whose name contains any of the filters, ignoring
// case. No filters keeps everything.
func Select(scenarios []Scenario, filters []string) []Scenario {
	if len(filters) == 0 {
		return scenarios
	}
	var selected []Scenario
	for _, scenario := range scenarios {
		name := strings.ToLower(scenario.Name)
		for _, filter := range filters {
			if strings.Contains(name, strings.ToLower(filter)) {
				selected = append(selected, scenario)
				break
			}
		}
	}
	return selected
}

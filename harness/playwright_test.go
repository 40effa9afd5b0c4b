package harness

import (
	"context"
	"os"
	"testing"

	"loan-quote/config"
	"loan-quote/service"
)

// TestPlaywright_LiveModal runs the suite against the real page. It needs a
// Playwright install and network access, so it only runs with
// LOAN_MODAL_LIVE=1.
func TestPlaywright_LiveModal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if os.Getenv("LOAN_MODAL_LIVE") != "1" {
		t.Skip("set LOAN_MODAL_LIVE=1 to run against the live modal")
	}

	baseURL := os.Getenv("MODAL_BASE_URL")
	if baseURL == "" {
		baseURL = config.DefaultModalBaseURL
	}

	driver, err := LaunchPlaywright(PlaywrightOptions{Headless: true, Timeout: DefaultTimeout})
	if err != nil {
		t.Skip("Playwright not available:", err)
	}
	defer driver.Close()

	report := NewRunner(driver, baseURL, service.NewDefaultCalculator(), nil).Run(context.Background(), DefaultScenarios())
	for _, result := range report.Results {
		if result.Err != nil {
			t.Errorf("%s: %v", result.Name, result.Err)
		}
	}
}

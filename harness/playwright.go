package harness

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

type PlaywrightOptions struct {
	Headless bool
	// Timeout bounds every single browser action.
	Timeout time.Duration
}

// PlaywrightDriver runs the scenarios in Chromium.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	timeout time.Duration
}

// LaunchPlaywright starts the Playwright driver and a Chromium instance. The
// browsers must already be installed (see playwright.Install).
func LaunchPlaywright(opts PlaywrightOptions) (*PlaywrightDriver, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	d := &PlaywrightDriver{pw: pw, browser: browser, timeout: opts.Timeout}
	if err := d.Reset(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// Reset replaces the browser context so saved calculator values do not leak
// between scenarios.
func (d *PlaywrightDriver) Reset() error {
	if d.context != nil {
		if err := d.context.Close(); err != nil {
			return fmt.Errorf("close browser context: %w", err)
		}
		d.context, d.page = nil, nil
	}

	bctx, err := d.browser.NewContext()
	if err != nil {
		return fmt.Errorf("new browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return fmt.Errorf("new page: %w", err)
	}

	ms := float64(d.timeout.Milliseconds())
	page.SetDefaultTimeout(ms)
	page.SetDefaultNavigationTimeout(ms)

	d.context, d.page = bctx, page
	return nil
}

func (d *PlaywrightDriver) Navigate(url string) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (d *PlaywrightDriver) Fill(selector, value string) error {
	return d.page.Locator(selector).First().Fill(value)
}

func (d *PlaywrightDriver) Click(selector string) error {
	return d.page.Locator(selector).First().Click()
}

func (d *PlaywrightDriver) ClickAt(x, y float64) error {
	return d.page.Mouse().Click(x, y)
}

func (d *PlaywrightDriver) Text(selector string) (string, error) {
	return d.page.Locator(selector).First().TextContent()
}

func (d *PlaywrightDriver) Value(selector string) (string, error) {
	return d.page.Locator(selector).First().InputValue()
}

// Visible does not wait; Session retries it.
func (d *PlaywrightDriver) Visible(selector string) (bool, error) {
	return d.page.Locator(selector).First().IsVisible()
}

func (d *PlaywrightDriver) Close() error {
	var errs []error
	if d.context != nil {
		errs = append(errs, d.context.Close())
	}
	if d.browser != nil {
		errs = append(errs, d.browser.Close())
	}
	if d.pw != nil {
		errs = append(errs, d.pw.Stop())
	}
	return errors.Join(errs...)
}

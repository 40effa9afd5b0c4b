package harness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-quote/domain"
	"loan-quote/service"
)

// MismatchError is returned when the page never showed the expected value
// before the timeout.
type MismatchError struct {
	Check string
	Want  string
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: want %q, got %q", e.Check, e.Want, e.Got)
}

// Session is the per-scenario view of the page. Expectations are retried
// until the timeout, like web-first assertions.
type Session struct {
	ctx      context.Context
	driver   Driver
	baseURL  string
	calc     *service.Calculator
	timeout  time.Duration
	interval time.Duration
}

func (s *Session) Driver() Driver {
	return s.driver
}

// Quote is the reference expectation for amount and period.
func (s *Session) Quote(amount string, period int) (domain.LoanQuote, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.LoanQuote{}, fmt.Errorf("scenario amount %q: %w", amount, err)
	}
	return s.calc.Quote(parsed, period)
}

// OpenDefault loads the landing page and waits for the modal.
func (s *Session) OpenDefault() error {
	if err := s.driver.Navigate(s.baseURL); err != nil {
		return fmt.Errorf("navigate %s: %w", s.baseURL, err)
	}
	if err := s.ExpectVisible(ModalHeading); err != nil {
		return err
	}
	return s.ExpectVisible(ContinueButton)
}

// Open loads the modal prefilled from query parameters.
func (s *Session) Open(req domain.LoanRequest) error {
	target, err := ModalURL(s.baseURL, req)
	if err != nil {
		return err
	}
	if err := s.driver.Navigate(target); err != nil {
		return fmt.Errorf("navigate %s: %w", target, err)
	}
	return s.ExpectVisible(ModalHeading)
}

func (s *Session) Fill(selector, value string) error {
	if err := s.driver.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (s *Session) Click(selector string) error {
	if err := s.driver.Click(selector); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// ClickAway clicks the page corner outside the modal.
func (s *Session) ClickAway() error {
	if err := s.driver.ClickAt(10, 10); err != nil {
		return fmt.Errorf("click outside modal: %w", err)
	}
	return nil
}

func (s *Session) ExpectValue(selector, want string) error {
	return s.eventually("value of "+selector, want, func() (string, error) {
		return s.driver.Value(selector)
	})
}

// ExpectText compares with whitespace collapsed.
func (s *Session) ExpectText(selector, want string) error {
	return s.eventually("text of "+selector, want, func() (string, error) {
		got, err := s.driver.Text(selector)
		return strings.Join(strings.Fields(got), " "), err
	})
}

func (s *Session) ExpectVisible(selector string) error {
	return s.eventually("visibility of "+selector, "visible", func() (string, error) {
		visible, err := s.driver.Visible(selector)
		if visible {
			return "visible", err
		}
		return "hidden", err
	})
}

func (s *Session) eventually(check, want string, observe func() (string, error)) error {
	deadline := time.Now().Add(s.timeout)
	for {
		got, err := observe()
		if err == nil && got == want {
			return nil
		}
		if !time.Now().Before(deadline) {
			if err != nil {
				return fmt.Errorf("%s: %w", check, err)
			}
			return &MismatchError{Check: check, Want: want, Got: got}
		}

		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

package harness

import (
	"strconv"

	"github.com/shopspring/decimal"

	"loan-quote/domain"
)

type Scenario struct {
	Name string
	Run  func(s *Session) error
}

// DefaultScenarios is the modal regression suite.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "modal loads with expected URL values", Run: openFromURL("5000", 60)},
		{Name: "amount choice is saved after continue", Run: amountSaved("17000")},
		{Name: "period choice is saved after continue", Run: periodSaved(86)},
		{Name: "URL values cannot break max limits", Run: openFromURL("40000", 240)},
		{Name: "URL values cannot break min limits", Run: openFromURL("100", 1)},
		{Name: "inputs above max are autocorrected", Run: inputsAutocorrected("50000", 360)},
		{Name: "inputs below min are autocorrected", Run: inputsAutocorrected("300", 1)},
		{Name: "clicking away does not save values", Run: clickAwayDiscards("17000")},
		{Name: "monthly payment APRC check 1", Run: paymentFor("10000", 60)},
		{Name: "monthly payment APRC check 2", Run: paymentFor("30000", 60)},
		{Name: "amounts with fractional part", Run: paymentFor("10000.99", 60)},
	}
}

// openFromURL opens the modal through query parameters and expects the
// inputs to show the clamped values and the payment to match.
func openFromURL(amount string, period int) func(s *Session) error {
	return func(s *Session) error {
		quote, err := s.Quote(amount, period)
		if err != nil {
			return err
		}

		err = s.Open(domain.LoanRequest{
			Amount:      decimal.RequireFromString(amount),
			Period:      period,
			ProductName: DefaultProduct,
			LoanPurpose: DefaultPurpose,
		})
		if err != nil {
			return err
		}

		if err := s.ExpectValue(AmountInput, FormatInputAmount(quote.ClampedAmount)); err != nil {
			return err
		}
		if err := s.ExpectValue(PeriodInput, strconv.Itoa(quote.ClampedPeriod)); err != nil {
			return err
		}
		if err := s.ExpectVisible(PaymentSelector(quote.MonthlyPayment)); err != nil {
			return err
		}
		return s.ExpectVisible(ContinueButton)
	}
}

func amountSaved(amount string) func(s *Session) error {
	return func(s *Session) error {
		quote, err := s.Quote(amount, DefaultPeriod)
		if err != nil {
			return err
		}
		if err := s.Fill(AmountInput, amount); err != nil {
			return err
		}
		if err := s.Click(ContinueButton); err != nil {
			return err
		}
		return s.ExpectText(SummaryAmount, FormatSummaryAmount(quote.ClampedAmount))
	}
}

func periodSaved(period int) func(s *Session) error {
	return func(s *Session) error {
		quote, err := s.Quote(DefaultAmount.String(), period)
		if err != nil {
			return err
		}
		if err := s.Fill(PeriodInput, strconv.Itoa(period)); err != nil {
			return err
		}
		if err := s.Click(ContinueButton); err != nil {
			return err
		}
		if err := s.Click(EditButton); err != nil {
			return err
		}
		return s.ExpectValue(PeriodInput, strconv.Itoa(quote.ClampedPeriod))
	}
}

// inputsAutocorrected types out-of-range values, saves, and expects both to
// snap to the nearest bound.
func inputsAutocorrected(amount string, period int) func(s *Session) error {
	return func(s *Session) error {
		quote, err := s.Quote(amount, period)
		if err != nil {
			return err
		}
		if err := s.Fill(AmountInput, amount); err != nil {
			return err
		}
		if err := s.Fill(PeriodInput, strconv.Itoa(period)); err != nil {
			return err
		}
		if err := s.Click(ContinueButton); err != nil {
			return err
		}
		if err := s.ExpectText(SummaryAmount, FormatSummaryAmount(quote.ClampedAmount)); err != nil {
			return err
		}
		if err := s.Click(EditButton); err != nil {
			return err
		}
		return s.ExpectValue(PeriodInput, strconv.Itoa(quote.ClampedPeriod))
	}
}

func clickAwayDiscards(amount string) func(s *Session) error {
	return func(s *Session) error {
		if err := s.Fill(AmountInput, amount); err != nil {
			return err
		}
		if err := s.ClickAway(); err != nil {
			return err
		}
		return s.ExpectText(SummaryAmount, FormatSummaryAmount(DefaultAmount))
	}
}

func paymentFor(amount string, period int) func(s *Session) error {
	return func(s *Session) error {
		quote, err := s.Quote(amount, period)
		if err != nil {
			return err
		}
		if err := s.Fill(AmountInput, amount); err != nil {
			return err
		}
		if err := s.Fill(PeriodInput, strconv.Itoa(period)); err != nil {
			return err
		}
		return s.ExpectVisible(PaymentSelector(quote.MonthlyPayment))
	}
}

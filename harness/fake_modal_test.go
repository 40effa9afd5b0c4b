package harness

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"loan-quote/service"
)

// referencePayments are the installments the live modal shows, keyed by the
// clamped amount and period.
var referencePayments = map[string]string{
	"5000/60":     "124.21",
	"30000/120":   "495.65",
	"500/6":       "91.39",
	"10000/60":    "244.44",
	"30000/60":    "725.32",
	"10000.99/60": "244.46",
}

// fakeModal behaves like the calculator modal: URL parameters and saved
// values are clamped, typed values are priced live, clicking outside
// discards edits. Payments come from referencePayments; calc only clamps.
type fakeModal struct {
	calc *service.Calculator

	open        bool
	amountInput string
	periodInput string
	savedAmount decimal.Decimal
	savedPeriod int
	paymentSkew decimal.Decimal
	navigateErr error
	navigations []string
	resets      int
}

func newFakeModal() *fakeModal {
	return &fakeModal{calc: service.NewDefaultCalculator()}
}

func (f *fakeModal) Reset() error {
	f.open = false
	f.amountInput, f.periodInput = "", ""
	f.savedAmount, f.savedPeriod = decimal.Zero, 0
	f.resets++
	return nil
}

func (f *fakeModal) Navigate(raw string) error {
	if f.navigateErr != nil {
		return f.navigateErr
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	f.navigations = append(f.navigations, raw)

	amount, period := DefaultAmount.String(), strconv.Itoa(DefaultPeriod)
	if v := u.Query().Get("amount"); v != "" {
		amount = v
	}
	if v := u.Query().Get("period"); v != "" {
		period = v
	}
	f.amountInput, f.periodInput = amount, period
	if err := f.save(); err != nil {
		return err
	}
	f.open = true
	return nil
}

func (f *fakeModal) save() error {
	amount, err := service.ParseAmount(f.amountInput)
	if err != nil {
		return err
	}
	period, err := service.ParsePeriod(f.periodInput)
	if err != nil {
		return err
	}
	f.savedAmount, f.savedPeriod = f.calc.ClampAmount(amount), f.calc.ClampPeriod(period)
	f.showSaved()
	return nil
}

func (f *fakeModal) showSaved() {
	f.amountInput = FormatInputAmount(f.savedAmount)
	f.periodInput = strconv.Itoa(f.savedPeriod)
}

func (f *fakeModal) Fill(selector, value string) error {
	if !f.open {
		return errors.New("modal is closed")
	}
	switch selector {
	case AmountInput:
		f.amountInput = value
	case PeriodInput:
		f.periodInput = value
	default:
		return fmt.Errorf("no input %s", selector)
	}
	return nil
}

func (f *fakeModal) Click(selector string) error {
	switch selector {
	case ContinueButton:
		if !f.open {
			return errors.New("modal is closed")
		}
		if err := f.save(); err != nil {
			return err
		}
		f.open = false
	case EditButton:
		f.open = true
	default:
		return fmt.Errorf("no button %s", selector)
	}
	return nil
}

func (f *fakeModal) ClickAt(x, y float64) error {
	if f.open {
		f.showSaved()
		f.open = false
	}
	return nil
}

func (f *fakeModal) Text(selector string) (string, error) {
	if selector != SummaryAmount {
		return "", fmt.Errorf("no text node %s", selector)
	}
	return " " + FormatSummaryAmount(f.savedAmount) + "\n", nil
}

func (f *fakeModal) Value(selector string) (string, error) {
	switch selector {
	case AmountInput:
		return f.amountInput, nil
	case PeriodInput:
		return f.periodInput, nil
	}
	return "", fmt.Errorf("no input %s", selector)
}

func (f *fakeModal) Visible(selector string) (bool, error) {
	switch {
	case selector == ModalHeading, selector == ContinueButton:
		return f.open, nil
	case strings.HasPrefix(selector, "text=€"):
		if !f.open {
			return false, nil
		}
		payment, err := f.livePayment()
		if err != nil {
			return false, nil
		}
		return selector == PaymentSelector(payment), nil
	}
	return false, nil
}

func (f *fakeModal) livePayment() (decimal.Decimal, error) {
	amount, err := service.ParseAmount(f.amountInput)
	if err != nil {
		return decimal.Zero, err
	}
	period, err := service.ParsePeriod(f.periodInput)
	if err != nil {
		return decimal.Zero, err
	}
	key := f.calc.ClampAmount(amount).String() + "/" + strconv.Itoa(f.calc.ClampPeriod(period))
	payment, ok := referencePayments[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("no reference payment for %s", key)
	}
	return decimal.RequireFromString(payment).Add(f.paymentSkew), nil
}

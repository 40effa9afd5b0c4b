package harness

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"loan-quote/domain"
)

// Selectors of the calculator modal.
const (
	AmountInput    = `input[name="header-calculator-amount"]`
	PeriodInput    = `input[name="header-calculator-period"]`
	ContinueButton = `button[type="button"]:has-text("JÄTKA")`
	SummaryAmount  = `.bb-edit-amount__amount`
	EditButton     = `button:has(.bb-edit-amount__amount)`
	ModalHeading   = `text=Vali sobiv summa ja periood`
)

const (
	DefaultProduct = "SMALL_LOAN"
	DefaultPurpose = "DAILY_SETTLEMENTS"
	DefaultPeriod  = 60
)

// DefaultAmount is what the summary shows before anything is saved.
var DefaultAmount = decimal.NewFromInt(5000)

// ModalURL opens the modal prefilled through query parameters.
func ModalURL(base string, req domain.LoanRequest) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	q := u.Query()
	q.Set("amount", req.Amount.String())
	q.Set("period", strconv.Itoa(req.Period))
	if req.ProductName != "" {
		q.Set("productName", req.ProductName)
	}
	if req.LoanPurpose != "" {
		q.Set("loanPurpose", req.LoanPurpose)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FormatInputAmount renders an amount the way the amount input shows it,
// e.g. "30,000".
func FormatInputAmount(amount decimal.Decimal) string {
	return groupThousands(amount.String())
}

// FormatPayment renders the monthly payment label, e.g. "€495.65".
func FormatPayment(payment decimal.Decimal) string {
	return "€" + groupThousands(payment.StringFixed(2))
}

// FormatSummaryAmount renders the saved amount next to the edit button,
// e.g. "17000 €".
func FormatSummaryAmount(amount decimal.Decimal) string {
	return amount.String() + " €"
}

func PaymentSelector(payment decimal.Decimal) string {
	return "text=" + FormatPayment(payment)
}

func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

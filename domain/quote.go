package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanRequest is what the calculator modal submits: the raw principal and
// term plus the product context carried in the page URL.
type LoanRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Period      int             `json:"period"`
	ProductName string          `json:"productName,omitempty"`
	LoanPurpose string          `json:"loanPurpose,omitempty"`
}

// LoanBounds are the product limits every quote is clamped into.
type LoanBounds struct {
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	MinPeriod int
	MaxPeriod int
}

type LoanQuote struct {
	ClampedAmount  decimal.Decimal `json:"clampedAmount"`
	ClampedPeriod  int             `json:"clampedPeriod"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	AnnualRate     decimal.Decimal `json:"annualRate"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	ProductName    string          `json:"productName,omitempty"`
	LoanPurpose    string          `json:"loanPurpose,omitempty"`

	// Provisional marks a rate interpolated from unobserved anchors.
	Provisional bool `json:"provisional"`
}

// Equal compares two quotes by value. decimal.Decimal keeps its exponent, so
// == on the struct is not reliable.
func (q LoanQuote) Equal(other LoanQuote) bool {
	return q.ClampedAmount.Equal(other.ClampedAmount) &&
		q.ClampedPeriod == other.ClampedPeriod &&
		q.MonthlyPayment.Equal(other.MonthlyPayment) &&
		q.AnnualRate.Equal(other.AnnualRate) &&
		q.TotalPayment.Equal(other.TotalPayment) &&
		q.TotalInterest.Equal(other.TotalInterest) &&
		q.ProductName == other.ProductName &&
		q.LoanPurpose == other.LoanPurpose &&
		q.Provisional == other.Provisional
}

// QuoteRecord is one entry of the quote history.
type QuoteRecord struct {
	Request   LoanRequest `json:"request"`
	Quote     LoanQuote   `json:"quote"`
	CreatedAt time.Time   `json:"createdAt"`
}

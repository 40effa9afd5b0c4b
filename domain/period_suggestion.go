package domain

import "github.com/shopspring/decimal"

type PeriodSuggestionInput struct {
	Amount            decimal.Decimal `json:"amount"`
	MaxMonthlyPayment decimal.Decimal `json:"maxMonthlyPayment"`
	ProductName       string          `json:"productName,omitempty"`
}

type PeriodOption struct {
	Period         int             `json:"period"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

type PeriodSuggestion struct {
	ClampedAmount     decimal.Decimal `json:"clampedAmount"`
	RecommendedPeriod int             `json:"recommendedPeriod"`
	Options           []PeriodOption  `json:"options"`
}

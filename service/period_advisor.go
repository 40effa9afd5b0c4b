package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-quote/domain"
)

type PeriodAdvisor struct {
	calc *Calculator
}

func NewPeriodAdvisor(calc *Calculator) *PeriodAdvisor {
	return &PeriodAdvisor{calc: calc}
}

// Suggest evaluates every period the product allows and keeps the ones whose
// installment fits the budget. The shortest affordable period is recommended
// since it carries the least interest.
func (a *PeriodAdvisor) Suggest(
	input domain.PeriodSuggestionInput,
) (domain.PeriodSuggestion, error) {
	if _, err := resolveProduct(input.ProductName); err != nil {
		return domain.PeriodSuggestion{}, err
	}
	if !input.Amount.IsPositive() {
		return domain.PeriodSuggestion{}, domain.NewInvalidInput("amount", amountText(input.Amount), "must be greater than zero")
	}
	if !input.MaxMonthlyPayment.IsPositive() {
		return domain.PeriodSuggestion{}, domain.NewInvalidInput("maxMonthlyPayment", amountText(input.MaxMonthlyPayment), "must be greater than zero")
	}
	budget := boundBudget(input.MaxMonthlyPayment)

	bounds := a.calc.Bounds()
	options := []domain.PeriodOption{}

	for period := bounds.MinPeriod; period <= bounds.MaxPeriod; period++ {
		quote, err := a.calc.Quote(input.Amount, period)
		if err != nil {
			return domain.PeriodSuggestion{}, fmt.Errorf("quote period %d: %w", period, err)
		}
		if quote.MonthlyPayment.GreaterThan(budget) {
			continue
		}
		options = append(options, domain.PeriodOption{
			Period:         period,
			MonthlyPayment: quote.MonthlyPayment,
			TotalInterest:  quote.TotalInterest,
		})
	}

	if len(options) == 0 {
		return domain.PeriodSuggestion{}, fmt.Errorf("%w: %s at most %s per month",
			domain.ErrNoAffordablePeriod,
			a.calc.ClampAmount(input.Amount).String(),
			budget.StringFixed(2),
		)
	}

	return domain.PeriodSuggestion{
		ClampedAmount:     a.calc.ClampAmount(input.Amount),
		RecommendedPeriod: options[0].Period,
		Options:           options,
	}, nil
}

// boundBudget caps a budget no installment could reach and drops fractions
// below the smallest representable payment.
func boundBudget(budget decimal.Decimal) decimal.Decimal {
	switch digits := integerDigits(budget); {
	case digits > maxIntegerDigits:
		return decimal.New(1, maxIntegerDigits)
	case digits < -maxFractionDigits:
		return decimal.Zero
	}
	return budget.Truncate(maxFractionDigits)
}

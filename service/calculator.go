package service

import (
	"strconv"

	"github.com/shopspring/decimal"

	"loan-quote/domain"
)

// roundToCents rounds half away from zero, which is half-up for the positive
// amounts the calculator produces.
func roundToCents(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// Calculator clamps a request into the product bounds and prices it with an
// amortizing installment. It holds no mutable state and is safe for
// concurrent use.
type Calculator struct {
	bounds   domain.LoanBounds
	schedule *RateSchedule
}

// NewCalculator creates a Calculator for the given bounds and rate schedule.
func NewCalculator(bounds domain.LoanBounds, schedule *RateSchedule) *Calculator {
	return &Calculator{bounds: bounds, schedule: schedule}
}

// NewDefaultCalculator prices SMALL_LOAN.
func NewDefaultCalculator() *Calculator {
	return NewCalculator(SmallLoanBounds, DefaultRateSchedule())
}

func (c *Calculator) Bounds() domain.LoanBounds {
	return c.bounds
}

// Validate rejects amounts and periods that are zero or negative.
func (c *Calculator) Validate(amount decimal.Decimal, period int) error {
	if !amount.IsPositive() {
		return domain.NewInvalidInput("amount", amountText(amount), "must be greater than zero")
	}
	if period <= 0 {
		return domain.NewInvalidInput("period", strconv.Itoa(period), "must be greater than zero")
	}
	return nil
}

// NormalizeAmount bounds how large, small or long a positive amount can be
// before it is compared or printed. Anything past maxIntegerDigits becomes
// MaxAmount and anything below 10^-maxFractionDigits becomes MinAmount.
func (c *Calculator) NormalizeAmount(amount decimal.Decimal) decimal.Decimal {
	switch digits := integerDigits(amount); {
	case digits > maxIntegerDigits:
		return c.bounds.MaxAmount
	case digits < -maxFractionDigits:
		return c.bounds.MinAmount
	}
	return amount.Truncate(maxFractionDigits)
}

func (c *Calculator) ClampAmount(amount decimal.Decimal) decimal.Decimal {
	// Digit counts decide values far outside the bounds. Comparing them
	// directly would rescale both sides to a common exponent.
	switch digits := integerDigits(amount); {
	case digits > integerDigits(c.bounds.MaxAmount):
		if amount.Sign() < 0 {
			return c.bounds.MinAmount
		}
		return c.bounds.MaxAmount
	case digits < integerDigits(c.bounds.MinAmount):
		return c.bounds.MinAmount
	}

	amount = amount.Truncate(maxFractionDigits)
	if amount.LessThan(c.bounds.MinAmount) {
		return c.bounds.MinAmount
	}
	if amount.GreaterThan(c.bounds.MaxAmount) {
		return c.bounds.MaxAmount
	}
	return amount
}

func (c *Calculator) ClampPeriod(period int) int {
	return min(max(period, c.bounds.MinPeriod), c.bounds.MaxPeriod)
}

// Quote clamps amount and period into the bounds and computes the monthly
// installment rounded to cents.
func (c *Calculator) Quote(amount decimal.Decimal, period int) (domain.LoanQuote, error) {
	if err := c.Validate(amount, period); err != nil {
		return domain.LoanQuote{}, err
	}

	clampedAmount := c.ClampAmount(amount)
	clampedPeriod := c.ClampPeriod(period)

	rate := c.schedule.AnnualRate(clampedAmount, clampedPeriod)
	payment := monthlyPayment(clampedAmount, rate, clampedPeriod)
	total := payment.Mul(decimal.NewFromInt(int64(clampedPeriod)))

	return domain.LoanQuote{
		ClampedAmount:  clampedAmount,
		ClampedPeriod:  clampedPeriod,
		MonthlyPayment: payment,
		AnnualRate:     rate.Round(4),
		TotalPayment:   roundToCents(total),
		TotalInterest:  roundToCents(total.Sub(clampedAmount)),
		Provisional:    c.schedule.Provisional(clampedAmount, clampedPeriod),
	}, nil
}

// monthlyPayment is amount * r * (1+r)^n / ((1+r)^n - 1) with r the monthly
// rate, falling back to a straight split when the rate is zero.
func monthlyPayment(amount, annualRate decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if annualRate.IsZero() {
		return roundToCents(amount.Div(n))
	}

	r := annualRate.Div(hundred).Div(monthsPerYear)
	one := decimal.NewFromInt(1)
	growth := compound(one.Add(r), months)

	return roundToCents(amount.Mul(r).Mul(growth).Div(growth.Sub(one)))
}

func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		result = result.Mul(base).Round(growthPrecision)
	}
	return result
}

// integerDigits counts the digits left of the decimal point from the
// coefficient length and exponent. It is zero or negative below one.
func integerDigits(d decimal.Decimal) int64 {
	if d.IsZero() {
		return 0
	}
	return int64(d.NumDigits()) + int64(d.Exponent())
}

// amountText prints d in exponent form when its plain form would be huge.
func amountText(d decimal.Decimal) string {
	if digits := integerDigits(d); digits > maxIntegerDigits || digits < -maxFractionDigits {
		return d.Coefficient().String() + "e" + strconv.Itoa(int(d.Exponent()))
	}
	return d.String()
}

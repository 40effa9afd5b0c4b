package service

import (
	"github.com/shopspring/decimal"

	"loan-quote/domain"
)

const (
	ProductSmallLoan = "SMALL_LOAN"

	MinPeriodMonths = 6
	MaxPeriodMonths = 120

	// decimal places kept for (1+r)^n while compounding
	growthPrecision = 28

	// magnitude limits for amounts and budgets taken from callers
	maxIntegerDigits  = 15
	maxFractionDigits = 12
)

var (
	MinLoanAmount = decimal.NewFromInt(500)
	MaxLoanAmount = decimal.NewFromInt(30000)

	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// SmallLoanBounds are the limits the calculator modal enforces for SMALL_LOAN.
var SmallLoanBounds = domain.LoanBounds{
	MinAmount: MinLoanAmount,
	MaxAmount: MaxLoanAmount,
	MinPeriod: MinPeriodMonths,
	MaxPeriod: MaxPeriodMonths,
}

var knownProducts = map[string]bool{
	ProductSmallLoan: true,
}

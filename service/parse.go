package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"loan-quote/domain"
)

// groupedAmount matches thousands grouping the modal renders, e.g. "30,000"
// or "30 000.50".
var groupedAmount = regexp.MustCompile(`^\d{1,3}([, ]\d{3})+(\.\d+)?$`)

// plainAmount is what remains once grouping and the decimal comma are gone.
// It has no sign or exponent.
var plainAmount = regexp.MustCompile(`^\d+(\.\d+)?$`)

const maxAmountLength = maxIntegerDigits + 1 + maxFractionDigits

// ParseAmount reads an amount the way the modal accepts it. A lone comma
// without a dot is a decimal comma ("10000,99").
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "€"))
	if s == "" {
		return decimal.Zero, domain.NewInvalidInput("amount", raw, "is empty")
	}

	switch {
	case groupedAmount.MatchString(s):
		s = strings.NewReplacer(",", "", " ", "").Replace(s)
	case strings.Count(s, ",") == 1 && !strings.Contains(s, "."):
		s = strings.Replace(s, ",", ".", 1)
	}

	if strings.HasPrefix(s, "-") {
		return decimal.Zero, domain.NewInvalidInput("amount", raw, "must be greater than zero")
	}
	if !plainAmount.MatchString(s) {
		return decimal.Zero, domain.NewInvalidInput("amount", raw, "is not a number")
	}
	if len(s) > maxAmountLength {
		return decimal.Zero, domain.NewInvalidInput("amount", raw, "has too many digits")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &domain.InvalidInputError{
			Field:  "amount",
			Value:  raw,
			Reason: "is not a number",
			Err:    err,
		}
	}
	if !amount.IsPositive() {
		return decimal.Zero, domain.NewInvalidInput("amount", raw, "must be greater than zero")
	}
	return amount, nil
}

// ParsePeriod reads a whole number of months.
func ParsePeriod(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, domain.NewInvalidInput("period", raw, "is empty")
	}
	period, err := strconv.Atoi(s)
	if err != nil {
		return 0, &domain.InvalidInputError{
			Field:  "period",
			Value:  raw,
			Reason: "is not a whole number of months",
			Err:    err,
		}
	}
	if period <= 0 {
		return 0, domain.NewInvalidInput("period", raw, "must be greater than zero")
	}
	return period, nil
}

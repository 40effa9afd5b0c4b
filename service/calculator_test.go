package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"loan-quote/domain"
)

func TestQuote_ObservedPayments(t *testing.T) {
	calc := NewDefaultCalculator()

	cases := []struct {
		name        string
		amount      string
		period      int
		wantAmount  string
		wantPeriod  int
		wantPayment string
	}{
		{"url defaults", "5000", 60, "5000", 60, "124.21"},
		{"above max", "40000", 240, "30000", 120, "495.65"},
		{"below min", "100", 1, "500", 6, "91.39"},
		{"aprc 10.5", "10000", 60, "10000", 60, "244.44"},
		{"aprc 9.5", "30000", 60, "30000", 60, "725.32"},
		{"fractional amount", "10000.99", 60, "10000.99", 60, "244.46"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := calc.Quote(decimal.RequireFromString(tc.amount), tc.period)
			require.NoError(t, err)

			assert.True(t, quote.ClampedAmount.Equal(decimal.RequireFromString(tc.wantAmount)),
				"clamped amount: got %s want %s", quote.ClampedAmount, tc.wantAmount)
			assert.Equal(t, tc.wantPeriod, quote.ClampedPeriod)
			assert.Equal(t, tc.wantPayment, quote.MonthlyPayment.StringFixed(2))
			assert.False(t, quote.Provisional, "observed scenario should not depend on provisional rates")
		})
	}
}

func TestQuote_Totals(t *testing.T) {
	calc := NewDefaultCalculator()

	quote, err := calc.Quote(decimal.NewFromInt(5000), 60)
	require.NoError(t, err)

	assert.Equal(t, "7452.60", quote.TotalPayment.StringFixed(2))
	assert.Equal(t, "2452.60", quote.TotalInterest.StringFixed(2))
	assert.Equal(t, "16.98", quote.AnnualRate.String())
}

func TestQuote_InvalidInput(t *testing.T) {
	calc := NewDefaultCalculator()

	cases := []struct {
		name   string
		amount decimal.Decimal
		period int
		field  string
	}{
		{"zero amount", decimal.Zero, 60, "amount"},
		{"negative amount", decimal.NewFromInt(-5000), 60, "amount"},
		{"zero period", decimal.NewFromInt(5000), 0, "period"},
		{"negative period", decimal.NewFromInt(5000), -12, "period"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Quote(tc.amount, tc.period)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var invalid *domain.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestQuote_ExtremeMagnitudes(t *testing.T) {
	calc := NewDefaultCalculator()

	cases := []struct {
		name        string
		amount      string
		period      int
		wantAmount  string
		wantPayment string
	}{
		{"huge", "1e100000000", 60, "30000", "725.32"},
		{"just above max digits", "100000", 60, "30000", "725.32"},
		{"tiny", "1e-100000000", 1, "500", "91.39"},
		{"long fraction", "5000." + strings.Repeat("0", 40) + "1", 60, "5000", "124.21"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			done := make(chan domain.LoanQuote, 1)
			go func() {
				quote, err := calc.Quote(decimal.RequireFromString(tc.amount), tc.period)
				assert.NoError(t, err)
				done <- quote
			}()

			select {
			case quote := <-done:
				assert.Equal(t, tc.wantAmount, quote.ClampedAmount.String())
				assert.Equal(t, tc.wantPayment, quote.MonthlyPayment.StringFixed(2))
			case <-time.After(5 * time.Second):
				t.Fatal("quote did not finish")
			}
		})
	}
}

func TestQuote_HugeNegativeAmountIsInvalid(t *testing.T) {
	calc := NewDefaultCalculator()

	_, err := calc.Quote(decimal.RequireFromString("-1e100000000"), 60)

	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "amount", invalid.Field)
	assert.Equal(t, "-1e100000000", invalid.Value)
}

func TestNormalizeAmount(t *testing.T) {
	calc := NewDefaultCalculator()

	assert.Equal(t, "30000", calc.NormalizeAmount(decimal.RequireFromString("1e100000000")).String())
	assert.Equal(t, "500", calc.NormalizeAmount(decimal.RequireFromString("1e-100000000")).String())
	assert.Equal(t, "40000", calc.NormalizeAmount(decimal.NewFromInt(40000)).String())
	assert.Equal(t, "0.000000000001", calc.NormalizeAmount(decimal.RequireFromString("0.0000000000019")).String())
}

func TestQuote_ZeroRate(t *testing.T) {
	schedule, err := NewRateSchedule(
		[]decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(2)},
		[]int{1, 2},
		[][]RateCell{{{}, {}}, {{}, {}}},
	)
	require.NoError(t, err)

	calc := NewCalculator(domain.LoanBounds{
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromInt(10000),
		MinPeriod: 1,
		MaxPeriod: 24,
	}, schedule)

	quote, err := calc.Quote(decimal.NewFromInt(1200), 12)
	require.NoError(t, err)
	assert.Equal(t, "100.00", quote.MonthlyPayment.StringFixed(2))
	assert.True(t, quote.TotalInterest.IsZero())
}

func centsAmount(t *rapid.T, label string, lo, hi int64) decimal.Decimal {
	return decimal.New(rapid.Int64Range(lo, hi).Draw(t, label), -2)
}

func testQuote_ClampsLowAmount(t *rapid.T) {
	calc := NewDefaultCalculator()
	amount := centsAmount(t, "amount", 1, 500_00)
	period := rapid.IntRange(1, 400).Draw(t, "period")

	quote, err := calc.Quote(amount, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.ClampedAmount.Equal(MinLoanAmount) {
		t.Fatalf("clamped amount %s, want %s", quote.ClampedAmount, MinLoanAmount)
	}
}

func TestQuote_ClampsLowAmount(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testQuote_ClampsLowAmount)
}

func testQuote_ClampsHighAmount(t *rapid.T) {
	calc := NewDefaultCalculator()
	amount := centsAmount(t, "amount", 30000_00, 10_000_000_00)
	period := rapid.IntRange(1, 400).Draw(t, "period")

	quote, err := calc.Quote(amount, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.ClampedAmount.Equal(MaxLoanAmount) {
		t.Fatalf("clamped amount %s, want %s", quote.ClampedAmount, MaxLoanAmount)
	}
}

func TestQuote_ClampsHighAmount(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testQuote_ClampsHighAmount)
}

func testQuote_ClampsPeriod(t *rapid.T) {
	calc := NewDefaultCalculator()
	amount := centsAmount(t, "amount", 1, 100_000_00)
	period := rapid.IntRange(1, 1000).Draw(t, "period")

	quote, err := calc.Quote(amount, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	switch {
	case period <= MinPeriodMonths && quote.ClampedPeriod != MinPeriodMonths:
		t.Fatalf("period %d clamped to %d, want %d", period, quote.ClampedPeriod, MinPeriodMonths)
	case period >= MaxPeriodMonths && quote.ClampedPeriod != MaxPeriodMonths:
		t.Fatalf("period %d clamped to %d, want %d", period, quote.ClampedPeriod, MaxPeriodMonths)
	case quote.ClampedPeriod < MinPeriodMonths || quote.ClampedPeriod > MaxPeriodMonths:
		t.Fatalf("clamped period %d out of bounds", quote.ClampedPeriod)
	}
	if quote.ClampedAmount.LessThan(MinLoanAmount) || quote.ClampedAmount.GreaterThan(MaxLoanAmount) {
		t.Fatalf("clamped amount %s out of bounds", quote.ClampedAmount)
	}
}

func TestQuote_ClampsPeriod(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testQuote_ClampsPeriod)
}

func testQuote_MonotonicInAmount(t *rapid.T) {
	calc := NewDefaultCalculator()
	period := rapid.IntRange(MinPeriodMonths, MaxPeriodMonths).Draw(t, "period")
	low := rapid.Int64Range(500_00, 30000_00-1).Draw(t, "low")
	high := rapid.Int64Range(low+1, 30000_00).Draw(t, "high")

	lowQuote, err := calc.Quote(decimal.New(low, -2), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	highQuote, err := calc.Quote(decimal.New(high, -2), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if highQuote.MonthlyPayment.LessThan(lowQuote.MonthlyPayment) {
		t.Fatalf("payment fell from %s to %s between %s and %s over %d months",
			lowQuote.MonthlyPayment, highQuote.MonthlyPayment,
			lowQuote.ClampedAmount, highQuote.ClampedAmount, period)
	}
}

func TestQuote_MonotonicInAmount(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testQuote_MonotonicInAmount)
}

func testQuote_ClampedValuesAreFixedPoints(t *rapid.T) {
	calc := NewDefaultCalculator()
	amount := centsAmount(t, "amount", 1, 100_000_00)
	period := rapid.IntRange(1, 400).Draw(t, "period")

	first, err := calc.Quote(amount, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := calc.Quote(first.ClampedAmount, first.ClampedPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("requote changed result: %+v vs %+v", first, second)
	}
}

func TestQuote_ClampedValuesAreFixedPoints(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testQuote_ClampedValuesAreFixedPoints)
}

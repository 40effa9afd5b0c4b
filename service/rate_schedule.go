package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateCell is one anchor of the rate grid. Provisional cells are not backed
// by an observed payment and only exist to keep the grid complete.
type RateCell struct {
	Rate        decimal.Decimal // annual nominal rate, percent
	Provisional bool
}

// RateSchedule prices a loan by bilinear interpolation over an anchor grid of
// amounts and periods. Rates fall as the principal grows. Interpolating
// instead of stepping keeps the payment non-decreasing in the amount across
// anchor boundaries.
type RateSchedule struct {
	amounts []decimal.Decimal
	periods []int
	cells   [][]RateCell // cells[period][amount]
}

// NewRateSchedule validates the grid shape. Anchors must be strictly
// increasing and there must be at least two of each.
func NewRateSchedule(amounts []decimal.Decimal, periods []int, cells [][]RateCell) (*RateSchedule, error) {
	if len(amounts) < 2 || len(periods) < 2 {
		return nil, fmt.Errorf("rate schedule needs at least two amount and two period anchors")
	}
	for i := 1; i < len(amounts); i++ {
		if !amounts[i].GreaterThan(amounts[i-1]) {
			return nil, fmt.Errorf("amount anchors not increasing at %s", amounts[i])
		}
	}
	for i := 1; i < len(periods); i++ {
		if periods[i] <= periods[i-1] {
			return nil, fmt.Errorf("period anchors not increasing at %d", periods[i])
		}
	}
	if len(cells) != len(periods) {
		return nil, fmt.Errorf("rate schedule has %d rows, want %d", len(cells), len(periods))
	}
	for i, row := range cells {
		if len(row) != len(amounts) {
			return nil, fmt.Errorf("rate schedule row %d has %d cells, want %d", i, len(row), len(amounts))
		}
		for _, cell := range row {
			if cell.Rate.IsNegative() {
				return nil, fmt.Errorf("rate schedule row %d has negative rate %s", i, cell.Rate)
			}
		}
	}
	return &RateSchedule{amounts: amounts, periods: periods, cells: cells}, nil
}

func mustRate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultRateSchedule is the SMALL_LOAN pricing. The fitted cells reproduce
// the payments the live calculator shows for 500/6, 5000/60, 10000/60,
// 30000/60 and 30000/120. Everything else is provisional until more
// observations are collected.
func DefaultRateSchedule() *RateSchedule {
	fitted := func(s string) RateCell { return RateCell{Rate: mustRate(s)} }
	guess := func(s string) RateCell { return RateCell{Rate: mustRate(s), Provisional: true} }

	schedule, err := NewRateSchedule(
		[]decimal.Decimal{
			decimal.NewFromInt(500),
			decimal.NewFromInt(5000),
			decimal.NewFromInt(10000),
			decimal.NewFromInt(30000),
		},
		[]int{6, 60, 120},
		[][]RateCell{
			{fitted("32.43"), guess("16.98"), guess("16.2366"), guess("15.7347")},
			{guess("18.50"), fitted("16.98"), fitted("16.2366"), fitted("15.7347")},
			{guess("18.50"), guess("16.98"), guess("16.2366"), fitted("15.6303")},
		},
	)
	if err != nil {
		panic(err)
	}
	return schedule
}

// AnnualRate returns the interpolated annual rate in percent. Inputs outside
// the grid are pinned to its edges.
func (s *RateSchedule) AnnualRate(amount decimal.Decimal, period int) decimal.Decimal {
	rate, _ := s.lookup(amount, period)
	return rate
}

// Provisional reports whether the rate for (amount, period) draws on any
// provisional anchor.
func (s *RateSchedule) Provisional(amount decimal.Decimal, period int) bool {
	_, provisional := s.lookup(amount, period)
	return provisional
}

func (s *RateSchedule) lookup(amount decimal.Decimal, period int) (decimal.Decimal, bool) {
	i, t := s.amountSegment(amount)
	j, u := s.periodSegment(period)

	lo, hi := s.cells[j], s.cells[j+1]
	one := decimal.NewFromInt(1)

	r0 := lerp(lo[i].Rate, lo[i+1].Rate, t)
	r1 := lerp(hi[i].Rate, hi[i+1].Rate, t)
	rate := lerp(r0, r1, u)

	provisional := false
	weights := []struct {
		cell   RateCell
		weight decimal.Decimal
	}{
		{lo[i], one.Sub(t).Mul(one.Sub(u))},
		{lo[i+1], t.Mul(one.Sub(u))},
		{hi[i], one.Sub(t).Mul(u)},
		{hi[i+1], t.Mul(u)},
	}
	for _, w := range weights {
		if w.cell.Provisional && !w.weight.IsZero() {
			provisional = true
		}
	}
	return rate, provisional
}

func (s *RateSchedule) amountSegment(amount decimal.Decimal) (int, decimal.Decimal) {
	last := len(s.amounts) - 1
	if amount.LessThanOrEqual(s.amounts[0]) {
		return 0, decimal.Zero
	}
	for i := 0; i < last; i++ {
		if amount.LessThanOrEqual(s.amounts[i+1]) {
			span := s.amounts[i+1].Sub(s.amounts[i])
			return i, amount.Sub(s.amounts[i]).Div(span)
		}
	}
	return last - 1, decimal.NewFromInt(1)
}

func (s *RateSchedule) periodSegment(period int) (int, decimal.Decimal) {
	last := len(s.periods) - 1
	if period <= s.periods[0] {
		return 0, decimal.Zero
	}
	for j := 0; j < last; j++ {
		if period <= s.periods[j+1] {
			span := decimal.NewFromInt(int64(s.periods[j+1] - s.periods[j]))
			return j, decimal.NewFromInt(int64(period - s.periods[j])).Div(span)
		}
	}
	return last - 1, decimal.NewFromInt(1)
}

func lerp(a, b, t decimal.Decimal) decimal.Decimal {
	return a.Add(b.Sub(a).Mul(t))
}

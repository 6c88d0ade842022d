package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-engine/domain"
)

func TestLoanToValue(t *testing.T) {
	assert.Equal(t, 80.0, roundTo(LoanToValue(240000, 300000), 2))
	assert.Equal(t, 0.0, LoanToValue(240000, 0))
}

func TestBreakEvenMonths(t *testing.T) {
	tests := []struct {
		name     string
		down     float64
		cost     float64
		rent     float64
		expected int
	}{
		{"owning cheaper than renting", 60000, 2500, 3000, 0},
		{"owning equals renting", 60000, 3000, 3000, 0},
		{"owning dearer", 60000, 3500, 3000, 120},
		{"partial month rounds up", 1000, 3300, 3000, 4},
		{"no down payment", 0, 3500, 3000, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BreakEvenMonths(tc.down, tc.cost, tc.rent))
		})
	}
}

func TestEffectiveAnnualRate(t *testing.T) {
	assert.Equal(t, 0.0, EffectiveAnnualRate(1000, 1000, 12))
	assert.Equal(t, 0.0, EffectiveAnnualRate(900, 1000, 12))
	assert.Equal(t, 0.0, EffectiveAnnualRate(1100, 0, 12))

	rate := EffectiveAnnualRate(1100, 1000, 12)
	assert.InDelta(t, 9.5690, rate, 0.0001)
}

func TestComputeMetrics_ZeroRateLoan(t *testing.T) {
	terms := fixedTerms(240000, 0, 20, domain.PaymentAmortizing)
	property := domain.PropertyContext{
		Value:           300000,
		AnnualInsurance: 1200,
		AnnualTax:       2400,
		MonthlyHOA:      50,
	}
	borrower := domain.BorrowerContext{AnnualIncome: 120000}

	schedule, err := BuildSchedule(terms, property)
	require.NoError(t, err)

	m := ComputeMetrics(terms, property, borrower, schedule)

	assert.Equal(t, 80.0, m.LoanToValueRatio)
	assert.Equal(t, 60000.0, m.EquityPosition)
	assert.Equal(t, 20.0, m.EquityPercentage)
	assert.Equal(t, 1350.0, m.MonthlyHousingCost)
	assert.Equal(t, 3000.0, m.MonthlyRentEquivalent)
	assert.Equal(t, 8650.0, m.MonthlyCashFlow)
	assert.Equal(t, 103800.0, m.AnnualCashFlow)
	assert.Equal(t, 2076000.0, m.TotalCashFlow)
	assert.Equal(t, 0, m.BreakEvenMonths)
	assert.Equal(t, 0.0, m.TotalInterestPaid)
	assert.Equal(t, 240000.0, m.TotalPrincipalPaid)
	assert.Equal(t, 0.0, m.EffectiveAnnualRatePct)
	assert.Equal(t, 300000.0, m.ProjectedEquity)
}

func TestComputeMetrics_BreakEvenWithRentOverride(t *testing.T) {
	terms := fixedTerms(240000, 6, 30, domain.PaymentAmortizing)
	terms.DownPayment = 60000
	property := domain.PropertyContext{Value: 300000, MonthlyRent: 1000}
	borrower := domain.BorrowerContext{AnnualIncome: 90000}

	schedule, err := BuildSchedule(terms, property)
	require.NoError(t, err)

	m := ComputeMetrics(terms, property, borrower, schedule)

	// 1438.92 a month against 1000 rent.
	assert.Equal(t, 1438.92, m.MonthlyHousingCost)
	assert.Equal(t, 137, m.BreakEvenMonths)
	assert.Equal(t, 11.42, m.BreakEvenYears)
	assert.Equal(t, 6061.08, m.MonthlyCashFlow)
	assert.InDelta(t, 2.5673, m.EffectiveAnnualRatePct, 0.0001)
}

func TestDownPayment(t *testing.T) {
	property := flatProperty(300000)

	assert.Equal(t, 60000.0, DownPayment(fixedTerms(240000, 5, 30, domain.PaymentAmortizing), property))

	terms := fixedTerms(240000, 5, 30, domain.PaymentAmortizing)
	terms.DownPayment = 75000
	assert.Equal(t, 75000.0, DownPayment(terms, property))

	assert.Equal(t, 0.0, DownPayment(fixedTerms(350000, 5, 30, domain.PaymentAmortizing), property))
}

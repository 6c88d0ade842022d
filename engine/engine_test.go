package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-engine/domain"
)

func sampleInput() domain.SimulationInput {
	return domain.SimulationInput{
		Loan: fixedTerms(300000, 4.5, 30, domain.PaymentAmortizing),
		Property: domain.PropertyContext{
			Value:            400000,
			AppreciationRate: 3,
			AnnualInsurance:  1800,
			AnnualTax:        4800,
			MonthlyHOA:       100,
		},
		Borrower: domain.BorrowerContext{
			AnnualIncome: 120000,
			CreditScore:  720,
			DebtToIncome: 30,
			Employment:   domain.EmploymentSalaried,
		},
		Market: domain.MarketContext{Condition: domain.MarketStable, GrowthRate: 2},
	}
}

func TestSimulate_FixedRateLoan(t *testing.T) {
	result, err := Simulate(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, 1520.06, result.Payment.MonthlyPayment)
	assert.Equal(t, 360, result.Payment.TotalPeriods)
	assert.Len(t, result.Schedule, 360)
	assert.Empty(t, result.RateResets)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, 75.0, result.Metrics.LoanToValueRatio)
	assert.Equal(t, 100000.0, result.Metrics.EquityPosition)
	assert.Equal(t, 2170.06, result.Metrics.MonthlyHousingCost)
	assert.Equal(t, 4000.0, result.Metrics.MonthlyRentEquivalent)
	assert.Equal(t, 0, result.Metrics.BreakEvenMonths)

	assert.Len(t, result.Sensitivity, 3)
	assert.Len(t, result.Scenarios, 3)
	assert.Equal(t, result.Payment.MonthlyPayment, result.Scenarios[1].MonthlyPayment)

	assert.Equal(t, 45.0, result.Risk.RiskScore)
	assert.Equal(t, "moderate", result.Risk.RiskLevel)
}

func TestSimulate_ARMReportsResets(t *testing.T) {
	in := sampleInput()
	in.Loan = armTerms(4, 30, domain.ARMParams{
		InitialFixedYears: 5, AdjustmentPeriodMonths: 12, Margin: 2.5, IndexRate: 5,
		LifetimeCap: 9, PeriodicCap: 2, FloorRate: 3,
	})

	result, err := Simulate(in)
	require.NoError(t, err)

	require.Len(t, result.RateResets, 26)
	assert.Equal(t, 1, result.RateResets[0].StartPeriod)
	assert.Equal(t, 360, result.RateResets[25].EndPeriod)
	assert.Equal(t, 0.7, result.Risk.PaymentShockRisk)
	assert.Equal(t, 55.0, result.Risk.RiskScore)
}

func TestSimulate_RejectsBeforeScheduling(t *testing.T) {
	in := sampleInput()
	in.Loan.TermYears = 0
	_, err := Simulate(in)
	assert.ErrorIs(t, err, domain.ErrInvalidLoanTerms)

	in = sampleInput()
	in.Borrower.CreditScore = 900
	_, err = Simulate(in)
	assert.ErrorIs(t, err, domain.ErrInvalidContext)

	in = sampleInput()
	in.Loan.PaymentType = domain.PaymentBalloon
	in.Loan.TermYears = 40
	_, err = Simulate(in)
	assert.ErrorIs(t, err, domain.ErrInvalidLoanTerms)
}

func TestSimulate_ComputesThroughScenarioEdges(t *testing.T) {
	in := sampleInput()
	in.Property.AppreciationRate = -99
	require.NoError(t, in.Validate())
	_, err := Simulate(in)
	assert.NoError(t, err)

	in = sampleInput()
	in.Loan.AnnualRate = -99.5
	require.NoError(t, in.Validate())
	_, err = Simulate(in)
	assert.NoError(t, err)
}

func TestAssessProfile(t *testing.T) {
	in := sampleInput()
	risk, err := AssessProfile(domain.RiskProfile{
		Principal:   300000,
		PaymentType: domain.PaymentInterestOnly,
		Property:    in.Property,
		Borrower:    in.Borrower,
		Market:      in.Market,
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, risk.RiskScore)
	assert.Equal(t, "high", risk.RiskLevel)

	_, err = AssessProfile(domain.RiskProfile{PaymentType: domain.PaymentARM, Property: in.Property, Borrower: in.Borrower, Market: in.Market})
	assert.ErrorIs(t, err, domain.ErrInvalidLoanTerms)
	assert.ErrorContains(t, err, "principal must be positive")
}

func TestSimulate_GrowthRateIsReportOnly(t *testing.T) {
	a := sampleInput()
	b := sampleInput()
	b.Market.GrowthRate = -8

	ra, err := Simulate(a)
	require.NoError(t, err)
	rb, err := Simulate(b)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
}

func randomInput(rng *rand.Rand) domain.SimulationInput {
	in := sampleInput()
	pt := domain.PaymentTypes[rng.Intn(len(domain.PaymentTypes))]

	years := 1 + rng.Intn(40)
	if pt == domain.PaymentBalloon {
		years = 1 + rng.Intn(domain.BalloonHorizonYrs)
	}
	rate := math.Round(rng.Float64()*1200) / 100

	in.Loan = fixedTerms(10000+rng.Float64()*990000, rate, years, pt)
	if pt == domain.PaymentARM {
		floor := math.Max(0, rate-rng.Float64()*3)
		in.Loan.ARM = &domain.ARMParams{
			InitialFixedYears:      rng.Intn(years + 1),
			AdjustmentPeriodMonths: []int{1, 6, 12}[rng.Intn(3)],
			Margin:                 rng.Float64() * 3,
			IndexRate:              rng.Float64() * 8,
			LifetimeCap:            rate + rng.Float64()*6,
			PeriodicCap:            rng.Float64() * 3,
			FloorRate:              floor,
		}
	}
	in.Property.Value = in.Loan.Principal * (1 + rng.Float64())
	in.Property.AppreciationRate = rng.Float64()*10 - 4
	in.Borrower.CreditScore = domain.MinCreditScore + rng.Intn(domain.MaxCreditScore-domain.MinCreditScore+1)
	in.Borrower.DebtToIncome = rng.Float64() * 70
	in.Market.Condition = []domain.MarketCondition{
		domain.MarketDeclining, domain.MarketStable, domain.MarketGrowing, domain.MarketHot,
	}[rng.Intn(4)]
	return in
}

func TestSimulate_DeterministicAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		in := randomInput(rng)

		first, err := Simulate(in)
		require.NoError(t, err, "input %d: %+v", i, in.Loan)
		second, err := Simulate(in)
		require.NoError(t, err)
		require.Equal(t, first, second, "input %d", i)

		assert.GreaterOrEqual(t, first.Risk.RiskScore, MinRiskScore)
		assert.LessOrEqual(t, first.Risk.RiskScore, MaxRiskScore)
		assert.InDelta(t, 100, first.Risk.RiskScore+first.Risk.QualityScore, 1e-9)
		assert.Len(t, first.Schedule, in.Loan.TotalPeriods())

		if in.Loan.PaymentType.Amortizes() {
			assert.InDelta(t, 0, first.Payment.BalanceAtMaturity, 0.01, "input %d", i)
		}
		if in.Loan.ARM != nil {
			for _, reset := range first.RateResets {
				assert.GreaterOrEqual(t, reset.EffectiveRate, in.Loan.ARM.FloorRate)
				assert.LessOrEqual(t, reset.EffectiveRate, in.Loan.ARM.LifetimeCap)
			}
		}
	}
}

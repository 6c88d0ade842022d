package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-engine/domain"
)

func neutralRisk() RiskInput {
	return RiskInput{
		LoanToValue: 70,
		PaymentType: domain.PaymentAmortizing,
		Borrower: domain.BorrowerContext{
			AnnualIncome: 90000,
			CreditScore:  700,
			DebtToIncome: 30,
			Employment:   domain.EmploymentRetired,
		},
		Market: domain.MarketContext{Condition: domain.MarketStable},
	}
}

func TestAssessRisk_NeutralProfileScoresBase(t *testing.T) {
	risk, err := AssessRisk(neutralRisk())
	require.NoError(t, err)

	assert.Equal(t, RiskBaseScore, risk.RiskScore)
	assert.Equal(t, 50.0, risk.QualityScore)
	assert.Equal(t, 0.5, risk.ProbabilityOfDefault)
	assert.Equal(t, "moderate", risk.RiskLevel)
	assert.Len(t, risk.Factors, 6)
	for _, f := range risk.Factors {
		assert.Equal(t, 0.0, f.Points, f.Group)
	}
}

func TestAssessRisk_ClampsToRange(t *testing.T) {
	worst := RiskInput{
		LoanToValue: 98,
		PaymentType: domain.PaymentInterestOnly,
		Borrower:    domain.BorrowerContext{CreditScore: 500, DebtToIncome: 60, Employment: domain.EmploymentUnemployed},
		Market:      domain.MarketContext{Condition: domain.MarketDeclining},
	}
	risk, err := AssessRisk(worst)
	require.NoError(t, err)
	assert.Equal(t, 100.0, risk.RiskScore)
	assert.Equal(t, 0.0, risk.QualityScore)
	assert.Equal(t, "very_high", risk.RiskLevel)

	best := RiskInput{
		LoanToValue: 50,
		PaymentType: domain.PaymentAmortizing,
		Borrower:    domain.BorrowerContext{CreditScore: 820, DebtToIncome: 10, Employment: domain.EmploymentSalaried},
		Market:      domain.MarketContext{Condition: domain.MarketGrowing},
	}
	risk, err = AssessRisk(best)
	require.NoError(t, err)
	assert.Equal(t, 5.0, risk.RiskScore)
	assert.Equal(t, 95.0, risk.QualityScore)
	assert.Equal(t, "low", risk.RiskLevel)
}

func TestAssessRisk_BandBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RiskInput)
		group  string
		points float64
	}{
		{"credit 579", func(in *RiskInput) { in.Borrower.CreditScore = 579 }, "credit_score", 25},
		{"credit 580", func(in *RiskInput) { in.Borrower.CreditScore = 580 }, "credit_score", 15},
		{"credit 740", func(in *RiskInput) { in.Borrower.CreditScore = 740 }, "credit_score", -10},
		{"credit 800", func(in *RiskInput) { in.Borrower.CreditScore = 800 }, "credit_score", -15},
		{"dti 36", func(in *RiskInput) { in.Borrower.DebtToIncome = 36 }, "debt_to_income", 5},
		{"dti 43", func(in *RiskInput) { in.Borrower.DebtToIncome = 43 }, "debt_to_income", 15},
		{"dti 50", func(in *RiskInput) { in.Borrower.DebtToIncome = 50 }, "debt_to_income", 25},
		{"ltv 80", func(in *RiskInput) { in.LoanToValue = 80 }, "loan_to_value", 5},
		{"ltv 95", func(in *RiskInput) { in.LoanToValue = 95 }, "loan_to_value", 20},
		{"hot market", func(in *RiskInput) { in.Market.Condition = domain.MarketHot }, "market", 5},
		{"contract work", func(in *RiskInput) { in.Borrower.Employment = domain.EmploymentContract }, "employment", 5},
		{"balloon", func(in *RiskInput) { in.PaymentType = domain.PaymentBalloon }, "payment_type", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := neutralRisk()
			tc.mutate(&in)

			risk, err := AssessRisk(in)
			require.NoError(t, err)

			var found bool
			for _, f := range risk.Factors {
				if f.Group == tc.group {
					found = true
					assert.Equal(t, tc.points, f.Points)
				}
			}
			require.True(t, found)
			assert.Equal(t, RiskBaseScore+tc.points, risk.RiskScore)
		})
	}
}

func TestAssessRisk_MonotonicInCreditScore(t *testing.T) {
	prev := MaxRiskScore + 1
	for score := domain.MinCreditScore; score <= domain.MaxCreditScore; score++ {
		in := neutralRisk()
		in.Borrower.CreditScore = score

		risk, err := AssessRisk(in)
		require.NoError(t, err)
		require.LessOrEqual(t, risk.RiskScore, prev, "credit score %d", score)
		prev = risk.RiskScore
	}
}

func TestAssessRisk_StructuralRiskDependsOnPaymentType(t *testing.T) {
	in := neutralRisk()
	fixed, err := AssessRisk(in)
	require.NoError(t, err)

	in.PaymentType = domain.PaymentARM
	arm, err := AssessRisk(in)
	require.NoError(t, err)

	assert.Greater(t, arm.PaymentShockRisk, fixed.PaymentShockRisk)
	assert.Greater(t, arm.InterestRateRisk, fixed.InterestRateRisk)
	assert.Equal(t, 0.7, arm.PaymentShockRisk)
	assert.Equal(t, 0.8, arm.InterestRateRisk)
}

func TestAssessRisk_RejectsUnknownCategories(t *testing.T) {
	in := neutralRisk()
	in.PaymentType = "graduated"
	_, err := AssessRisk(in)
	assert.ErrorIs(t, err, domain.ErrInvalidLoanTerms)

	in = neutralRisk()
	in.Market.Condition = "frozen"
	_, err = AssessRisk(in)
	assert.ErrorIs(t, err, domain.ErrInvalidContext)

	in = neutralRisk()
	in.Borrower.Employment = "gig"
	_, err = AssessRisk(in)
	assert.ErrorIs(t, err, domain.ErrInvalidContext)
}

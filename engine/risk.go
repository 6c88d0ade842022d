package engine

import (
	"fmt"

	"loan-engine/domain"
)

const (
	RiskBaseScore = 50.0
	MinRiskScore  = 0.0
	MaxRiskScore  = 100.0
)

// Point tables. Higher points mean higher risk.
var (
	creditScorePoints = mustGradedSchedule(25, // below 580
		Breakpoint{Threshold: 580, Value: 15},
		Breakpoint{Threshold: 620, Value: 5},
		Breakpoint{Threshold: 680, Value: 0},
		Breakpoint{Threshold: 740, Value: -10},
		Breakpoint{Threshold: 800, Value: -15},
	)
	debtToIncomePoints = mustGradedSchedule(-10, // below 20%
		Breakpoint{Threshold: 20, Value: 0},
		Breakpoint{Threshold: 36, Value: 5},
		Breakpoint{Threshold: 43, Value: 15},
		Breakpoint{Threshold: 50, Value: 25},
	)
	loanToValuePoints = mustGradedSchedule(-10, // below 60%
		Breakpoint{Threshold: 60, Value: 0},
		Breakpoint{Threshold: 80, Value: 5},
		Breakpoint{Threshold: 90, Value: 10},
		Breakpoint{Threshold: 95, Value: 20},
	)
)

func paymentTypePoints(t domain.PaymentType) (float64, error) {
	switch t {
	case domain.PaymentAmortizing:
		return 0, nil
	case domain.PaymentInterestOnly:
		return 15, nil
	case domain.PaymentBalloon:
		return 10, nil
	case domain.PaymentARM:
		return 10, nil
	}
	return 0, fmt.Errorf("%w: unknown payment type %q", domain.ErrInvalidLoanTerms, t)
}

func marketPoints(c domain.MarketCondition) (float64, error) {
	switch c {
	case domain.MarketDeclining:
		return 15, nil
	case domain.MarketStable:
		return 0, nil
	case domain.MarketGrowing:
		return -5, nil
	case domain.MarketHot:
		return 5, nil
	}
	return 0, fmt.Errorf("%w: unknown market condition %q", domain.ErrInvalidContext, c)
}

func employmentPoints(e domain.EmploymentCategory) (float64, error) {
	switch e {
	case domain.EmploymentSalaried:
		return -5, nil
	case domain.EmploymentSelfEmployed, domain.EmploymentContract:
		return 5, nil
	case domain.EmploymentRetired:
		return 0, nil
	case domain.EmploymentUnemployed:
		return 20, nil
	}
	return 0, fmt.Errorf("%w: unknown employment category %q", domain.ErrInvalidContext, e)
}

// PaymentRisk holds the structural risks of a payment type. They depend on
// the payment type alone, not on the score.
type PaymentRisk struct {
	PaymentShock float64
	InterestRate float64
}

func PaymentRiskFor(t domain.PaymentType) (PaymentRisk, error) {
	switch t {
	case domain.PaymentAmortizing:
		return PaymentRisk{PaymentShock: 0.1, InterestRate: 0.1}, nil
	case domain.PaymentInterestOnly:
		return PaymentRisk{PaymentShock: 0.5, InterestRate: 0.2}, nil
	case domain.PaymentBalloon:
		return PaymentRisk{PaymentShock: 0.6, InterestRate: 0.4}, nil
	case domain.PaymentARM:
		return PaymentRisk{PaymentShock: 0.7, InterestRate: 0.8}, nil
	}
	return PaymentRisk{}, fmt.Errorf("%w: unknown payment type %q", domain.ErrInvalidLoanTerms, t)
}

// RiskInput is what the scorer looks at. Ranges are assumed validated.
type RiskInput struct {
	LoanToValue float64
	PaymentType domain.PaymentType
	Borrower    domain.BorrowerContext
	Market      domain.MarketContext
}

// AssessRisk scores the loan additively from RiskBaseScore and clamps the
// result to [0, 100].
//
// ProbabilityOfDefault is score / 100. It is a linear placeholder, not a
// calibrated statistical model.
func AssessRisk(in RiskInput) (domain.RiskAssessment, error) {
	pt, err := paymentTypePoints(in.PaymentType)
	if err != nil {
		return domain.RiskAssessment{}, err
	}
	mk, err := marketPoints(in.Market.Condition)
	if err != nil {
		return domain.RiskAssessment{}, err
	}
	emp, err := employmentPoints(in.Borrower.Employment)
	if err != nil {
		return domain.RiskAssessment{}, err
	}
	structural, err := PaymentRiskFor(in.PaymentType)
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	factors := []domain.RiskFactor{
		{Group: "debt_to_income", Rule: fmt.Sprintf("dti %.2f%%", in.Borrower.DebtToIncome),
			Points: debtToIncomePoints.Lookup(in.Borrower.DebtToIncome)},
		{Group: "credit_score", Rule: fmt.Sprintf("score %d", in.Borrower.CreditScore),
			Points: creditScorePoints.Lookup(float64(in.Borrower.CreditScore))},
		{Group: "loan_to_value", Rule: fmt.Sprintf("ltv %.2f%%", in.LoanToValue),
			Points: loanToValuePoints.Lookup(in.LoanToValue)},
		{Group: "payment_type", Rule: string(in.PaymentType), Points: pt},
		{Group: "market", Rule: string(in.Market.Condition), Points: mk},
		{Group: "employment", Rule: string(in.Borrower.Employment), Points: emp},
	}

	score := RiskBaseScore
	for _, f := range factors {
		score += f.Points
	}
	score = clamp(score, MinRiskScore, MaxRiskScore)

	return domain.RiskAssessment{
		RiskScore:            score,
		QualityScore:         MaxRiskScore - score,
		RiskLevel:            riskLevel(score),
		ProbabilityOfDefault: score / 100,
		PaymentShockRisk:     structural.PaymentShock,
		InterestRateRisk:     structural.InterestRate,
		Factors:              factors,
	}, nil
}

func riskLevel(score float64) string {
	switch {
	case score < 30:
		return "low"
	case score < 55:
		return "moderate"
	case score < 75:
		return "high"
	default:
		return "very_high"
	}
}

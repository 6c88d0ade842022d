package engine

import (
	"loan-engine/domain"
)

// Simulate runs the whole pipeline for one validated input: schedule, ARM
// resets, derived metrics, sensitivity, scenarios and risk. Malformed input
// is rejected before any schedule is generated.
func Simulate(in domain.SimulationInput) (domain.SimulationResult, error) {
	if err := in.Validate(); err != nil {
		return domain.SimulationResult{}, err
	}

	schedule, err := BuildSchedule(in.Loan, in.Property)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	sensitivity, err := Sensitivity(in.Loan)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	scenarios, summary, err := EvaluateScenarios(in.Loan, in.Property)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	risk, err := AssessRisk(RiskInput{
		LoanToValue: LoanToValue(in.Loan.Principal, in.Property.Value),
		PaymentType: in.Loan.PaymentType,
		Borrower:    in.Borrower,
		Market:      in.Market,
	})
	if err != nil {
		return domain.SimulationResult{}, err
	}

	return domain.SimulationResult{
		Payment:         schedule.Breakdown(in.Loan.PaymentType, in.Loan.AnnualRate),
		Schedule:        schedule.Periods,
		RateResets:      schedule.RateResets,
		Metrics:         ComputeMetrics(in.Loan, in.Property, in.Borrower, schedule),
		Sensitivity:     sensitivity,
		Scenarios:       scenarios,
		ScenarioSummary: summary,
		Risk:            risk,
		Warnings:        schedule.Warnings,
	}, nil
}

// AssessProfile scores a loan without building any schedule.
func AssessProfile(p domain.RiskProfile) (domain.RiskAssessment, error) {
	if err := p.Validate(); err != nil {
		return domain.RiskAssessment{}, err
	}
	return AssessRisk(RiskInput{
		LoanToValue: LoanToValue(p.Principal, p.Property.Value),
		PaymentType: p.PaymentType,
		Borrower:    p.Borrower,
		Market:      p.Market,
	})
}

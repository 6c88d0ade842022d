// Package engine holds the pure loan simulation: payments, schedules, ARM
// resets, derived metrics, sensitivity, scenarios and risk scoring.
//
// Every function here is a deterministic function of its arguments. Nothing
// logs, performs I/O or keeps state between calls, so callers may run
// simulations concurrently without coordination.
package engine

import (
	"fmt"
	"math"

	"loan-engine/domain"
)

const (
	PeriodsPerYear = domain.MonthsPerYear

	// BalloonAmortizationPeriods is the reference horizon balloon payments
	// are computed over, independent of the stated term.
	BalloonAmortizationPeriods = domain.BalloonHorizonYrs * PeriodsPerYear

	// rateEpsilon treats smaller periodic rates as zero to avoid 0/0 in the
	// annuity formula.
	rateEpsilon = 1e-12
)

// PeriodicRate converts an annual percentage to a monthly fraction.
func PeriodicRate(annualPercent float64) float64 {
	return annualPercent / 100 / PeriodsPerYear
}

// Payment returns the level payment for one period.
//
// For PaymentARM the caller passes the current contractual rate and the
// periods remaining until maturity; for PaymentBalloon totalPeriods only
// needs to be valid, the payment always amortizes over the 30 year horizon.
func Payment(principal, periodicRate float64, totalPeriods int, paymentType domain.PaymentType) (float64, error) {
	if !(principal > 0) || math.IsInf(principal, 0) {
		return 0, fmt.Errorf("%w: principal must be positive, got %v", domain.ErrInvalidLoanTerms, principal)
	}
	if totalPeriods <= 0 {
		return 0, fmt.Errorf("%w: total periods must be positive, got %d", domain.ErrInvalidLoanTerms, totalPeriods)
	}
	if math.IsNaN(periodicRate) || periodicRate < -1 {
		return 0, fmt.Errorf("%w: periodic rate %v is below -100%%", domain.ErrInvalidLoanTerms, periodicRate)
	}

	switch paymentType {
	case domain.PaymentAmortizing, domain.PaymentARM:
		return annuity(principal, periodicRate, totalPeriods), nil
	case domain.PaymentInterestOnly:
		return principal * periodicRate, nil
	case domain.PaymentBalloon:
		return annuity(principal, periodicRate, BalloonAmortizationPeriods), nil
	}
	return 0, fmt.Errorf("%w: unknown payment type %q", domain.ErrInvalidLoanTerms, paymentType)
}

func annuity(principal, r float64, n int) float64 {
	if isDegenerateRate(r) {
		return principal / float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return principal * r * growth / (growth - 1)
}

func isDegenerateRate(r float64) bool {
	return math.Abs(r) < rateEpsilon
}

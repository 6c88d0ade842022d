package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"loan-engine/domain"
)

// RentEquivalentRate is the monthly rent assumed per unit of property value
// when the caller gives no rent figure. It is a modeling heuristic.
const RentEquivalentRate = 0.01

// LoanToValue returns principal / value as a percentage.
func LoanToValue(principal, propertyValue float64) float64 {
	if propertyValue <= 0 {
		return 0
	}
	return principal / propertyValue * 100
}

// RentEquivalent is the monthly rent the ownership cost is compared against.
func RentEquivalent(property domain.PropertyContext) float64 {
	if property.MonthlyRent > 0 {
		return property.MonthlyRent
	}
	return property.Value * RentEquivalentRate
}

// DownPayment is the stated down payment, or value minus principal when none
// was given.
func DownPayment(terms domain.LoanTerms, property domain.PropertyContext) float64 {
	if terms.DownPayment > 0 {
		return terms.DownPayment
	}
	return math.Max(0, property.Value-terms.Principal)
}

// BreakEvenMonths is zero when owning costs no more than renting, otherwise
// the months of cost difference it takes to consume the down payment.
func BreakEvenMonths(downPayment, monthlyCost, monthlyRent float64) int {
	delta := monthlyCost - monthlyRent
	if delta <= 0 || downPayment <= 0 {
		return 0
	}
	return int(math.Ceil(downPayment / delta))
}

// EffectiveAnnualRate annualizes the per-period growth of total payments
// over principal, in percent. Degenerate totals yield 0.
func EffectiveAnnualRate(totalPaid, principal float64, totalPeriods int) float64 {
	if principal <= 0 || totalPeriods <= 0 || totalPaid <= principal {
		return 0
	}
	perPeriod := math.Pow(totalPaid/principal, 1/float64(totalPeriods)) - 1
	return perPeriod * PeriodsPerYear * 100
}

// ComputeMetrics post-processes a completed schedule.
func ComputeMetrics(
	terms domain.LoanTerms,
	property domain.PropertyContext,
	borrower domain.BorrowerContext,
	schedule *Schedule,
) domain.DerivedMetrics {
	carrying := property.MonthlyCarryingCost()
	monthlyIncome := borrower.AnnualIncome / domain.MonthsPerYear
	housingCost := schedule.FirstPayment() + carrying
	rent := RentEquivalent(property)
	down := DownPayment(terms, property)

	// The origination balance is the balance before the first payment.
	equity := property.Value - terms.Principal

	cashFlows := schedule.column(func(p domain.SchedulePeriod) float64 {
		return monthlyIncome - (p.Payment + carrying)
	})
	totalCashFlow := floats.Sum(cashFlows) - schedule.BalloonPayment

	breakEven := BreakEvenMonths(down, housingCost, rent)
	monthlyCashFlow := monthlyIncome - housingCost
	ear := EffectiveAnnualRate(schedule.TotalPaid(), terms.Principal, len(schedule.Periods))

	return domain.DerivedMetrics{
		EquityPosition:         RoundCents(equity),
		EquityPercentage:       roundTo(equity/property.Value*100, 2),
		LoanToValueRatio:       roundTo(LoanToValue(terms.Principal, property.Value), 2),
		ProjectedEquity:        RoundCents(schedule.FinalEquity()),
		MonthlyHousingCost:     RoundCents(housingCost),
		MonthlyRentEquivalent:  RoundCents(rent),
		MonthlyCashFlow:        RoundCents(monthlyCashFlow),
		AnnualCashFlow:         RoundCents(monthlyCashFlow * domain.MonthsPerYear),
		TotalCashFlow:          RoundCents(totalCashFlow),
		BreakEvenMonths:        breakEven,
		BreakEvenYears:         roundTo(float64(breakEven)/domain.MonthsPerYear, 2),
		TotalInterestPaid:      RoundCents(schedule.TotalInterest()),
		TotalPrincipalPaid:     RoundCents(schedule.TotalPrincipal()),
		EffectiveAnnualRatePct: roundTo(ear, 4),
	}
}

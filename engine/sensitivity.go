package engine

import (
	"math"

	"loan-engine/domain"
)

const (
	VariableRate      = "interest_rate"
	VariablePrincipal = "principal"
	VariableTerm      = "term_years"
)

// Perturbation sets for the one-factor-at-a-time analysis. These are policy
// constants, not derived from the input.
var (
	// RateShifts are absolute shifts in annual percentage points.
	RateShifts = []float64{-2, -1, 0, 1, 2}
	// RelativeSteps scale principal and term.
	RelativeSteps = []float64{-0.2, -0.1, 0, 0.1, 0.2}
)

// FirstPeriodPayment prices period 1 of the loan. ARM loans start on their
// nominal rate over the full term.
func FirstPeriodPayment(terms domain.LoanTerms) (float64, error) {
	return firstPayment(terms.Principal, terms.AnnualRate, terms.TotalPeriods(), terms.PaymentType)
}

func firstPayment(principal, annualRate float64, periods int, paymentType domain.PaymentType) (float64, error) {
	return Payment(principal, PeriodicRate(annualRate), periods, paymentType)
}

// Sensitivity perturbs rate, principal and term one at a time while holding
// everything else at its input value, and reports the first-period payment
// of each perturbation.
func Sensitivity(terms domain.LoanTerms) ([]domain.SensitivityRow, error) {
	base, err := FirstPeriodPayment(terms)
	if err != nil {
		return nil, err
	}
	n := terms.TotalPeriods()

	rate := newRow(VariableRate, RateShifts)
	for _, shift := range RateShifts {
		v := terms.AnnualRate + shift
		p, err := firstPayment(terms.Principal, v, n, terms.PaymentType)
		if err != nil {
			return nil, err
		}
		rate.add(roundTo(v, 4), p, base)
	}

	principal := newRow(VariablePrincipal, RelativeSteps)
	for _, step := range RelativeSteps {
		v := terms.Principal * (1 + step)
		p, err := firstPayment(v, terms.AnnualRate, n, terms.PaymentType)
		if err != nil {
			return nil, err
		}
		principal.add(RoundCents(v), p, base)
	}

	term := newRow(VariableTerm, RelativeSteps)
	for _, step := range RelativeSteps {
		periods := max(1, int(math.Round(float64(n)*(1+step))))
		p, err := firstPayment(terms.Principal, terms.AnnualRate, periods, terms.PaymentType)
		if err != nil {
			return nil, err
		}
		term.add(roundTo(float64(periods)/PeriodsPerYear, 2), p, base)
	}

	return []domain.SensitivityRow{rate.SensitivityRow, principal.SensitivityRow, term.SensitivityRow}, nil
}

type sensitivityRow struct {
	domain.SensitivityRow
}

func newRow(variable string, perturbations []float64) *sensitivityRow {
	return &sensitivityRow{domain.SensitivityRow{
		Variable:      variable,
		Perturbations: append([]float64(nil), perturbations...),
		Values:        make([]float64, 0, len(perturbations)),
		Payments:      make([]float64, 0, len(perturbations)),
		Impacts:       make([]float64, 0, len(perturbations)),
	}}
}

func (r *sensitivityRow) add(value, payment, base float64) {
	r.Values = append(r.Values, value)
	r.Payments = append(r.Payments, RoundCents(payment))
	r.Impacts = append(r.Impacts, RoundCents(payment-base))
}

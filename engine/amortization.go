package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"loan-engine/domain"
)

// Schedule is a completed amortization run.
type Schedule struct {
	Periods        []domain.SchedulePeriod
	RateResets     []domain.RateResetPeriod
	BalloonPayment float64
	Warnings       []domain.Warning
}

func (s *Schedule) column(f func(domain.SchedulePeriod) float64) []float64 {
	out := make([]float64, len(s.Periods))
	for i, p := range s.Periods {
		out[i] = f(p)
	}
	return out
}

func (s *Schedule) TotalInterest() float64 {
	return floats.Sum(s.column(func(p domain.SchedulePeriod) float64 { return p.Interest }))
}

// TotalPrincipal includes the balloon lump sum.
func (s *Schedule) TotalPrincipal() float64 {
	return floats.Sum(s.column(func(p domain.SchedulePeriod) float64 { return p.Principal })) + s.BalloonPayment
}

// TotalPaid includes the balloon lump sum.
func (s *Schedule) TotalPaid() float64 {
	return floats.Sum(s.column(func(p domain.SchedulePeriod) float64 { return p.Payment })) + s.BalloonPayment
}

func (s *Schedule) FirstPayment() float64 {
	if len(s.Periods) == 0 {
		return 0
	}
	return s.Periods[0].Payment
}

func (s *Schedule) FinalBalance() float64 {
	if len(s.Periods) == 0 {
		return 0
	}
	return s.Periods[len(s.Periods)-1].Balance
}

func (s *Schedule) FinalEquity() float64 {
	if len(s.Periods) == 0 {
		return 0
	}
	return s.Periods[len(s.Periods)-1].Equity
}

// Breakdown summarizes the schedule, rounded to cents.
func (s *Schedule) Breakdown(paymentType domain.PaymentType, annualRate float64) domain.PaymentBreakdown {
	b := domain.PaymentBreakdown{
		PaymentType:       paymentType,
		PeriodicRate:      roundTo(PeriodicRate(annualRate), 8),
		TotalPeriods:      len(s.Periods),
		TotalPayment:      RoundCents(s.TotalPaid()),
		TotalInterest:     RoundCents(s.TotalInterest()),
		BalloonPayment:    RoundCents(s.BalloonPayment),
		BalanceAtMaturity: RoundCents(s.FinalBalance() + s.BalloonPayment),
	}
	if len(s.Periods) > 0 {
		first := s.Periods[0]
		b.MonthlyPayment = RoundCents(first.Payment)
		b.FirstPrincipal = RoundCents(first.Principal)
		b.FirstInterest = RoundCents(first.Interest)
	}
	return b
}

// BuildSchedule produces one period per month from 1 to term × 12. The
// length is fixed: interest-only and balloon loans do not reach a zero
// balance through regular payments.
func BuildSchedule(terms domain.LoanTerms, property domain.PropertyContext) (*Schedule, error) {
	if err := property.Validate(); err != nil {
		return nil, err
	}
	windows, err := RateWindows(terms)
	if err != nil {
		return nil, err
	}
	b := scheduleBuilder{
		terms:    terms,
		property: property,
		n:        terms.TotalPeriods(),
		payment:  policyFor(terms),
	}
	return b.run(windows)
}

// AmortizeMonths runs a plain amortizing schedule over an arbitrary number
// of months with no collateral attached.
func AmortizeMonths(principal, annualRate float64, months int) (*Schedule, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: term must be positive, got %d months", domain.ErrInvalidLoanTerms, months)
	}
	terms := domain.LoanTerms{
		Principal:   principal,
		AnnualRate:  annualRate,
		PaymentType: domain.PaymentAmortizing,
	}
	b := scheduleBuilder{
		terms: terms,
		n:     months,
		payment: func(balance, r float64, _ int) (float64, error) {
			return Payment(balance, r, months, domain.PaymentAmortizing)
		},
	}
	return b.run([]RateWindow{{Index: 1, StartPeriod: 1, EndPeriod: months, AnnualRate: annualRate}})
}

// paymentPolicy prices the flat payment of a rate window.
type paymentPolicy func(balance, periodicRate float64, remaining int) (float64, error)

func policyFor(terms domain.LoanTerms) paymentPolicy {
	n := terms.TotalPeriods()
	if terms.PaymentType == domain.PaymentARM {
		return func(balance, r float64, remaining int) (float64, error) {
			return Payment(balance, r, remaining, domain.PaymentARM)
		}
	}
	return func(balance, r float64, _ int) (float64, error) {
		return Payment(balance, r, n, terms.PaymentType)
	}
}

type scheduleBuilder struct {
	terms    domain.LoanTerms
	property domain.PropertyContext
	n        int
	payment  paymentPolicy

	schedule          *Schedule
	flaggedNegative   bool
	flaggedDegenerate bool
}

func (b *scheduleBuilder) run(windows []RateWindow) (*Schedule, error) {
	b.schedule = &Schedule{Periods: make([]domain.SchedulePeriod, 0, b.n)}
	balance := b.terms.Principal

	for _, w := range windows {
		r := PeriodicRate(w.AnnualRate)
		if isDegenerateRate(r) && !b.flaggedDegenerate {
			b.flaggedDegenerate = true
			b.warn(domain.WarningDegenerateRate, w.StartPeriod,
				"periodic rate is zero, payment falls back to principal / periods")
		}

		payment := 0.0
		if balance > 0 {
			p, err := b.payment(balance, r, b.n-w.StartPeriod+1)
			if err != nil {
				return nil, err
			}
			payment = p
		}

		if b.terms.PaymentType == domain.PaymentARM {
			b.schedule.RateResets = append(b.schedule.RateResets, domain.RateResetPeriod{
				Index:         w.Index,
				State:         w.State.String(),
				StartPeriod:   w.StartPeriod,
				EndPeriod:     w.EndPeriod,
				StartDate:     addMonths(b.terms.StartDate, w.StartPeriod),
				EndDate:       addMonths(b.terms.StartDate, w.EndPeriod),
				EffectiveRate: w.AnnualRate,
				Payment:       RoundCents(payment),
			})
		}

		for p := w.StartPeriod; p <= w.EndPeriod; p++ {
			period := b.step(p, balance, payment, r, w.AnnualRate)
			balance = period.Balance
			b.schedule.Periods = append(b.schedule.Periods, period)
		}
	}

	switch b.terms.PaymentType {
	case domain.PaymentBalloon:
		b.warn(domain.WarningBalloonDue, b.n,
			fmt.Sprintf("balloon payment of %.2f due at maturity", b.schedule.BalloonPayment))
	case domain.PaymentInterestOnly:
		b.warn(domain.WarningBalanceOutstanding, b.n,
			fmt.Sprintf("balance of %.2f remains at maturity", b.schedule.FinalBalance()))
	}
	return b.schedule, nil
}

func (b *scheduleBuilder) step(p int, balance, payment, r, annualRate float64) domain.SchedulePeriod {
	amortizes := b.terms.PaymentType.Amortizes()
	final := p == b.n

	interest := balance * r
	paid := payment
	principal := paid - interest

	switch {
	case principal < 0:
		// Under-amortizing: the balance grows and the loan is not truncated.
		// The built-in annuity policies always cover interest, so this only
		// fires for custom payment policies.
		if amortizes && !b.flaggedNegative {
			b.flaggedNegative = true
			b.warn(domain.WarningNegativeAmortization, p,
				fmt.Sprintf("payment %.2f does not cover interest %.2f", paid, interest))
		}
	case principal > balance, final && amortizes:
		principal = balance
		paid = principal + interest
	}
	balance = math.Max(0, balance-principal)

	period := domain.SchedulePeriod{
		Period:    p,
		Date:      addMonths(b.terms.StartDate, p),
		Rate:      annualRate,
		Payment:   paid,
		Principal: principal,
		Interest:  interest,
	}

	if final && b.terms.PaymentType == domain.PaymentBalloon {
		period.Balloon = balance
		b.schedule.BalloonPayment = balance
		balance = 0
	}
	period.Balance = balance

	if b.property.Value > 0 {
		period.PropertyValue = b.property.Value *
			math.Pow(1+b.property.AppreciationRate/100, float64(p)/PeriodsPerYear)
		period.Equity = period.PropertyValue - balance
	}
	return period
}

func (b *scheduleBuilder) warn(code domain.WarningCode, period int, msg string) {
	b.schedule.Warnings = append(b.schedule.Warnings, domain.Warning{
		Code:    code,
		Period:  period,
		Message: msg,
	})
}

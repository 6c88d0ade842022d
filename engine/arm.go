package engine

import (
	"fmt"

	"loan-engine/domain"
)

// ARMState is the phase of an adjustable-rate loan.
type ARMState int

const (
	FixedPeriod ARMState = iota
	FloatingPeriod
)

func (s ARMState) String() string {
	switch s {
	case FixedPeriod:
		return "fixed"
	case FloatingPeriod:
		return "floating"
	}
	return fmt.Sprintf("ARMState(%d)", int(s))
}

// RateWindow is a run of consecutive periods that share one contractual rate.
type RateWindow struct {
	Index       int
	State       ARMState
	StartPeriod int
	EndPeriod   int
	AnnualRate  float64
}

// RateResetMachine walks an ARM from its fixed phase through every floating
// reset window until maturity. The index rate is a caller-supplied scalar
// forecast; no index path is simulated.
type RateResetMachine struct {
	params       domain.ARMParams
	totalPeriods int
	state        ARMState
	index        int
	nextStart    int
	rate         float64
}

func NewRateResetMachine(terms domain.LoanTerms) (*RateResetMachine, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if terms.PaymentType != domain.PaymentARM {
		return nil, fmt.Errorf("%w: rate resets only apply to arm loans", domain.ErrInvalidLoanTerms)
	}
	return &RateResetMachine{
		params:       *terms.ARM,
		totalPeriods: terms.TotalPeriods(),
		state:        FixedPeriod,
		index:        1,
		nextStart:    1,
		rate:         terms.AnnualRate,
	}, nil
}

// State reports the phase the next window will start in.
func (m *RateResetMachine) State() ARMState {
	return m.state
}

// Next returns the next rate window, or false once maturity is reached.
func (m *RateResetMachine) Next() (RateWindow, bool) {
	if m.nextStart > m.totalPeriods {
		return RateWindow{}, false
	}

	length := m.params.AdjustmentPeriodMonths
	fixedPeriods := m.params.InitialFixedYears * PeriodsPerYear
	if m.state == FixedPeriod && fixedPeriods > 0 {
		length = fixedPeriods
	} else {
		m.state = FloatingPeriod
		m.rate = ResetRate(m.rate, m.params)
	}

	w := RateWindow{
		Index:       m.index,
		State:       m.state,
		StartPeriod: m.nextStart,
		EndPeriod:   min(m.nextStart+length-1, m.totalPeriods),
		AnnualRate:  m.rate,
	}

	m.index++
	m.nextStart = w.EndPeriod + 1
	m.state = FloatingPeriod
	return w, true
}

// ResetRate applies, in order, the periodic cap around the previous rate,
// the lifetime ceiling and the floor to index + margin.
func ResetRate(previous float64, p domain.ARMParams) float64 {
	proposed := p.IndexRate + p.Margin
	capped := clamp(proposed, previous-p.PeriodicCap, previous+p.PeriodicCap)
	return clamp(capped, p.FloorRate, p.LifetimeCap)
}

// RateWindows lists the rate windows of any loan. Non-ARM loans have a
// single window spanning the whole term.
func RateWindows(terms domain.LoanTerms) ([]RateWindow, error) {
	if terms.PaymentType != domain.PaymentARM {
		if err := terms.Validate(); err != nil {
			return nil, err
		}
		return []RateWindow{{
			Index:       1,
			State:       FixedPeriod,
			StartPeriod: 1,
			EndPeriod:   terms.TotalPeriods(),
			AnnualRate:  terms.AnnualRate,
		}}, nil
	}

	m, err := NewRateResetMachine(terms)
	if err != nil {
		return nil, err
	}
	var windows []RateWindow
	for {
		w, ok := m.Next()
		if !ok {
			return windows, nil
		}
		windows = append(windows, w)
	}
}

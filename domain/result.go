package domain

import "time"

// SchedulePeriod is one payment period of the amortization schedule.
// Monetary fields are kept at full precision; rounding happens in summaries.
type SchedulePeriod struct {
	Period        int       `json:"period"`
	Date          time.Time `json:"date"`
	Rate          float64   `json:"rate"`
	Payment       float64   `json:"payment"`
	Principal     float64   `json:"principal"`
	Interest      float64   `json:"interest"`
	Balloon       float64   `json:"balloon,omitempty"`
	Balance       float64   `json:"balance"`
	PropertyValue float64   `json:"property_value"`
	Equity        float64   `json:"equity"`
}

// RateResetPeriod is one ARM rate window. The payment is flat inside it.
type RateResetPeriod struct {
	Index         int       `json:"index"`
	State         string    `json:"state"`
	StartPeriod   int       `json:"start_period"`
	EndPeriod     int       `json:"end_period"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	EffectiveRate float64   `json:"effective_rate"`
	Payment       float64   `json:"payment"`
}

type PaymentBreakdown struct {
	PaymentType    PaymentType `json:"payment_type"`
	PeriodicRate   float64     `json:"periodic_rate"`
	TotalPeriods   int         `json:"total_periods"`
	MonthlyPayment float64     `json:"monthly_payment"`
	FirstPrincipal float64     `json:"first_principal"`
	FirstInterest  float64     `json:"first_interest"`
	TotalPayment   float64     `json:"total_payment"`
	TotalInterest  float64     `json:"total_interest"`
	// BalloonPayment is the lump sum due at maturity of a balloon loan.
	BalloonPayment float64 `json:"balloon_payment"`
	// BalanceAtMaturity is what regular payments leave unpaid at maturity.
	BalanceAtMaturity float64 `json:"balance_at_maturity"`
}

type DerivedMetrics struct {
	EquityPosition         float64 `json:"equity_position"`
	EquityPercentage       float64 `json:"equity_percentage"`
	LoanToValueRatio       float64 `json:"loan_to_value_ratio"`
	ProjectedEquity        float64 `json:"projected_equity"`
	MonthlyHousingCost     float64 `json:"monthly_housing_cost"`
	MonthlyRentEquivalent  float64 `json:"monthly_rent_equivalent"`
	MonthlyCashFlow        float64 `json:"monthly_cash_flow"`
	AnnualCashFlow         float64 `json:"annual_cash_flow"`
	TotalCashFlow          float64 `json:"total_cash_flow"`
	BreakEvenMonths        int     `json:"break_even_months"`
	BreakEvenYears         float64 `json:"break_even_years"`
	TotalInterestPaid      float64 `json:"total_interest_paid"`
	TotalPrincipalPaid     float64 `json:"total_principal_paid"`
	EffectiveAnnualRatePct float64 `json:"effective_annual_rate"`
}

type SensitivityRow struct {
	Variable      string    `json:"variable"`
	Perturbations []float64 `json:"perturbations"`
	Values        []float64 `json:"values"`
	Payments      []float64 `json:"payments"`
	Impacts       []float64 `json:"impacts"`
}

type Scenario struct {
	Name              string  `json:"name"`
	Probability       float64 `json:"probability"`
	RateShift         float64 `json:"rate_shift"`
	AppreciationShift float64 `json:"appreciation_shift"`
	MonthlyPayment    float64 `json:"monthly_payment"`
	TotalInterest     float64 `json:"total_interest"`
	ProjectedEquity   float64 `json:"projected_equity"`
}

// ScenarioSummary holds probability-weighted expectations across scenarios.
type ScenarioSummary struct {
	ExpectedPayment         float64 `json:"expected_payment"`
	ExpectedTotalInterest   float64 `json:"expected_total_interest"`
	ExpectedProjectedEquity float64 `json:"expected_projected_equity"`
}

type RiskFactor struct {
	Group  string  `json:"group"`
	Rule   string  `json:"rule"`
	Points float64 `json:"points"`
}

type RiskAssessment struct {
	RiskScore            float64      `json:"risk_score"`
	QualityScore         float64      `json:"quality_score"`
	RiskLevel            string       `json:"risk_level"`
	ProbabilityOfDefault float64      `json:"probability_of_default"`
	PaymentShockRisk     float64      `json:"payment_shock_risk"`
	InterestRateRisk     float64      `json:"interest_rate_risk"`
	Factors              []RiskFactor `json:"factors"`
}

type WarningCode string

const (
	WarningNegativeAmortization WarningCode = "negative_amortization"
	WarningDegenerateRate       WarningCode = "degenerate_rate"
	WarningBalloonDue           WarningCode = "balloon_payment_due"
	WarningBalanceOutstanding   WarningCode = "balance_outstanding_at_maturity"
)

// Warning flags a numerically valid but noteworthy condition.
type Warning struct {
	Code    WarningCode `json:"code"`
	Period  int         `json:"period,omitempty"`
	Message string      `json:"message"`
}

// SimulationResult is the single output record of the engine.
type SimulationResult struct {
	Payment         PaymentBreakdown  `json:"payment"`
	Schedule        []SchedulePeriod  `json:"schedule"`
	RateResets      []RateResetPeriod `json:"rate_resets,omitempty"`
	Metrics         DerivedMetrics    `json:"metrics"`
	Sensitivity     []SensitivityRow  `json:"sensitivity"`
	Scenarios       []Scenario        `json:"scenarios"`
	ScenarioSummary ScenarioSummary   `json:"scenario_summary"`
	Risk            RiskAssessment    `json:"risk"`
	Warnings        []Warning         `json:"warnings,omitempty"`
}

// SimulationRecord is a stored simulation as returned by the API.
type SimulationRecord struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Cached    bool             `json:"cached"`
	Input     SimulationInput  `json:"input"`
	Result    SimulationResult `json:"result"`
}

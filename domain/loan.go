package domain

import (
	"math"
	"time"
)

const (
	MonthsPerYear = 12

	MaxLoanAmount     = 1_000_000_000.0 // 1 billion
	MaxInterestRate   = 1000.0          // 1000% per year
	MinInterestRate   = -100.0
	MaxTermYears      = 50
	MaxTermMonths     = MaxTermYears * MonthsPerYear
	MinTermMonths     = 1
	MinCreditScore    = 300
	MaxCreditScore    = 850
	MaxDebtToIncome   = 100.0
	BalloonHorizonYrs = 30
)

// LoanInput is the short form used for a plain payment quote.
type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// ARMParams holds the contractual reset rules of an adjustable-rate loan.
// All rates are annual percentages.
type ARMParams struct {
	InitialFixedYears      int     `json:"initial_fixed_years"`
	AdjustmentPeriodMonths int     `json:"adjustment_period_months"`
	Margin                 float64 `json:"margin"`
	IndexRate              float64 `json:"index_rate"`
	LifetimeCap            float64 `json:"lifetime_cap"`
	PeriodicCap            float64 `json:"periodic_cap"`
	FloorRate              float64 `json:"floor_rate"`
}

// LoanTerms is the immutable description of the loan being simulated.
type LoanTerms struct {
	Principal   float64     `json:"principal"`
	AnnualRate  float64     `json:"annual_rate"`
	TermYears   int         `json:"term_years"`
	PaymentType PaymentType `json:"payment_type"`
	ARM         *ARMParams  `json:"arm,omitempty"`
	DownPayment float64     `json:"down_payment"`
	StartDate   time.Time   `json:"start_date"`
}

// TotalPeriods is the number of monthly payments until maturity.
func (t LoanTerms) TotalPeriods() int {
	return t.TermYears * MonthsPerYear
}

// Validate rejects terms the engine cannot simulate. It never adjusts values.
func (t LoanTerms) Validate() error {
	if !(t.Principal > 0) || math.IsInf(t.Principal, 0) {
		return invalidTerms("principal must be positive, got %v", t.Principal)
	}
	if t.TermYears <= 0 {
		return invalidTerms("term must be positive, got %d years", t.TermYears)
	}
	if math.IsNaN(t.AnnualRate) || t.AnnualRate < MinInterestRate {
		return invalidTerms("annual rate %v%% is below %v%%", t.AnnualRate, MinInterestRate)
	}
	if t.DownPayment < 0 {
		return invalidTerms("down payment cannot be negative")
	}
	if _, err := ParsePaymentType(string(t.PaymentType)); err != nil {
		return invalidTerms("%v", err)
	}

	if t.PaymentType == PaymentBalloon && t.TermYears > BalloonHorizonYrs {
		return invalidTerms("balloon term of %d years exceeds the %d year amortization horizon",
			t.TermYears, BalloonHorizonYrs)
	}

	if t.PaymentType != PaymentARM {
		if t.ARM != nil {
			return invalidTerms("arm parameters given for %s payment type", t.PaymentType)
		}
		return nil
	}
	if t.ARM == nil {
		return invalidTerms("arm payment type requires arm parameters")
	}
	return t.ARM.validate(t.AnnualRate)
}

func (p ARMParams) validate(initialRate float64) error {
	if p.InitialFixedYears < 0 {
		return invalidTerms("initial fixed period cannot be negative")
	}
	if p.AdjustmentPeriodMonths <= 0 {
		return invalidTerms("adjustment period must be positive, got %d months", p.AdjustmentPeriodMonths)
	}
	if p.PeriodicCap < 0 {
		return invalidTerms("periodic cap cannot be negative")
	}
	if p.FloorRate < MinInterestRate {
		return invalidTerms("floor rate %v%% is below %v%%", p.FloorRate, MinInterestRate)
	}
	if p.FloorRate > p.LifetimeCap {
		return invalidTerms("floor rate %v%% exceeds lifetime cap %v%%", p.FloorRate, p.LifetimeCap)
	}
	if initialRate < p.FloorRate || initialRate > p.LifetimeCap {
		return invalidTerms("initial rate %v%% outside [%v%%, %v%%]", initialRate, p.FloorRate, p.LifetimeCap)
	}
	return nil
}

// PropertyContext describes the collateral and its carrying costs.
type PropertyContext struct {
	Value            float64 `json:"value"`
	AppreciationRate float64 `json:"appreciation_rate"`
	AnnualInsurance  float64 `json:"annual_insurance"`
	AnnualTax        float64 `json:"annual_tax"`
	MonthlyHOA       float64 `json:"monthly_hoa"`
	// MonthlyRent overrides the 1%-of-value rent equivalent when positive.
	MonthlyRent float64 `json:"monthly_rent,omitempty"`
}

func (p PropertyContext) Validate() error {
	if !(p.Value > 0) || math.IsInf(p.Value, 0) {
		return invalidContext("property value must be positive, got %v", p.Value)
	}
	if p.AppreciationRate <= MinInterestRate {
		return invalidContext("appreciation rate must be above %v%%", MinInterestRate)
	}
	if p.AnnualInsurance < 0 || p.AnnualTax < 0 || p.MonthlyHOA < 0 || p.MonthlyRent < 0 {
		return invalidContext("carrying costs cannot be negative")
	}
	return nil
}

// MonthlyCarryingCost is insurance and tax prorated per month plus HOA dues.
func (p PropertyContext) MonthlyCarryingCost() float64 {
	return p.AnnualInsurance/MonthsPerYear + p.AnnualTax/MonthsPerYear + p.MonthlyHOA
}

type BorrowerContext struct {
	AnnualIncome float64            `json:"annual_income"`
	CreditScore  int                `json:"credit_score"`
	DebtToIncome float64            `json:"debt_to_income"`
	Employment   EmploymentCategory `json:"employment"`
}

func (b BorrowerContext) Validate() error {
	if b.AnnualIncome < 0 {
		return invalidContext("annual income cannot be negative")
	}
	if b.CreditScore < MinCreditScore || b.CreditScore > MaxCreditScore {
		return invalidContext("credit score %d outside [%d, %d]", b.CreditScore, MinCreditScore, MaxCreditScore)
	}
	if b.DebtToIncome < 0 || b.DebtToIncome > MaxDebtToIncome {
		return invalidContext("debt-to-income %v%% outside [0, %v]", b.DebtToIncome, MaxDebtToIncome)
	}
	if _, err := ParseEmploymentCategory(string(b.Employment)); err != nil {
		return invalidContext("%v", err)
	}
	return nil
}

// MarketContext is the market outlook. Condition drives the risk score;
// GrowthRate is carried through to the stored record for reporting and does
// not enter any calculation.
type MarketContext struct {
	Condition  MarketCondition `json:"condition"`
	GrowthRate float64         `json:"growth_rate"`
}

func (m MarketContext) Validate() error {
	if _, err := ParseMarketCondition(string(m.Condition)); err != nil {
		return invalidContext("%v", err)
	}
	return nil
}

// SimulationInput is the validated record the engine consumes.
type SimulationInput struct {
	Loan     LoanTerms       `json:"loan"`
	Property PropertyContext `json:"property"`
	Borrower BorrowerContext `json:"borrower"`
	Market   MarketContext   `json:"market"`
}

func (in SimulationInput) Validate() error {
	if err := in.Loan.Validate(); err != nil {
		return err
	}
	if err := in.Property.Validate(); err != nil {
		return err
	}
	if err := in.Borrower.Validate(); err != nil {
		return err
	}
	return in.Market.Validate()
}

// RiskProfile is the validated input of a stand-alone risk assessment.
type RiskProfile struct {
	Principal   float64         `json:"principal"`
	PaymentType PaymentType     `json:"payment_type"`
	Property    PropertyContext `json:"property"`
	Borrower    BorrowerContext `json:"borrower"`
	Market      MarketContext   `json:"market"`
}

func (p RiskProfile) Validate() error {
	if !(p.Principal > 0) || math.IsInf(p.Principal, 0) {
		return invalidTerms("principal must be positive, got %v", p.Principal)
	}
	if _, err := ParsePaymentType(string(p.PaymentType)); err != nil {
		return invalidTerms("%v", err)
	}
	if err := p.Property.Validate(); err != nil {
		return err
	}
	if err := p.Borrower.Validate(); err != nil {
		return err
	}
	return p.Market.Validate()
}

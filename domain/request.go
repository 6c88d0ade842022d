package domain

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// SimulationRequest is the raw, untrusted shape of a simulation call.
// Pointer fields distinguish "missing" from "zero".
type SimulationRequest struct {
	Loan     LoanRequest     `json:"loan"`
	Property PropertyRequest `json:"property"`
	Borrower BorrowerRequest `json:"borrower"`
	Market   MarketRequest   `json:"market"`
}

type LoanRequest struct {
	Principal   *float64    `json:"principal"`
	AnnualRate  *float64    `json:"annual_rate"`
	TermYears   *int        `json:"term_years"`
	PaymentType string      `json:"payment_type"`
	ARM         *ARMRequest `json:"arm,omitempty"`
	DownPayment *float64    `json:"down_payment,omitempty"`
	StartDate   string      `json:"start_date,omitempty"`
}

type ARMRequest struct {
	InitialFixedYears      *int     `json:"initial_fixed_years"`
	AdjustmentPeriodMonths *int     `json:"adjustment_period_months"`
	Margin                 *float64 `json:"margin"`
	IndexRate              *float64 `json:"index_rate"`
	LifetimeCap            *float64 `json:"lifetime_cap"`
	PeriodicCap            *float64 `json:"periodic_cap"`
	FloorRate              *float64 `json:"floor_rate"`
}

type PropertyRequest struct {
	Value            *float64 `json:"value"`
	AppreciationRate *float64 `json:"appreciation_rate,omitempty"`
	AnnualInsurance  *float64 `json:"annual_insurance,omitempty"`
	AnnualTax        *float64 `json:"annual_tax,omitempty"`
	MonthlyHOA       *float64 `json:"monthly_hoa,omitempty"`
	MonthlyRent      *float64 `json:"monthly_rent,omitempty"`
}

type BorrowerRequest struct {
	AnnualIncome *float64 `json:"annual_income"`
	CreditScore  *int     `json:"credit_score"`
	DebtToIncome *float64 `json:"debt_to_income"`
	Employment   string   `json:"employment"`
}

type MarketRequest struct {
	Condition  string   `json:"condition"`
	GrowthRate *float64 `json:"growth_rate,omitempty"`
}

// RiskRequest is the raw shape of a stand-alone risk assessment. It shares
// the field rules of SimulationRequest.
type RiskRequest struct {
	Principal   *float64        `json:"principal"`
	PaymentType string          `json:"payment_type"`
	Property    PropertyRequest `json:"property"`
	Borrower    BorrowerRequest `json:"borrower"`
	Market      MarketRequest   `json:"market"`
}

// Parse converts the request into a RiskProfile, reporting every field
// problem at once.
func (r RiskRequest) Parse() (RiskProfile, error) {
	var errs ValidationErrors

	p := RiskProfile{
		Principal:   principal(&errs, "principal", r.Principal),
		PaymentType: paymentType(&errs, "payment_type", r.PaymentType),
		Property:    r.Property.parse(&errs),
		Borrower:    r.Borrower.parse(&errs),
		Market:      r.Market.parse(&errs),
	}
	if len(errs) > 0 {
		return RiskProfile{}, errs
	}
	if err := p.Validate(); err != nil {
		return RiskProfile{}, err
	}
	return p, nil
}

// Parse converts the request into a SimulationInput. Every field problem is
// reported at once as ValidationErrors; structurally inconsistent terms that
// pass field checks come back as ErrInvalidLoanTerms.
func (r SimulationRequest) Parse() (SimulationInput, error) {
	var errs ValidationErrors

	loan := r.Loan.parse(&errs)
	property := r.Property.parse(&errs)
	borrower := r.Borrower.parse(&errs)
	market := r.Market.parse(&errs)

	if len(errs) > 0 {
		return SimulationInput{}, errs
	}

	in := SimulationInput{Loan: loan, Property: property, Borrower: borrower, Market: market}
	if err := in.Validate(); err != nil {
		return SimulationInput{}, err
	}
	return in, nil
}

func (r LoanRequest) parse(errs *ValidationErrors) LoanTerms {
	var t LoanTerms

	t.Principal = principal(errs, "loan.principal", r.Principal)

	t.AnnualRate = requiredFloat(errs, "loan.annual_rate", r.AnnualRate)
	if r.AnnualRate != nil && (*r.AnnualRate < MinInterestRate || *r.AnnualRate > MaxInterestRate) {
		errs.add("loan.annual_rate", "must be in [%.0f, %.0f]", MinInterestRate, MaxInterestRate)
	}

	if r.TermYears == nil {
		errs.add("loan.term_years", "is required")
	} else if *r.TermYears <= 0 || *r.TermYears > MaxTermYears {
		errs.add("loan.term_years", "must be in [1, %d]", MaxTermYears)
	} else {
		t.TermYears = *r.TermYears
	}

	t.PaymentType = paymentType(errs, "loan.payment_type", r.PaymentType)

	if r.DownPayment != nil {
		if *r.DownPayment < 0 {
			errs.add("loan.down_payment", "cannot be negative")
		}
		t.DownPayment = *r.DownPayment
	}

	if r.StartDate != "" {
		d, err := time.Parse(DateLayout, r.StartDate)
		if err != nil {
			errs.add("loan.start_date", "must use the %s layout", DateLayout)
		}
		t.StartDate = d
	}

	if r.ARM != nil {
		arm := r.ARM.parse(errs)
		t.ARM = &arm
	}
	return t
}

func (r ARMRequest) parse(errs *ValidationErrors) ARMParams {
	var p ARMParams
	p.InitialFixedYears = requiredInt(errs, "loan.arm.initial_fixed_years", r.InitialFixedYears)
	p.AdjustmentPeriodMonths = requiredInt(errs, "loan.arm.adjustment_period_months", r.AdjustmentPeriodMonths)
	p.Margin = requiredFloat(errs, "loan.arm.margin", r.Margin)
	p.IndexRate = requiredFloat(errs, "loan.arm.index_rate", r.IndexRate)
	p.LifetimeCap = requiredFloat(errs, "loan.arm.lifetime_cap", r.LifetimeCap)
	p.PeriodicCap = requiredFloat(errs, "loan.arm.periodic_cap", r.PeriodicCap)
	p.FloorRate = requiredFloat(errs, "loan.arm.floor_rate", r.FloorRate)
	return p
}

func (r PropertyRequest) parse(errs *ValidationErrors) PropertyContext {
	var p PropertyContext
	p.Value = requiredFloat(errs, "property.value", r.Value)
	if r.Value != nil && *r.Value <= 0 {
		errs.add("property.value", "must be positive")
	}
	p.AppreciationRate = optionalFloat(r.AppreciationRate)
	p.AnnualInsurance = nonNegative(errs, "property.annual_insurance", r.AnnualInsurance)
	p.AnnualTax = nonNegative(errs, "property.annual_tax", r.AnnualTax)
	p.MonthlyHOA = nonNegative(errs, "property.monthly_hoa", r.MonthlyHOA)
	p.MonthlyRent = nonNegative(errs, "property.monthly_rent", r.MonthlyRent)
	return p
}

func (r BorrowerRequest) parse(errs *ValidationErrors) BorrowerContext {
	var b BorrowerContext
	b.AnnualIncome = requiredFloat(errs, "borrower.annual_income", r.AnnualIncome)
	if r.AnnualIncome != nil && *r.AnnualIncome < 0 {
		errs.add("borrower.annual_income", "cannot be negative")
	}

	b.CreditScore = requiredInt(errs, "borrower.credit_score", r.CreditScore)
	if r.CreditScore != nil && (*r.CreditScore < MinCreditScore || *r.CreditScore > MaxCreditScore) {
		errs.add("borrower.credit_score", "must be in [%d, %d]", MinCreditScore, MaxCreditScore)
	}

	b.DebtToIncome = requiredFloat(errs, "borrower.debt_to_income", r.DebtToIncome)
	if r.DebtToIncome != nil && (*r.DebtToIncome < 0 || *r.DebtToIncome > MaxDebtToIncome) {
		errs.add("borrower.debt_to_income", "must be in [0, %.0f]", MaxDebtToIncome)
	}

	if r.Employment == "" {
		errs.add("borrower.employment", "is required")
	} else if e, err := ParseEmploymentCategory(r.Employment); err != nil {
		errs.add("borrower.employment", "%v", err)
	} else {
		b.Employment = e
	}
	return b
}

func (r MarketRequest) parse(errs *ValidationErrors) MarketContext {
	var m MarketContext
	if r.Condition == "" {
		errs.add("market.condition", "is required")
	} else if c, err := ParseMarketCondition(r.Condition); err != nil {
		errs.add("market.condition", "%v", err)
	} else {
		m.Condition = c
	}
	m.GrowthRate = optionalFloat(r.GrowthRate)
	return m
}

func principal(errs *ValidationErrors, field string, v *float64) float64 {
	p := requiredFloat(errs, field, v)
	if v != nil && (*v <= 0 || *v > MaxLoanAmount) {
		errs.add(field, "must be in (0, %.0f]", MaxLoanAmount)
	}
	return p
}

func paymentType(errs *ValidationErrors, field, s string) PaymentType {
	if s == "" {
		errs.add(field, "is required")
		return ""
	}
	pt, err := ParsePaymentType(s)
	if err != nil {
		errs.add(field, "%v", err)
		return ""
	}
	return pt
}

func requiredFloat(errs *ValidationErrors, field string, v *float64) float64 {
	if v == nil {
		errs.add(field, "is required")
		return 0
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		errs.add(field, "must be a finite number")
		return 0
	}
	return *v
}

func requiredInt(errs *ValidationErrors, field string, v *int) int {
	if v == nil {
		errs.add(field, "is required")
		return 0
	}
	return *v
}

func optionalFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func nonNegative(errs *ValidationErrors, field string, v *float64) float64 {
	if v == nil {
		return 0
	}
	if *v < 0 {
		errs.add(field, "cannot be negative")
	}
	return *v
}

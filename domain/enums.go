package domain

import "fmt"

// PaymentType selects how the periodic payment is derived.
type PaymentType string

const (
	PaymentAmortizing   PaymentType = "amortizing"
	PaymentInterestOnly PaymentType = "interest_only"
	PaymentBalloon      PaymentType = "balloon"
	PaymentARM          PaymentType = "arm"
)

// PaymentTypes lists every supported payment type.
var PaymentTypes = []PaymentType{
	PaymentAmortizing,
	PaymentInterestOnly,
	PaymentBalloon,
	PaymentARM,
}

// ParsePaymentType maps the wire value to a PaymentType.
func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case PaymentAmortizing, PaymentInterestOnly, PaymentBalloon, PaymentARM:
		return PaymentType(s), nil
	}
	return "", fmt.Errorf("unknown payment type %q", s)
}

// Amortizes reports whether regular payments are expected to retire the
// balance by maturity.
func (t PaymentType) Amortizes() bool {
	switch t {
	case PaymentAmortizing, PaymentARM:
		return true
	case PaymentInterestOnly, PaymentBalloon:
		return false
	}
	return false
}

// MarketCondition tags the local housing market.
type MarketCondition string

const (
	MarketDeclining MarketCondition = "declining"
	MarketStable    MarketCondition = "stable"
	MarketGrowing   MarketCondition = "growing"
	MarketHot       MarketCondition = "hot"
)

func ParseMarketCondition(s string) (MarketCondition, error) {
	switch MarketCondition(s) {
	case MarketDeclining, MarketStable, MarketGrowing, MarketHot:
		return MarketCondition(s), nil
	}
	return "", fmt.Errorf("unknown market condition %q", s)
}

// EmploymentCategory describes the borrower's income source.
type EmploymentCategory string

const (
	EmploymentSalaried     EmploymentCategory = "salaried"
	EmploymentSelfEmployed EmploymentCategory = "self_employed"
	EmploymentContract     EmploymentCategory = "contract"
	EmploymentRetired      EmploymentCategory = "retired"
	EmploymentUnemployed   EmploymentCategory = "unemployed"
)

func ParseEmploymentCategory(s string) (EmploymentCategory, error) {
	switch EmploymentCategory(s) {
	case EmploymentSalaried, EmploymentSelfEmployed, EmploymentContract,
		EmploymentRetired, EmploymentUnemployed:
		return EmploymentCategory(s), nil
	}
	return "", fmt.Errorf("unknown employment category %q", s)
}

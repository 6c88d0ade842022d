package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"loan-engine/domain"
)

// ScenarioPolicy is a named joint shift of rate and appreciation.
type ScenarioPolicy struct {
	Name              string
	Probability       float64
	RateShift         float64 // annual percentage points
	AppreciationShift float64 // annual percentage points
}

// Scenarios is the fixed scenario set. The probabilities are a policy
// constant and sum to 1.
var Scenarios = []ScenarioPolicy{
	{Name: "Conservative", Probability: 0.25, RateShift: 1.0, AppreciationShift: -2.0},
	{Name: "Base Case", Probability: 0.50, RateShift: 0, AppreciationShift: 0},
	{Name: "Aggressive", Probability: 0.25, RateShift: -1.0, AppreciationShift: 2.0},
}

// minScenarioAppreciation is the lowest appreciation a shifted scenario may
// carry; PropertyContext rejects -100% and below.
var minScenarioAppreciation = math.Nextafter(domain.MinInterestRate, 0)

// Apply returns shifted copies of the inputs. For ARM loans the index moves
// with the scenario and the starting rate stays inside the contract's floor
// and lifetime cap. Other loans keep the rate at or above MinInterestRate and
// appreciation stays above -100%, so valid input stays valid once shifted.
func (p ScenarioPolicy) Apply(terms domain.LoanTerms, property domain.PropertyContext) (domain.LoanTerms, domain.PropertyContext) {
	t := terms
	t.AnnualRate = math.Max(terms.AnnualRate+p.RateShift, domain.MinInterestRate)
	if terms.ARM != nil {
		arm := *terms.ARM
		arm.IndexRate += p.RateShift
		t.AnnualRate = clamp(terms.AnnualRate+p.RateShift, arm.FloorRate, arm.LifetimeCap)
		t.ARM = &arm
	}

	prop := property
	prop.AppreciationRate = math.Max(property.AppreciationRate+p.AppreciationShift, minScenarioAppreciation)
	return t, prop
}

// EvaluateScenarios recomputes the full schedule under each scenario and
// returns the per-scenario results with their probability-weighted means.
func EvaluateScenarios(terms domain.LoanTerms, property domain.PropertyContext) ([]domain.Scenario, domain.ScenarioSummary, error) {
	out := make([]domain.Scenario, 0, len(Scenarios))
	weights := make([]float64, 0, len(Scenarios))
	payments := make([]float64, 0, len(Scenarios))
	interests := make([]float64, 0, len(Scenarios))
	equities := make([]float64, 0, len(Scenarios))

	for _, policy := range Scenarios {
		t, prop := policy.Apply(terms, property)
		schedule, err := BuildSchedule(t, prop)
		if err != nil {
			return nil, domain.ScenarioSummary{}, err
		}

		weights = append(weights, policy.Probability)
		payments = append(payments, schedule.FirstPayment())
		interests = append(interests, schedule.TotalInterest())
		equities = append(equities, schedule.FinalEquity())

		out = append(out, domain.Scenario{
			Name:              policy.Name,
			Probability:       policy.Probability,
			RateShift:         policy.RateShift,
			AppreciationShift: policy.AppreciationShift,
			MonthlyPayment:    RoundCents(schedule.FirstPayment()),
			TotalInterest:     RoundCents(schedule.TotalInterest()),
			ProjectedEquity:   RoundCents(schedule.FinalEquity()),
		})
	}

	summary := domain.ScenarioSummary{
		ExpectedPayment:         RoundCents(stat.Mean(payments, weights)),
		ExpectedTotalInterest:   RoundCents(stat.Mean(interests, weights)),
		ExpectedProjectedEquity: RoundCents(stat.Mean(equities, weights)),
	}
	return out, summary, nil
}

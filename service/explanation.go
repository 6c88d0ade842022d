package service

import (
	"fmt"
	"strings"

	"loan-engine/domain"
)

// termAlternative is a runner-up term mentioned next to the recommendation.
type termAlternative struct {
	Term           int
	MonthlyPayment float64
	TotalInterest  float64
}

// explainTerm writes the reason attached to the top recommendation.
func explainTerm(
	top domain.TermRecommendation,
	preference domain.TermPreference,
	alternatives []termAlternative,
) string {
	var b strings.Builder

	switch preference {
	case domain.PreferMinimizeInterest:
		fmt.Fprintf(&b, "A %d month term keeps total interest at $%.2f with a monthly payment of $%.2f.",
			top.TermMonths, top.TotalInterest, top.MonthlyPayment)
	case domain.PreferMinimizePayment:
		fmt.Fprintf(&b, "A %d month term lowers the monthly payment to $%.2f, for $%.2f in total interest.",
			top.TermMonths, top.MonthlyPayment, top.TotalInterest)
	default:
		fmt.Fprintf(&b, "A %d month term balances a $%.2f monthly payment against $%.2f in total interest.",
			top.TermMonths, top.MonthlyPayment, top.TotalInterest)
	}

	if len(alternatives) > 0 {
		parts := make([]string, 0, len(alternatives))
		for _, alt := range alternatives {
			parts = append(parts, fmt.Sprintf("%d months ($%.2f/month, $%.2f interest)",
				alt.Term, alt.MonthlyPayment, alt.TotalInterest))
		}
		fmt.Fprintf(&b, " Next best: %s.", strings.Join(parts, ", "))
	}
	return b.String()
}

// reasonFor is the short reason given to every non-top recommendation.
func reasonFor(preference domain.TermPreference) string {
	switch preference {
	case domain.PreferMinimizeInterest:
		return "Term optimized to minimize total interest cost"
	case domain.PreferMinimizePayment:
		return "Term optimized to minimize the monthly payment"
	case domain.PreferBalanced:
		return "Balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}

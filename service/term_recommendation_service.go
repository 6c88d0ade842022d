package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"loan-engine/domain"
	"loan-engine/engine"
)

// ErrNoEligibleTerm is returned when every term in range exceeds the
// maximum monthly payment.
var ErrNoEligibleTerm = errors.New("no term fits the maximum monthly payment")

type TermRecommendationService struct {
	loanService *LoanService
	log         zerolog.Logger
}

func NewTermRecommendationService(loanService *LoanService, log zerolog.Logger) *TermRecommendationService {
	return &TermRecommendationService{
		loanService: loanService,
		log:         log.With().Str("service", "term_recommendation").Logger(),
	}
}

// RecommendTerm prices every term in [MinTermMonths, MaxTermMonths], drops
// those above the payment limit and ranks the rest by preference.
func (s *TermRecommendationService) RecommendTerm(
	_ context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {
	if err := validateTermInput(input); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	recommendations := []domain.TermRecommendation{}

	for term := input.MinTermMonths; term <= input.MaxTermMonths; term++ {
		result, err := s.loanService.quote(domain.LoanInput{
			Amount:       input.Amount,
			InterestRate: input.InterestRate,
			TermMonths:   term,
		})
		if err != nil {
			s.log.Warn().Err(err).Int("term_months", term).Msg("failed to price term")
			continue
		}

		if result.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     term,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			Score:          calculateScore(result, input, term),
			Reason:         reasonFor(input.Preference),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, ErrNoEligibleTerm
	}

	// stable so equal scores keep the shorter term first
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	alternatives := make([]termAlternative, 0, MaxAlternatives)
	for i := 1; i < len(recommendations) && i <= MaxAlternatives; i++ {
		alternatives = append(alternatives, termAlternative{
			Term:           recommendations[i].TermMonths,
			MonthlyPayment: recommendations[i].MonthlyPayment,
			TotalInterest:  recommendations[i].TotalInterest,
		})
	}
	recommendations[0].Reason = explainTerm(recommendations[0], input.Preference, alternatives)

	s.log.Debug().
		Int("recommended_term", recommendations[0].TermMonths).
		Int("eligible_terms", len(recommendations)).
		Msg("term recommended")

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermMonths,
		Recommendations: recommendations,
	}, nil
}

func validateTermInput(input domain.TermRecommendationInput) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", domain.ErrInvalidLoanTerms, fmt.Sprintf(format, args...))
	}
	switch {
	case input.Amount <= 0:
		return invalid("amount must be positive")
	case input.InterestRate < 0:
		return invalid("interest rate cannot be negative")
	case input.MinTermMonths <= 0 || input.MaxTermMonths <= 0:
		return invalid("term bounds must be positive")
	case input.MinTermMonths > input.MaxTermMonths:
		return invalid("minimum term exceeds maximum term")
	case input.MaxTermMonths > domain.MaxTermMonths:
		return invalid("maximum term exceeds the limit of %d months", domain.MaxTermMonths)
	case input.MaxTermMonths-input.MinTermMonths > MaxTermRangeMonths:
		return invalid("term range exceeds %d months", MaxTermRangeMonths)
	case input.MaxMonthlyPayment <= 0:
		return invalid("maximum monthly payment must be positive")
	}

	switch input.Preference {
	case domain.PreferMinimizeInterest, domain.PreferMinimizePayment, domain.PreferBalanced:
		return nil
	}
	return invalid("unknown preference %q", input.Preference)
}

// calculateScore normalizes interest, payment and term to 0-10 and weights
// them by preference.
func calculateScore(
	result domain.LoanResult,
	input domain.TermRecommendationInput,
	term int,
) float64 {
	maxPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MaxTermMonths) / 12
	minPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MinTermMonths) / 12

	interestRange := maxPossibleInterest - minPossibleInterest
	minPayment := input.Amount / float64(input.MaxTermMonths)
	paymentRange := input.MaxMonthlyPayment - minPayment

	var interestScore, paymentScore, termScore float64
	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (result.TotalInterest-minPossibleInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (result.MonthlyPayment-minPayment)/paymentRange)
	}
	if span := input.MaxTermMonths - input.MinTermMonths; span > 0 {
		termScore = 10.0 * (1.0 - float64(term-input.MinTermMonths)/float64(span))
	}

	var score float64
	switch input.Preference {
	case domain.PreferMinimizeInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case domain.PreferMinimizePayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	case domain.PreferBalanced:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return engine.RoundCents(score)
}

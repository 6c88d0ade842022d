package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"loan-engine/domain"
	"loan-engine/engine"
	"loan-engine/repository"
)

type LoanService struct {
	repo repository.LoanRepository
	log  zerolog.Logger
}

// NewLoanService creates a new LoanService with the given repository.
func NewLoanService(repo repository.LoanRepository, log zerolog.Logger) *LoanService {
	return &LoanService{
		repo: repo,
		log:  log.With().Str("service", "loan").Logger(),
	}
}

// CalculateLoan quotes a plain amortizing loan and records the quote.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	result, err := s.quote(input)
	if err != nil {
		return domain.LoanResult{}, err
	}

	// not critical if it fails
	if err := s.repo.Save(ctx, input, result); err != nil {
		s.log.Warn().Err(err).Msg("failed to save loan quote")
	}

	return result, nil
}

func (s *LoanService) quote(input domain.LoanInput) (domain.LoanResult, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanResult{}, err
	}

	schedule, err := engine.AmortizeMonths(input.Amount, input.InterestRate, input.TermMonths)
	if err != nil {
		return domain.LoanResult{}, err
	}

	b := schedule.Breakdown(domain.PaymentAmortizing, input.InterestRate)
	return domain.LoanResult{
		MonthlyPayment: b.MonthlyPayment,
		TotalPayment:   b.TotalPayment,
		TotalInterest:  b.TotalInterest,
	}, nil
}

func validateLoanInput(input domain.LoanInput) error {
	switch {
	case input.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidLoanTerms)
	case input.Amount > domain.MaxLoanAmount:
		return fmt.Errorf("%w: amount exceeds the maximum of %.2f", domain.ErrInvalidLoanTerms, domain.MaxLoanAmount)
	case input.InterestRate < 0:
		return fmt.Errorf("%w: interest rate cannot be negative", domain.ErrInvalidLoanTerms)
	case input.InterestRate > domain.MaxInterestRate:
		return fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", domain.ErrInvalidLoanTerms, domain.MaxInterestRate)
	case input.TermMonths < domain.MinTermMonths:
		return fmt.Errorf("%w: term must be at least %d month", domain.ErrInvalidLoanTerms, domain.MinTermMonths)
	case input.TermMonths > domain.MaxTermMonths:
		return fmt.Errorf("%w: term exceeds the maximum of %d months", domain.ErrInvalidLoanTerms, domain.MaxTermMonths)
	}
	return nil
}

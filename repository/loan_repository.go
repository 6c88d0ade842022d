package repository

import (
	"context"
	"errors"

	"loan-engine/domain"
)

var ErrNotFound = errors.New("not found")

// LoanRepository keeps payment quotes.
type LoanRepository interface {
	Save(ctx context.Context, input domain.LoanInput, result domain.LoanResult) error
}

// SimulationRepository keeps completed simulations so they can be fetched
// again by ID.
type SimulationRepository interface {
	Save(ctx context.Context, record domain.SimulationRecord) error
	FindByID(ctx context.Context, id string) (domain.SimulationRecord, error)
}

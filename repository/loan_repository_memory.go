package repository

import (
	"context"
	"fmt"
	"sync"

	"loan-engine/domain"
)

type quote struct {
	input  domain.LoanInput
	result domain.LoanResult
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.Mutex
	data []quote
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{}
}

// Save stores the quote in memory.
func (r *LoanRepositoryMemory) Save(
	_ context.Context,
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, quote{input: input, result: result})
	return nil
}

func (r *LoanRepositoryMemory) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// SimulationRepositoryMemory keeps simulation records keyed by ID.
type SimulationRepositoryMemory struct {
	mu      sync.RWMutex
	records map[string]domain.SimulationRecord
}

func NewSimulationRepositoryMemory() *SimulationRepositoryMemory {
	return &SimulationRepositoryMemory{
		records: make(map[string]domain.SimulationRecord),
	}
}

func (r *SimulationRepositoryMemory) Save(_ context.Context, record domain.SimulationRecord) error {
	if record.ID == "" {
		return fmt.Errorf("simulation record has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

func (r *SimulationRepositoryMemory) FindByID(_ context.Context, id string) (domain.SimulationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return domain.SimulationRecord{}, fmt.Errorf("simulation %s: %w", id, ErrNotFound)
	}
	return record, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"loan-engine/domain"
)

type MockLoanRepository struct {
	SaveCalled bool
	ForceError bool
}

func (m *MockLoanRepository) Save(
	_ context.Context,
	_ domain.LoanInput,
	_ domain.LoanResult,
) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	return nil
}

type MockSimulationRepository struct {
	Saved      []domain.SimulationRecord
	ForceError bool
}

func (m *MockSimulationRepository) Save(_ context.Context, record domain.SimulationRecord) error {
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockSimulationRepository) FindByID(_ context.Context, id string) (domain.SimulationRecord, error) {
	for _, r := range m.Saved {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.SimulationRecord{}, errors.New("not found")
}

// FailingCache errors on every call.
type FailingCache struct {
	Gets, Sets int
}

func (c *FailingCache) Get(context.Context, string) ([]byte, bool, error) {
	c.Gets++
	return nil, false, errors.New("connection refused")
}

func (c *FailingCache) Set(context.Context, string, []byte, time.Duration) error {
	c.Sets++
	return errors.New("connection refused")
}

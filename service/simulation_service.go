package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"loan-engine/domain"
	"loan-engine/engine"
	"loan-engine/repository"
)

// SimulationService runs the engine for API requests, caching results by a
// hash of the normalized input and keeping a record of every run.
type SimulationService struct {
	repo  repository.SimulationRepository
	cache repository.CacheRepository
	ttl   time.Duration
	log   zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewSimulationService(
	repo repository.SimulationRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *SimulationService {
	return &SimulationService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("service", "simulation").Logger(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Simulate parses and validates the request, then returns the stored record
// of the run. A missing start date defaults to the first day of next month.
func (s *SimulationService) Simulate(ctx context.Context, req domain.SimulationRequest) (domain.SimulationRecord, error) {
	in, err := req.Parse()
	if err != nil {
		return domain.SimulationRecord{}, err
	}
	now := s.now().UTC()
	if in.Loan.StartDate.IsZero() {
		in.Loan.StartDate = firstOfNextMonth(now)
	}

	key, err := cacheKey(in)
	if err != nil {
		return domain.SimulationRecord{}, fmt.Errorf("cache key: %w", err)
	}

	result, cached := s.lookup(ctx, key)
	if !cached {
		result, err = engine.Simulate(in)
		if err != nil {
			return domain.SimulationRecord{}, err
		}
		s.store(ctx, key, result)
	}

	record := domain.SimulationRecord{
		ID:        s.newID(),
		CreatedAt: now,
		Cached:    cached,
		Input:     in,
		Result:    result,
	}

	// not critical if it fails
	if err := s.repo.Save(ctx, record); err != nil {
		s.log.Warn().Err(err).Str("simulation_id", record.ID).Msg("failed to save simulation")
	}

	s.log.Info().
		Str("simulation_id", record.ID).
		Str("payment_type", string(in.Loan.PaymentType)).
		Int("periods", len(result.Schedule)).
		Float64("risk_score", result.Risk.RiskScore).
		Int("warnings", len(result.Warnings)).
		Bool("cached", cached).
		Msg("simulation completed")

	return record, nil
}

// Get returns a stored simulation.
func (s *SimulationService) Get(ctx context.Context, id string) (domain.SimulationRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// AssessRisk scores a loan without running any schedule.
func (s *SimulationService) AssessRisk(_ context.Context, req domain.RiskRequest) (domain.RiskAssessment, error) {
	profile, err := req.Parse()
	if err != nil {
		return domain.RiskAssessment{}, err
	}
	risk, err := engine.AssessProfile(profile)
	if err != nil {
		return domain.RiskAssessment{}, err
	}
	s.log.Debug().
		Float64("risk_score", risk.RiskScore).
		Str("risk_level", risk.RiskLevel).
		Msg("risk assessed")
	return risk, nil
}

func (s *SimulationService) lookup(ctx context.Context, key string) (domain.SimulationResult, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache lookup failed")
		return domain.SimulationResult{}, false
	}
	if !ok {
		return domain.SimulationResult{}, false
	}

	var result domain.SimulationResult
	if err := unmarshal(data, &result); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return domain.SimulationResult{}, false
	}
	normalizeTimes(&result)
	return result, true
}

func (s *SimulationService) store(ctx context.Context, key string, result domain.SimulationResult) {
	data, err := marshal(result)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode simulation for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache simulation")
	}
}

// cacheKey hashes the msgpack encoding of the validated input. Field order is
// fixed by the struct definitions, so equal inputs give equal keys.
func cacheKey(in domain.SimulationInput) (string, error) {
	data, err := marshal(in)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%016x", simulationKeyPrefix, xxhash.Sum64(data)), nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// normalizeTimes puts decoded timestamps back in UTC.
func normalizeTimes(r *domain.SimulationResult) {
	for i := range r.Schedule {
		r.Schedule[i].Date = r.Schedule[i].Date.UTC()
	}
	for i := range r.RateResets {
		r.RateResets[i].StartDate = r.RateResets[i].StartDate.UTC()
		r.RateResets[i].EndDate = r.RateResets[i].EndDate.UTC()
	}
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

package diagnosis

import (
	"context"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/geo"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
	"github.com/francedirectjp-art/astro-medical-system/internal/report"
)

// Service runs the diagnosis pipeline: validate, resolve region, calculate
// positions, classify, render.
type Service struct {
	calculator *chart.Calculator
	policy     chart.WeightPolicy
	assembler  *report.Assembler
	cache      *report.Cache
	logger     logger.Logger
}

// NewService wires the pipeline. cache may be nil when Redis is disabled.
func NewService(calculator *chart.Calculator, policy chart.WeightPolicy, assembler *report.Assembler, cache *report.Cache, log logger.Logger) *Service {
	return &Service{
		calculator: calculator,
		policy:     policy,
		assembler:  assembler,
		cache:      cache,
		logger:     log,
	}
}

// Chart computes positions, balance and archetype for one birth record.
// Every request recomputes from scratch; results carry no state between
// calls.
func (s *Service) Chart(ctx context.Context, in BirthInput) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ref, err := geo.Resolve(in.Region, in.Year, in.Month, in.Day)
	if err != nil {
		return nil, err
	}

	positions, err := s.calculator.Positions(in.Year, in.Month, in.Day, in.Hour, in.Minute, ref)
	if err != nil {
		return nil, err
	}

	balance := chart.ComputeBalance(positions, s.policy)

	sun, _ := chart.Find(positions, ephemeris.Sun)
	moon, _ := chart.Find(positions, ephemeris.Moon)
	archetype := chart.ArchetypeFor(sun.Element(), moon.Element())

	s.logger.Debug("chart computed", map[string]interface{}{
		"region":    ref.Region.Code,
		"archetype": archetype.ID,
	})

	return &Result{
		Input:     in,
		Reference: ref,
		Positions: positions,
		Balance:   balance,
		Archetype: archetype,
	}, nil
}

// SimpleReport computes the chart and renders the short diagnosis text.
func (s *Service) SimpleReport(ctx context.Context, in BirthInput) (*Result, *report.Rendered, error) {
	return s.renderReport(ctx, in, report.TypeSimple)
}

// DetailedReport computes the chart and renders the full six-section report.
func (s *Service) DetailedReport(ctx context.Context, in BirthInput) (*Result, *report.Rendered, error) {
	return s.renderReport(ctx, in, report.TypeDetailed)
}

func (s *Service) renderReport(ctx context.Context, in BirthInput, reportType string) (*Result, *report.Rendered, error) {
	result, err := s.Chart(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	key := report.CacheKey(in.fingerprint(), reportType, s.policy.Name())
	if cached, ok := s.cache.Get(ctx, key); ok {
		return result, cached, nil
	}

	facts := s.buildFacts(result)

	var rendered *report.Rendered
	switch reportType {
	case report.TypeDetailed:
		rendered = s.assembler.Detailed(ctx, facts)
	default:
		rendered = s.assembler.Simple(ctx, facts)
	}

	s.cache.Put(ctx, key, rendered)
	return result, rendered, nil
}

func (s *Service) buildFacts(r *Result) *report.Facts {
	return &report.Facts{
		Name:       r.Input.Name,
		BirthDate:  r.Input.DateLabel(),
		BirthTime:  r.Input.TimeLabel(),
		BirthPlace: r.Reference.Region.Name,
		Positions:  r.Positions,
		Balance:    r.Balance,
		Archetype:  r.Archetype,
	}
}

package diagnosis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
	apperrors "github.com/francedirectjp-art/astro-medical-system/internal/common/errors"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
	"github.com/francedirectjp-art/astro-medical-system/internal/report"
)

// fixedSource returns canned longitudes and counts queries.
type fixedSource struct {
	longitudes map[ephemeris.Body]float64
	calls      int
}

func (f *fixedSource) EclipticLongitude(body ephemeris.Body, _ time.Time, _, _ float64) (float64, error) {
	f.calls++
	return f.longitudes[body], nil
}

// failingGenerator forces every report onto the fallback path.
type failingGenerator struct{ calls int }

func (g *failingGenerator) Generate(context.Context, report.GenerationRequest) (string, error) {
	g.calls++
	return "", report.ErrGenerationFailed
}

func chartLongitudes() map[ephemeris.Body]float64 {
	return map[ephemeris.Body]float64{
		ephemeris.Sun:     54.46,  // Taurus, Earth
		ephemeris.Moon:    210.0,  // Scorpio, Water
		ephemeris.Mercury: 35.0,   // Taurus, Earth
		ephemeris.Venus:   5.0,    // Aries, Fire
		ephemeris.Mars:    330.0,  // Pisces, Water
		ephemeris.Jupiter: 100.0,  // Cancer, Water
		ephemeris.Saturn:  295.0,  // Capricorn, Earth
	}
}

func newTestService(t *testing.T, src ephemeris.Source, gen report.Generator) *Service {
	t.Helper()
	log := logger.NewTestLogger(t)
	assembler := report.NewAssembler(gen, report.AssemblerConfig{
		Timeout:             time.Second,
		ShortTargetChars:    1000,
		DetailedTargetChars: 12000,
		LengthTolerance:     0.2,
	}, log)
	return NewService(chart.NewCalculator(src), chart.EqualWeights{}, assembler, nil, log)
}

func TestChartPipeline(t *testing.T) {
	src := &fixedSource{longitudes: chartLongitudes()}
	svc := newTestService(t, src, &failingGenerator{})

	result, err := svc.Chart(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, result.Positions, 7)
	assert.Equal(t, "東京都", result.Reference.Region.Name)
	assert.Equal(t, chart.Earth, result.SunElement())
	assert.Equal(t, chart.Water, result.MoonElement())
	assert.Equal(t, chart.ArchetypeFor(chart.Earth, chart.Water).ID, result.Archetype.ID)
	assert.InDelta(t, 7.0, result.Balance.Total(), 1e-9)
}

func TestChartDeterministic(t *testing.T) {
	src := &fixedSource{longitudes: chartLongitudes()}
	svc := newTestService(t, src, &failingGenerator{})

	first, err := svc.Chart(context.Background(), validInput())
	require.NoError(t, err)
	second, err := svc.Chart(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, first.Positions, second.Positions)
	assert.Equal(t, first.Archetype, second.Archetype)
}

func TestChartValidationFailsBeforeEphemeris(t *testing.T) {
	src := &fixedSource{longitudes: chartLongitudes()}
	svc := newTestService(t, src, &failingGenerator{})

	in := validInput()
	in.Month = 13
	_, err := svc.Chart(context.Background(), in)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
	assert.Zero(t, src.calls, "invalid input must not reach the ephemeris")
}

func TestChartUnknownRegionFailsBeforeEphemeris(t *testing.T) {
	src := &fixedSource{longitudes: chartLongitudes()}
	svc := newTestService(t, src, &failingGenerator{})

	in := validInput()
	in.Region = "Atlantis"
	_, err := svc.Chart(context.Background(), in)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnsupportedRegion))
	assert.Zero(t, src.calls)
}

func TestChartOutOfRangeYear(t *testing.T) {
	svc := newTestService(t, ephemeris.NewAnalytic(), &failingGenerator{})

	in := validInput()
	in.Year = 1850
	_, err := svc.Chart(context.Background(), in)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeEphemerisUnavailable))
}

func TestSimpleReportFallsBackOnGenerationFailure(t *testing.T) {
	src := &fixedSource{longitudes: chartLongitudes()}
	gen := &failingGenerator{}
	svc := newTestService(t, src, gen)

	result, rendered, err := svc.SimpleReport(context.Background(), validInput())
	require.NoError(t, err, "generation failures never surface to the caller")

	assert.Equal(t, report.StateFallbackRendered, rendered.State)
	assert.Contains(t, rendered.Text, result.Archetype.Name)
	assert.Equal(t, 1, gen.calls, "one attempt, no retries")
}

func TestDetailedReportFallsBackPerSection(t *testing.T) {
	src := &fixedSource{longitudes: chartLongitudes()}
	gen := &failingGenerator{}
	svc := newTestService(t, src, gen)

	_, rendered, err := svc.DetailedReport(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, report.StateFallbackRendered, rendered.State)
	assert.Len(t, rendered.Sections, len(report.DetailedSections))
	assert.Equal(t, len(report.DetailedSections), gen.calls)
}

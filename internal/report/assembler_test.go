package report

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
)

// stubGenerator returns canned text or an error, and records calls.
type stubGenerator struct {
	text  string
	err   error
	calls []GenerationRequest
}

func (s *stubGenerator) Generate(_ context.Context, req GenerationRequest) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	if s.text != "" {
		return s.text, nil
	}
	// Fill the requested length so output lands inside the tolerance band.
	return strings.Repeat("あ", req.TargetChars), nil
}

func testFacts() *Facts {
	longitudes := map[ephemeris.Body]float64{
		ephemeris.Sun:     54.46,  // Taurus, Earth
		ephemeris.Moon:    210.0,  // Scorpio, Water
		ephemeris.Mercury: 35.0,   // Taurus, Earth
		ephemeris.Venus:   5.0,    // Aries, Fire
		ephemeris.Mars:    330.0,  // Pisces, Water
		ephemeris.Jupiter: 100.0,  // Cancer, Water
		ephemeris.Saturn:  295.0,  // Capricorn, Earth
	}

	positions := make([]chart.Position, 0, len(ephemeris.Bodies))
	for _, body := range ephemeris.Bodies {
		sign, degree := chart.SignFromLongitude(longitudes[body])
		positions = append(positions, chart.Position{
			Body: body, Longitude: longitudes[body], Sign: sign, Degree: degree,
		})
	}

	balance := chart.ComputeBalance(positions, chart.EqualWeights{})
	return &Facts{
		Name:       "太郎",
		BirthDate:  "1990年5月15日",
		BirthTime:  "14時30分",
		BirthPlace: "東京都",
		Positions:  positions,
		Balance:    balance,
		Archetype:  chart.ArchetypeFor(chart.Earth, chart.Water),
	}
}

func newTestAssembler(t *testing.T, gen Generator) *Assembler {
	t.Helper()
	return NewAssembler(gen, AssemblerConfig{
		Timeout:             2 * time.Second,
		ShortTargetChars:    1000,
		DetailedTargetChars: 12000,
		LengthTolerance:     0.2,
	}, logger.NewTestLogger(t))
}

func TestSimpleRendered(t *testing.T) {
	gen := &stubGenerator{}
	a := newTestAssembler(t, gen)

	r := a.Simple(context.Background(), testFacts())

	assert.Equal(t, StateRendered, r.State)
	assert.Equal(t, TypeSimple, r.Type)
	assert.Equal(t, 1000, r.CharCount)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, "simple_diagnosis", gen.calls[0].TemplateID)
}

func TestSimpleFallbackOnError(t *testing.T) {
	gen := &stubGenerator{err: ErrGenerationFailed}
	a := newTestAssembler(t, gen)
	facts := testFacts()

	r := a.Simple(context.Background(), facts)

	assert.Equal(t, StateFallbackRendered, r.State)
	assert.NotEmpty(t, r.Text)
	// The fallback must name the archetype and the dominant element share.
	assert.Contains(t, r.Text, facts.Archetype.Name)
	top, topPct := facts.TopElement()
	assert.Contains(t, r.Text, top.Label())
	assert.Contains(t, r.Text, fmt.Sprintf("%.1f%%", topPct))
}

func TestSimpleFallbackOnGrosslyShortOutput(t *testing.T) {
	gen := &stubGenerator{text: "短い"}
	a := newTestAssembler(t, gen)

	r := a.Simple(context.Background(), testFacts())
	assert.Equal(t, StateFallbackRendered, r.State)
}

func TestSimpleKeepsTextOutsideBand(t *testing.T) {
	// 600 chars is under the 800-1200 band but well above the unusable
	// floor: the text is kept with a warning, not replaced.
	gen := &stubGenerator{text: strings.Repeat("あ", 600)}
	a := newTestAssembler(t, gen)

	r := a.Simple(context.Background(), testFacts())
	assert.Equal(t, StateRendered, r.State)
	assert.Equal(t, 600, r.CharCount)
}

func TestSimpleSingleAttempt(t *testing.T) {
	gen := &stubGenerator{err: ErrGenerationTimeout}
	a := newTestAssembler(t, gen)

	_ = a.Simple(context.Background(), testFacts())
	assert.Len(t, gen.calls, 1, "no retry after a failed attempt")
}

func TestDetailedRendered(t *testing.T) {
	gen := &stubGenerator{}
	a := newTestAssembler(t, gen)

	r := a.Detailed(context.Background(), testFacts())

	assert.Equal(t, StateRendered, r.State)
	assert.Equal(t, TypeDetailed, r.Type)
	require.Len(t, gen.calls, len(DetailedSections))
	require.Len(t, r.Sections, len(DetailedSections))
	for _, s := range DetailedSections {
		assert.Contains(t, r.Sections, s.ID)
		assert.Contains(t, r.Text, "【"+s.Title+"】")
	}
	assert.Equal(t, utf8.RuneCountInString(r.Text), r.CharCount)
}

func TestDetailedFallbackOnError(t *testing.T) {
	gen := &stubGenerator{err: ErrGenerationFailed}
	a := newTestAssembler(t, gen)
	facts := testFacts()

	r := a.Detailed(context.Background(), facts)

	assert.Equal(t, StateFallbackRendered, r.State)
	require.Len(t, r.Sections, len(DetailedSections))
	assert.Contains(t, r.Text, facts.Archetype.Name)
	assert.NotEmpty(t, r.Sections["prescription"])
}

func TestSectionFractionsSumToOne(t *testing.T) {
	var sum float64
	for _, s := range DetailedSections {
		sum += s.Fraction
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestShortFallbackDeterministic(t *testing.T) {
	facts := testFacts()
	assert.Equal(t, ShortFallback(facts), ShortFallback(facts))
}

func TestDetailedFallbackMentionsEveryElement(t *testing.T) {
	facts := testFacts()
	text, sections := DetailedFallback(facts)

	require.Len(t, sections, len(DetailedSections))
	for _, e := range chart.Elements {
		assert.Contains(t, sections["constitution"], e.Label())
	}
	assert.Contains(t, text, facts.Archetype.Name)
}

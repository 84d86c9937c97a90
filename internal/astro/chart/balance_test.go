package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
)

// samplePositions places the seven bodies across all four elements.
func samplePositions() []Position {
	longitudes := map[ephemeris.Body]float64{
		ephemeris.Sun:     54.46,  // Taurus, Earth
		ephemeris.Moon:    210.0,  // Scorpio, Water
		ephemeris.Mercury: 35.0,   // Taurus, Earth
		ephemeris.Venus:   5.0,    // Aries, Fire
		ephemeris.Mars:    330.0,  // Pisces, Water
		ephemeris.Jupiter: 100.0,  // Cancer, Water
		ephemeris.Saturn:  295.0,  // Capricorn, Earth
	}

	out := make([]Position, 0, len(ephemeris.Bodies))
	for _, body := range ephemeris.Bodies {
		lon := longitudes[body]
		sign, degree := SignFromLongitude(lon)
		out = append(out, Position{Body: body, Longitude: lon, Sign: sign, Degree: degree})
	}
	return out
}

func TestComputeBalanceEqualWeights(t *testing.T) {
	b := ComputeBalance(samplePositions(), EqualWeights{})

	assert.InDelta(t, 7.0, b.Total(), 1e-9)
	assert.InDelta(t, 1.0, b.Weight(Fire), 1e-9)
	assert.InDelta(t, 3.0, b.Weight(Earth), 1e-9)
	assert.InDelta(t, 0.0, b.Weight(Air), 1e-9)
	assert.InDelta(t, 3.0, b.Weight(Water), 1e-9)
}

func TestComputeBalanceSignificanceWeights(t *testing.T) {
	b := ComputeBalance(samplePositions(), SignificanceWeights{})

	// Sun and Moon carry 1.5 units each, the planets 0.8; the total stays 7.
	assert.InDelta(t, 7.0, b.Total(), 1e-9)
	assert.InDelta(t, 1.5+0.8+0.8, b.Weight(Earth), 1e-9) // Sun, Mercury, Saturn
	assert.InDelta(t, 1.5+0.8+0.8, b.Weight(Water), 1e-9) // Moon, Mars, Jupiter
	assert.InDelta(t, 0.8, b.Weight(Fire), 1e-9)
}

func TestScoresSumToOne(t *testing.T) {
	for _, policy := range []WeightPolicy{EqualWeights{}, SignificanceWeights{}} {
		b := ComputeBalance(samplePositions(), policy)

		var sum float64
		for _, e := range Elements {
			score := b.Score(e)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			sum += score
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "policy %s", policy.Name())
	}
}

func TestPercentRounding(t *testing.T) {
	b := ComputeBalance(samplePositions(), EqualWeights{})

	// 3/7 is 42.857...%, shown as 42.9.
	assert.InDelta(t, 42.9, b.Percent(Earth), 1e-9)
	assert.InDelta(t, 14.3, b.Percent(Fire), 1e-9)
	assert.InDelta(t, 0.0, b.Percent(Air), 1e-9)
}

func TestDominantOrdering(t *testing.T) {
	b := ComputeBalance(samplePositions(), EqualWeights{})
	order := b.Dominant()

	require.Len(t, order, 4)
	// Earth and Water tie at 3; canonical order keeps Earth first.
	assert.Equal(t, Earth, order[0])
	assert.Equal(t, Water, order[1])
	assert.Equal(t, Fire, order[2])
	assert.Equal(t, Air, order[3])
}

func TestEmptyBalance(t *testing.T) {
	var b Balance
	for _, e := range Elements {
		assert.Zero(t, b.Score(e))
	}
}

func TestPolicyByName(t *testing.T) {
	assert.Equal(t, "equal", PolicyByName("equal").Name())
	assert.Equal(t, "significance", PolicyByName("significance").Name())
	assert.Equal(t, "equal", PolicyByName("bogus").Name())
}

package chart

import (
	"time"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/geo"
	apperrors "github.com/francedirectjp-art/astro-medical-system/internal/common/errors"
)

// Position is the resolved placement of one body. Created once per request
// and immutable thereafter.
type Position struct {
	Body      ephemeris.Body `json:"body"`
	Longitude float64        `json:"longitude"` // degrees, [0, 360)
	Sign      Sign           `json:"sign"`
	Degree    float64        `json:"degree"` // degrees within sign, [0, 30)
}

// Element returns the element of the position's sign.
func (p Position) Element() Element {
	return p.Sign.Element()
}

// Calculator computes the seven body placements for one birth instant.
type Calculator struct {
	source ephemeris.Source
}

func NewCalculator(source ephemeris.Source) *Calculator {
	return &Calculator{source: source}
}

// Positions converts the local civil birth instant to UTC using the resolved
// region offset, queries the ephemeris once per body, and bins each
// longitude into a sign. An ephemeris failure aborts the whole set; partial
// results are never returned.
func (c *Calculator) Positions(year, month, day, hour, minute int, ref geo.Reference) ([]Position, error) {
	local := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	instantUTC := local.Add(-ref.UTCOffset)

	positions := make([]Position, 0, len(ephemeris.Bodies))
	for _, body := range ephemeris.Bodies {
		lon, err := c.source.EclipticLongitude(body, instantUTC, ref.Latitude, ref.Longitude)
		if err != nil {
			return nil, apperrors.NewEphemerisUnavailableError(err)
		}

		norm := NormalizeLongitude(lon)
		sign, degree := SignFromLongitude(norm)
		positions = append(positions, Position{
			Body:      body,
			Longitude: norm,
			Sign:      sign,
			Degree:    degree,
		})
	}

	return positions, nil
}

// Find returns the position of one body from a computed set.
func Find(positions []Position, body ephemeris.Body) (Position, bool) {
	for _, p := range positions {
		if p.Body == body {
			return p, true
		}
	}
	return Position{}, false
}

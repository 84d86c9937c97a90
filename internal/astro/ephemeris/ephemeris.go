// Package ephemeris computes geocentric ecliptic longitudes for the seven
// classical bodies. The analytic implementation is a low-precision planetary
// theory sufficient for 30-degree sign binning; it is a pure function of the
// instant and safe for concurrent use.
package ephemeris

import (
	"errors"
	"fmt"
	"time"
)

// Body identifies a tracked celestial body.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
)

// Bodies lists the tracked bodies in canonical order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

func (b Body) String() string {
	switch b {
	case Sun:
		return "Sun"
	case Moon:
		return "Moon"
	case Mercury:
		return "Mercury"
	case Venus:
		return "Venus"
	case Mars:
		return "Mars"
	case Jupiter:
		return "Jupiter"
	case Saturn:
		return "Saturn"
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// Key returns the lowercase wire identifier used in API payloads.
func (b Body) Key() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	case Mercury:
		return "mercury"
	case Venus:
		return "venus"
	case Mars:
		return "mars"
	case Jupiter:
		return "jupiter"
	case Saturn:
		return "saturn"
	}
	return "unknown"
}

// Label returns the Japanese display name.
func (b Body) Label() string {
	switch b {
	case Sun:
		return "太陽"
	case Moon:
		return "月"
	case Mercury:
		return "水星"
	case Venus:
		return "金星"
	case Mars:
		return "火星"
	case Jupiter:
		return "木星"
	case Saturn:
		return "土星"
	}
	return "不明"
}

// ErrOutOfRange indicates the instant falls outside the supported range.
var ErrOutOfRange = errors.New("instant outside supported ephemeris range")

// Supported year range. The analytic series degrade outside this window.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Source answers ecliptic-longitude queries. Latitude and longitude are the
// observer coordinates in degrees; the analytic implementation computes
// geocentric positions and does not apply topocentric corrections.
type Source interface {
	EclipticLongitude(body Body, instantUTC time.Time, latitude, longitude float64) (float64, error)
}

// JulianDay converts a UTC instant to a Julian day number.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y := t.Year()
	m := int(t.Month())
	day := float64(t.Day()) +
		float64(t.Hour())/24 +
		float64(t.Minute())/1440 +
		float64(t.Second())/86400

	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4

	return float64(int(365.25*float64(y+4716))) +
		float64(int(30.6001*float64(m+1))) +
		day + float64(b) - 1524.5
}

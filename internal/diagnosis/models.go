// Package diagnosis orchestrates a birth record through position
// calculation, element classification and report rendering.
package diagnosis

import (
	"fmt"
	"strings"
	"time"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/geo"
	apperrors "github.com/francedirectjp-art/astro-medical-system/internal/common/errors"
)

// BirthInput is the standard request shape shared by all diagnosis
// operations.
type BirthInput struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Region string `json:"region"`
}

// Validate checks form only: field presence, range and calendar validity.
// It runs before any region or ephemeris work so malformed requests never
// reach the calculation pipeline. Year bounds are the ephemeris's concern,
// not the input's.
func (b BirthInput) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return apperrors.NewInvalidInputError("name is required")
	}
	if strings.TrimSpace(b.Region) == "" {
		return apperrors.NewInvalidInputError("region is required")
	}
	if b.Month < 1 || b.Month > 12 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("month %d out of range", b.Month))
	}
	if b.Day < 1 || b.Day > 31 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("day %d out of range", b.Day))
	}
	if b.Hour < 0 || b.Hour > 23 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("hour %d out of range", b.Hour))
	}
	if b.Minute < 0 || b.Minute > 59 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("minute %d out of range", b.Minute))
	}
	// Reject dates like February 30 that pass the per-field checks.
	t := time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != b.Year || int(t.Month()) != b.Month || t.Day() != b.Day {
		return apperrors.NewInvalidInputError(
			fmt.Sprintf("%d-%02d-%02d is not a valid calendar date", b.Year, b.Month, b.Day))
	}
	return nil
}

// DateLabel formats the birth date for reports, e.g. 1990年5月15日.
func (b BirthInput) DateLabel() string {
	return fmt.Sprintf("%d年%d月%d日", b.Year, b.Month, b.Day)
}

// TimeLabel formats the birth time for reports, e.g. 14時30分.
func (b BirthInput) TimeLabel() string {
	return fmt.Sprintf("%d時%02d分", b.Hour, b.Minute)
}

// fingerprint returns the canonical string used for cache keys. Name is
// included because rendered reports address the reader by name.
func (b BirthInput) fingerprint() string {
	return fmt.Sprintf("%s|%04d-%02d-%02dT%02d:%02d@%s", b.Name, b.Year, b.Month, b.Day, b.Hour, b.Minute, b.Region)
}

// Result is the computed chart for one birth record.
type Result struct {
	Input     BirthInput
	Reference geo.Reference
	Positions []chart.Position
	Balance   chart.Balance
	Archetype chart.Archetype
}

// SunElement returns the Sun sign's element.
func (r *Result) SunElement() chart.Element {
	return r.Archetype.SunElement
}

// MoonElement returns the Moon sign's element.
func (r *Result) MoonElement() chart.Element {
	return r.Archetype.MoonElement
}

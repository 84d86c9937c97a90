// Package report assembles the per-request fact bundle and renders it as
// prose, either through the external text-generation service or through the
// deterministic fallback renderer.
package report

import (
	"fmt"
	"strings"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
)

// Disclaimer is attached to every rendered report.
const Disclaimer = "本結果はエンターテインメント目的です。医療診断や治療の代替ではありません。"

// Facts is the complete structured bundle for one request. It is the sole
// input contract for both the generative renderer and the fallback renderer,
// created fresh per request and discarded after the response.
type Facts struct {
	Name       string
	BirthDate  string // e.g. 1990年5月15日
	BirthTime  string // e.g. 14時30分
	BirthPlace string // e.g. 東京都

	Positions []chart.Position
	Balance   chart.Balance
	Archetype chart.Archetype
}

// SunElement returns the Sun's element.
func (f *Facts) SunElement() chart.Element {
	if p, ok := chart.Find(f.Positions, ephemeris.Sun); ok {
		return p.Element()
	}
	return chart.Fire
}

// MoonElement returns the Moon's element.
func (f *Facts) MoonElement() chart.Element {
	if p, ok := chart.Find(f.Positions, ephemeris.Moon); ok {
		return p.Element()
	}
	return chart.Water
}

// TopElement returns the dominant element and its percentage.
func (f *Facts) TopElement() (chart.Element, float64) {
	top := f.Balance.Dominant()[0]
	return top, f.Balance.Percent(top)
}

// balanceLines renders the element percentages for prompts and fallbacks.
func (f *Facts) balanceLines() string {
	var b strings.Builder
	for _, e := range chart.Elements {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", e.Label(), f.Balance.Percent(e))
	}
	return b.String()
}

// positionLines renders the seven placements for prompts and fallbacks.
func (f *Facts) positionLines() string {
	var b strings.Builder
	for _, p := range f.Positions {
		fmt.Fprintf(&b, "- %s: %s %.1f度（%s）\n", p.Body.Label(), p.Sign.Label(), p.Degree, p.Element().Label())
	}
	return b.String()
}

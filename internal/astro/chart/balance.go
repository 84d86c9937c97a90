package chart

import (
	"math"
	"sort"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
)

// WeightPolicy assigns each body its contribution to the element balance.
// Every policy must distribute the same fixed total (one unit per body, 7)
// so that balances from different policies stay comparable.
type WeightPolicy interface {
	Weight(body ephemeris.Body) float64
	Name() string
}

// EqualWeights gives every body one unit. This is the default policy.
type EqualWeights struct{}

func (EqualWeights) Weight(ephemeris.Body) float64 { return 1 }
func (EqualWeights) Name() string                  { return "equal" }

// SignificanceWeights emphasizes the luminaries while preserving the
// constant total of 7: Sun and Moon count 1.5 units, the five planets 0.8.
type SignificanceWeights struct{}

func (SignificanceWeights) Weight(body ephemeris.Body) float64 {
	switch body {
	case ephemeris.Sun, ephemeris.Moon:
		return 1.5
	default:
		return 0.8
	}
}

func (SignificanceWeights) Name() string { return "significance" }

// PolicyByName returns the named weighting policy, defaulting to equal.
func PolicyByName(name string) WeightPolicy {
	if name == "significance" {
		return SignificanceWeights{}
	}
	return EqualWeights{}
}

// Balance is the aggregated element weights for one chart. Weights always
// sum to the number of body units (7).
type Balance struct {
	weights [4]float64
	total   float64
}

// ComputeBalance aggregates each position's element contribution.
func ComputeBalance(positions []Position, policy WeightPolicy) Balance {
	var b Balance
	for _, p := range positions {
		w := policy.Weight(p.Body)
		b.weights[p.Element()] += w
		b.total += w
	}
	return b
}

// Weight returns the raw weight for one element.
func (b Balance) Weight(e Element) float64 {
	return b.weights[e]
}

// Total returns the sum of all weights.
func (b Balance) Total() float64 {
	return b.total
}

// Score returns the tendency score weight/total in [0, 1]. The four scores
// sum to 1 within floating-point tolerance.
func (b Balance) Score(e Element) float64 {
	if b.total == 0 {
		return 0
	}
	return b.weights[e] / b.total
}

// Percent returns the score as a percentage rounded to one decimal, the
// form shown in reports.
func (b Balance) Percent(e Element) float64 {
	return math.Round(b.Score(e)*1000) / 10
}

// Dominant returns the elements ordered by descending weight; ties keep
// canonical element order so the result is deterministic.
func (b Balance) Dominant() []Element {
	out := make([]Element, len(Elements))
	copy(out, Elements)
	sort.SliceStable(out, func(i, j int) bool {
		return b.weights[out[i]] > b.weights[out[j]]
	})
	return out
}

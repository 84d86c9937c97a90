// Package chart turns ecliptic longitudes into zodiac signs, elemental
// balance and the sixteen constitutional archetypes.
package chart

import "math"

// Sign is one of the twelve 30-degree bins of ecliptic longitude.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signLabels = [12]string{
	"牡羊座", "牡牛座", "双子座", "蟹座", "獅子座", "乙女座",
	"天秤座", "蠍座", "射手座", "山羊座", "水瓶座", "魚座",
}

func (s Sign) String() string {
	if s < 0 || s > 11 {
		return "Unknown"
	}
	return signNames[s]
}

// Label returns the Japanese display name.
func (s Sign) Label() string {
	if s < 0 || s > 11 {
		return "未知の星座"
	}
	return signLabels[s]
}

// Element classifies signs into the four classical elements.
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

// Elements lists the four elements in canonical order.
var Elements = []Element{Fire, Earth, Air, Water}

var elementNames = [4]string{"Fire", "Earth", "Air", "Water"}
var elementLabels = [4]string{"火", "地", "風", "水"}

func (e Element) String() string {
	if e < 0 || e > 3 {
		return "Unknown"
	}
	return elementNames[e]
}

// Label returns the Japanese display name.
func (e Element) Label() string {
	if e < 0 || e > 3 {
		return "不明"
	}
	return elementLabels[e]
}

// Element returns the sign's element. Assignment is cyclic from Aries:
// Fire, Earth, Air, Water, repeating.
func (s Sign) Element() Element {
	return Element(int(s) % 4)
}

// NormalizeLongitude maps a raw longitude in degrees into [0, 360).
// Values already in range round-trip exactly.
func NormalizeLongitude(deg float64) float64 {
	if deg >= 0 && deg < 360 {
		return deg
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SignFromLongitude bins a normalized longitude into a sign and the degree
// within that sign.
func SignFromLongitude(deg float64) (Sign, float64) {
	norm := NormalizeLongitude(deg)
	sign := Sign(int(norm/30) % 12)
	return sign, math.Mod(norm, 30)
}

package ephemeris

import (
	"fmt"
	"math"
	"time"
)

// Analytic is the built-in position source. Solar longitude comes from the
// standard solar theory, lunar longitude from the principal terms of the
// lunar theory, and the five planets from osculating J2000 orbital elements
// with centennial rates, reduced to geocentric ecliptic longitude.
type Analytic struct{}

func NewAnalytic() *Analytic {
	return &Analytic{}
}

func (a *Analytic) EclipticLongitude(body Body, instantUTC time.Time, latitude, longitude float64) (float64, error) {
	year := instantUTC.UTC().Year()
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, year, MinYear, MaxYear)
	}

	jd := JulianDay(instantUTC)
	t := (jd - 2451545.0) / 36525.0 // Julian centuries since J2000.0

	switch body {
	case Sun:
		return solarLongitude(t), nil
	case Moon:
		return lunarLongitude(t), nil
	case Mercury, Venus, Mars, Jupiter, Saturn:
		return planetLongitude(body, t)
	}
	return 0, fmt.Errorf("%w: unknown body %d", ErrOutOfRange, int(body))
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// wrap360 reduces an angle in degrees into [0, 360).
func wrap360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// solarLongitude returns the geocentric true longitude of the Sun in degrees.
func solarLongitude(t float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := deg2rad(357.52911 + 35999.05029*t - 0.0001537*t*t)

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	return wrap360(l0 + c)
}

// lunarLongitude returns the geocentric longitude of the Moon in degrees,
// from the dominant periodic terms. Accuracy is a few hundredths of a degree,
// far inside the 30-degree sign bins.
func lunarLongitude(t float64) float64 {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t // mean longitude
	d := deg2rad(297.8501921 + 445267.1114034*t - 0.0018819*t*t)
	m := deg2rad(357.5291092 + 35999.0502909*t - 0.0001536*t*t)
	mp := deg2rad(134.9633964 + 477198.8675055*t + 0.0087414*t*t)
	f := deg2rad(93.2720950 + 483202.0175233*t - 0.0036539*t*t)

	dl := 6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m) -
		0.040923*math.Sin(m-mp) -
		0.034720*math.Sin(d) -
		0.030383*math.Sin(m+mp)

	return wrap360(lp + dl)
}

// orbitalElements holds J2000 mean elements and centennial rates:
// semi-major axis (au), eccentricity, inclination, mean longitude,
// longitude of perihelion, longitude of the ascending node (degrees).
type orbitalElements struct {
	a, e, i, l, lp, node       float64
	da, de, di, dl, dlp, dnode float64
}

var planetElements = map[Body]orbitalElements{
	Mercury: {
		a: 0.38709927, e: 0.20563593, i: 7.00497902, l: 252.25032350, lp: 77.45779628, node: 48.33076593,
		da: 0.00000037, de: 0.00001906, di: -0.00594749, dl: 149472.67411175, dlp: 0.16047689, dnode: -0.12534081,
	},
	Venus: {
		a: 0.72333566, e: 0.00677672, i: 3.39467605, l: 181.97909950, lp: 131.60246718, node: 76.67984255,
		da: 0.00000390, de: -0.00004107, di: -0.00078890, dl: 58517.81538729, dlp: 0.00268329, dnode: -0.27769418,
	},
	Mars: {
		a: 1.52371034, e: 0.09339410, i: 1.84969142, l: -4.55343205, lp: -23.94362959, node: 49.55953891,
		da: 0.00001847, de: 0.00007882, di: -0.00813131, dl: 19140.30268499, dlp: 0.44441088, dnode: -0.29257343,
	},
	Jupiter: {
		a: 5.20288700, e: 0.04838624, i: 1.30439695, l: 34.39644051, lp: 14.72847983, node: 100.47390909,
		da: -0.00011607, de: -0.00013253, di: -0.00183714, dl: 3034.74612775, dlp: 0.21252668, dnode: 0.20469106,
	},
	Saturn: {
		a: 9.53667594, e: 0.05386179, i: 2.48599187, l: 49.95424423, lp: 92.59887831, node: 113.66242448,
		da: -0.00125060, de: -0.00050991, di: 0.00193609, dl: 1222.49362201, dlp: -0.41897216, dnode: -0.28867794,
	},
}

// earthElements is the Earth-Moon barycenter, used to shift heliocentric
// planet positions to the geocenter.
var earthElements = orbitalElements{
	a: 1.00000261, e: 0.01671123, i: -0.00001531, l: 100.46457166, lp: 102.93768193, node: 0,
	da: 0.00000562, de: -0.00004392, di: -0.01294668, dl: 35999.37244981, dlp: 0.32327364, dnode: 0,
}

// heliocentric computes rectangular ecliptic coordinates (au) at t centuries
// from J2000 for the given element set.
func heliocentric(el orbitalElements, t float64) (x, y, z float64) {
	a := el.a + el.da*t
	e := el.e + el.de*t
	i := deg2rad(el.i + el.di*t)
	l := el.l + el.dl*t
	lp := el.lp + el.dlp*t
	node := deg2rad(el.node + el.dnode*t)

	omega := deg2rad(lp) - node // argument of perihelion
	m := deg2rad(wrap360(l - lp))

	ecc := solveKepler(m, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cosO, sinO := math.Cos(omega), math.Sin(omega)
	cosN, sinN := math.Cos(node), math.Sin(node)
	cosI, sinI := math.Cos(i), math.Sin(i)

	x = (cosO*cosN-sinO*sinN*cosI)*xp + (-sinO*cosN-cosO*sinN*cosI)*yp
	y = (cosO*sinN+sinO*cosN*cosI)*xp + (-sinO*sinN+cosO*cosN*cosI)*yp
	z = (sinO*sinI)*xp + (cosO*sinI)*yp
	return x, y, z
}

// solveKepler iterates E - e*sin(E) = M with Newton's method. M in radians.
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for iter := 0; iter < 20; iter++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-9 {
			break
		}
	}
	return ecc
}

// planetLongitude reduces a planet's heliocentric position to geocentric
// ecliptic longitude in degrees.
func planetLongitude(body Body, t float64) (float64, error) {
	el, ok := planetElements[body]
	if !ok {
		return 0, fmt.Errorf("%w: no elements for %s", ErrOutOfRange, body)
	}

	px, py, _ := heliocentric(el, t)
	ex, ey, _ := heliocentric(earthElements, t)

	gx := px - ex
	gy := py - ey

	return wrap360(rad2deg(math.Atan2(gy, gx))), nil
}

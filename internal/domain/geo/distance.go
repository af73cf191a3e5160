// Package geo resolves customer addresses to coordinates and measures
// their distance from the office.
package geo

import "math"

// GRS80 ellipsoid constants.
const (
	semiMajorAxis = 6378137.0
	semiMinorAxis = 6356752.314140
)

// DistanceKm returns the distance in kilometers between two points
// using Hubeny's formula on the GRS80 ellipsoid. It is accurate to
// well under a meter at the scale of a service area, which is all the
// distance-based pricing needs.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	e2 := (semiMajorAxis*semiMajorAxis - semiMinorAxis*semiMinorAxis) /
		(semiMajorAxis * semiMajorAxis)

	dy := toRadians(lat1 - lat2)
	dx := toRadians(lon1 - lon2)
	meanLat := toRadians((lat1 + lat2) / 2)

	w := math.Sqrt(1 - e2*math.Pow(math.Sin(meanLat), 2))
	meridian := semiMajorAxis * (1 - e2) / math.Pow(w, 3)
	primeVertical := semiMajorAxis / w

	d := math.Sqrt(
		math.Pow(dy*meridian, 2) +
			math.Pow(dx*primeVertical*math.Cos(meanLat), 2),
	)
	return d / 1000
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

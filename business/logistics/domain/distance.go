// Package domain implements the logistics calculations behind trade
// valuation: inter-store distances and transport cost estimation.
package domain

import (
	"math"

	"github.com/fd1az/trade-console/internal/catalog"
)

const earthRadiusKM = 6371

// Fallback distance bounds for stores missing from the catalog.
const (
	minFallbackKM = 5
	maxFallbackKM = 500
)

// Haversine returns the great-circle distance in kilometers between two
// coordinates, rounded to one decimal place.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKM*c*10) / 10
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// fallbackDistance estimates a distance from the numeric store IDs when one
// or both stores have no known coordinates. The result is clamped to
// [5, 500] km so downstream cost figures stay plausible.
func fallbackDistance(src, tgt catalog.StoreID) float64 {
	raw := math.Abs(float64(src.Number()-tgt.Number())) / 100
	return math.Max(minFallbackKM, math.Min(maxFallbackKM, raw*50))
}

package utils

import "math"

const earthRadiusKm = 6371

type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// The two fixed meridian reference points the planner steers a trip between
// to keep it circling the globe in one direction.
var (
	PrimeMeridianTarget         = GeoPoint{Latitude: 40, Longitude: 0}
	OppositePrimeMeridianTarget = GeoPoint{Latitude: 40, Longitude: 180}
)

// DistanceKm is the great-circle distance via the spherical law of cosines.
// The acos argument is clamped to [-1, 1]; floating error can push it just
// outside for identical or near-antipodal points.
func DistanceKm(a, b GeoPoint) float64 {
	lat1 := degToRad(a.Latitude)
	lat2 := degToRad(b.Latitude)
	dLon := degToRad(b.Longitude) - degToRad(a.Longitude)

	arg := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return math.Acos(arg) * earthRadiusKm
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// OppositeHemispheres reports whether two longitudes lie on opposite sides
// of the prime meridian. A longitude of exactly zero is on neither side.
func OppositeHemispheres(lon1, lon2 float64) bool {
	return (lon1 < 0 && lon2 > 0) || (lon1 > 0 && lon2 < 0)
}

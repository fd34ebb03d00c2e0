// Package geo converts GPS fixes into local planar offsets.
package geo

import "math"

// MetersPerDegree is the length of one degree of latitude used by the
// equirectangular approximation.
const MetersPerDegree = 111_319.5

// Offset is a position in meters relative to a reference fix.
// X grows east, Y grows north.
type Offset struct {
	X, Y float64
}

// Project maps (lat, lon) onto the tangent plane at (lat0, lon0). The
// cosine factor is taken from the reference latitude so that every point of
// a session shares one scale.
func Project(lat, lon, lat0, lon0 float64) Offset {
	return Offset{
		X: (lon - lon0) * MetersPerDegree * math.Cos(lat0*math.Pi/180),
		Y: (lat - lat0) * MetersPerDegree,
	}
}

// Distance returns the Euclidean distance between two offsets.
func Distance(a, b Offset) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

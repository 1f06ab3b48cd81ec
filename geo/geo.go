// Package geo provides the geographic primitives shared by the PBF
// extractor and the route-position tracker: coordinates, great-circle
// distance, segment projection and cumulative arc lengths.
package geo

import "math"

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const earthRadiusKM = 6371.0

// HaversineMeters returns the great-circle distance between a and b in meters.
func HaversineMeters(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKM * c * 1000
}

// ProjectOntoSegment projects p onto the segment from a to b, treating
// lat/lon as planar coordinates. The planar approximation is fine for the
// segment lengths found in trail routes (tens of meters). Returns the
// segment parameter t clamped to [0,1] and the projected point.
func ProjectOntoSegment(p, a, b Coordinate) (float64, Coordinate) {
	vx := b.Lon - a.Lon
	vy := b.Lat - a.Lat
	wx := p.Lon - a.Lon
	wy := p.Lat - a.Lat

	denom := vx*vx + vy*vy
	t := 0.0
	if denom > 0 {
		t = (wx*vx + wy*vy) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return t, Coordinate{Lat: a.Lat + t*vy, Lon: a.Lon + t*vx}
}

// CumulativeDistances returns the running arc length in meters at each
// vertex of the polyline. The first entry is always 0 and entries never
// decrease.
func CumulativeDistances(coords []Coordinate) []float64 {
	if len(coords) == 0 {
		return nil
	}
	cum := make([]float64, len(coords))
	for i := 1; i < len(coords); i++ {
		cum[i] = cum[i-1] + HaversineMeters(coords[i-1], coords[i])
	}
	return cum
}

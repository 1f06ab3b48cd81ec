package geo

import (
	"math"
	"testing"
)

// metersPerDegree is the meridian arc length of one degree on the sphere
// used by HaversineMeters.
const metersPerDegree = math.Pi / 180 * 6371000

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		{"same point", Coordinate{Lat: 47.5, Lon: 11.2}, Coordinate{Lat: 47.5, Lon: 11.2}, 0},
		{"one degree lon at equator", Coordinate{}, Coordinate{Lon: 1}, metersPerDegree},
		{"one degree lat", Coordinate{Lat: 46}, Coordinate{Lat: 47}, metersPerDegree},
		{"symmetric", Coordinate{Lat: 47, Lon: 11}, Coordinate{Lat: 47.01, Lon: 11.01}, 1345.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1.5 {
				t.Errorf("HaversineMeters = %.2f, want %.2f", got, tt.want)
			}
			back := HaversineMeters(tt.b, tt.a)
			if math.Abs(got-back) > 1e-9 {
				t.Errorf("distance not symmetric: %.6f vs %.6f", got, back)
			}
		})
	}
}

func TestProjectOntoSegment(t *testing.T) {
	a := Coordinate{Lat: 0, Lon: 0}
	b := Coordinate{Lat: 0, Lon: 1}

	tests := []struct {
		name  string
		p     Coordinate
		wantT float64
	}{
		{"midpoint", Coordinate{Lat: 0.1, Lon: 0.5}, 0.5},
		{"before start clamps", Coordinate{Lat: 0, Lon: -2}, 0},
		{"past end clamps", Coordinate{Lat: 0, Lon: 3}, 1},
		{"on start", Coordinate{Lat: 0, Lon: 0}, 0},
		{"quarter", Coordinate{Lat: -0.3, Lon: 0.25}, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, proj := ProjectOntoSegment(tt.p, a, b)
			if math.Abs(gotT-tt.wantT) > 1e-12 {
				t.Errorf("t = %g, want %g", gotT, tt.wantT)
			}
			if math.Abs(proj.Lat-0) > 1e-12 {
				t.Errorf("projected point off the segment: lat %g", proj.Lat)
			}
			if math.Abs(proj.Lon-tt.wantT) > 1e-12 {
				t.Errorf("projected lon %g, want %g", proj.Lon, tt.wantT)
			}
		})
	}
}

func TestProjectOntoDegenerateSegment(t *testing.T) {
	a := Coordinate{Lat: 1, Lon: 1}
	gotT, proj := ProjectOntoSegment(Coordinate{Lat: 5, Lon: 5}, a, a)
	if gotT != 0 {
		t.Errorf("t = %g, want 0 for zero-length segment", gotT)
	}
	if proj != a {
		t.Errorf("projected point %v, want %v", proj, a)
	}
}

func TestCumulativeDistances(t *testing.T) {
	coords := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.001},
		{Lat: 0, Lon: 0.002},
		{Lat: 0, Lon: 0.002}, // repeated vertex, zero-length segment
	}
	cum := CumulativeDistances(coords)
	if len(cum) != len(coords) {
		t.Fatalf("expected %d entries, got %d", len(coords), len(cum))
	}
	if cum[0] != 0 {
		t.Errorf("first entry %g, want 0", cum[0])
	}
	for i := 1; i < len(cum); i++ {
		if cum[i] < cum[i-1] {
			t.Errorf("cumulative distance decreased at %d: %v", i, cum)
		}
	}
	step := 0.001 * metersPerDegree
	if math.Abs(cum[2]-2*step) > 0.01 {
		t.Errorf("cum[2] = %.3f, want %.3f", cum[2], 2*step)
	}
	if cum[3] != cum[2] {
		t.Errorf("zero-length segment changed the total: %g vs %g", cum[3], cum[2])
	}
}

func TestCumulativeDistancesEmpty(t *testing.T) {
	if got := CumulativeDistances(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := CumulativeDistances([]Coordinate{{Lat: 1, Lon: 1}}); len(got) != 1 || got[0] != 0 {
		t.Errorf("expected [0] for single point, got %v", got)
	}
}

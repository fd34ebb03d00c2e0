package geo

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func TestProjectOrigin(t *testing.T) {
	o := Project(52.1, 21.0, 52.1, 21.0)
	if o.X != 0 || o.Y != 0 {
		t.Fatalf("Project(ref, ref) = %+v, want zero offset", o)
	}
}

func TestProjectNorth(t *testing.T) {
	lat0, lon0 := 45.0, 7.0
	o := Project(lat0+10/MetersPerDegree, lon0, lat0, lon0)
	if math.Abs(o.Y-10) > epsilon || math.Abs(o.X) > epsilon {
		t.Fatalf("10 m north projected to %+v", o)
	}
}

func TestProjectUsesReferenceLatitude(t *testing.T) {
	lat0, lon0 := 60.0, 10.0
	// cos(60°) == 0.5, so one degree of longitude is half a latitude degree.
	o := Project(lat0+1, lon0+1, lat0, lon0)
	if math.Abs(o.X-MetersPerDegree*0.5) > 1e-3 {
		t.Errorf("X = %v, want %v", o.X, MetersPerDegree*0.5)
	}
	if math.Abs(o.Y-MetersPerDegree) > 1e-3 {
		t.Errorf("Y = %v, want %v", o.Y, MetersPerDegree)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Offset
		want float64
	}{
		{"same point", Offset{1, 1}, Offset{1, 1}, 0},
		{"axis", Offset{0, 0}, Offset{0, 10}, 10},
		{"pythagorean", Offset{0, 0}, Offset{3, 4}, 5},
		{"negative", Offset{-3, 0}, Offset{0, -4}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

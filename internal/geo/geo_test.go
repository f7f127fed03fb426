package geo

import (
	"math"
	"testing"
)

func TestCoordinate_Equal(t *testing.T) {
	a := Coordinate{Lon: -111.5, Lat: 40.2}
	b := Coordinate{Lon: -111.5, Lat: 40.2}
	c := Coordinate{Lon: -111.5000001, Lat: 40.2}

	if !a.Equal(b) {
		t.Error("expected identical coordinates to be equal")
	}
	if a.Equal(c) {
		t.Error("expected offset coordinates to be unequal")
	}
}

func TestCoordinate_EqualWithin(t *testing.T) {
	a := Coordinate{Lon: -111.5, Lat: 40.2}
	b := Coordinate{Lon: -111.5 + 5e-10, Lat: 40.2 - 5e-10}

	if !a.EqualWithin(b, 1e-9) {
		t.Error("expected coordinates within epsilon to be equal")
	}
	if a.EqualWithin(b, 1e-11) {
		t.Error("expected coordinates outside epsilon to be unequal")
	}
}

func TestPolyline_Clone(t *testing.T) {
	p := Polyline{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}
	c := p.Clone()

	c[0].Lon = 99
	if p[0].Lon != 1 {
		t.Error("mutating the clone modified the original")
	}
}

func TestPolyline_Reversed(t *testing.T) {
	p := Polyline{{Lon: 1, Lat: 1}, {Lon: 2, Lat: 2}, {Lon: 3, Lat: 3}}
	r := p.Reversed()

	if !r.First().Equal(p.Last()) || !r.Last().Equal(p.First()) {
		t.Errorf("expected reversed endpoints, got %v", r)
	}
	if !r[1].Equal(p[1]) {
		t.Errorf("expected middle coordinate unchanged, got %v", r[1])
	}
	// Original untouched
	if !p.First().Equal(Coordinate{Lon: 1, Lat: 1}) {
		t.Error("Reversed modified the original")
	}
}

func TestPolyline_FirstLastEmpty(t *testing.T) {
	var p Polyline
	if !p.First().Equal(Coordinate{}) || !p.Last().Equal(Coordinate{}) {
		t.Error("expected zero value for empty polyline endpoints")
	}
}

func TestDistanceMeters_OneDegreeLatitude(t *testing.T) {
	a := Coordinate{Lon: 0, Lat: 0}
	b := Coordinate{Lon: 0, Lat: 1}

	d := DistanceMeters(a, b)
	// One degree of latitude on the mean-radius sphere.
	want := earthRadiusM * math.Pi / 180
	if math.Abs(d-want) > 0.01 {
		t.Errorf("expected %.2f m, got %.2f m", want, d)
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := Coordinate{Lon: -111.5, Lat: 40.2}
	b := Coordinate{Lon: -111.6, Lat: 40.3}

	if DistanceMeters(a, b) != DistanceMeters(b, a) {
		t.Error("expected symmetric distance")
	}
	if DistanceMeters(a, a) != 0 {
		t.Error("expected zero self distance")
	}
}

func TestMilesFromMeters(t *testing.T) {
	if mi := MilesFromMeters(1609.344); math.Abs(mi-1) > 1e-12 {
		t.Errorf("expected 1 mile, got %f", mi)
	}
}

func TestPolyline_LengthMeters(t *testing.T) {
	p := Polyline{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 0, Lat: 2}}

	want := 2 * earthRadiusM * math.Pi / 180
	if d := p.LengthMeters(); math.Abs(d-want) > 0.01 {
		t.Errorf("expected %.2f m, got %.2f m", want, d)
	}

	if d := (Polyline{{Lon: 0, Lat: 0}}).LengthMeters(); d != 0 {
		t.Errorf("expected zero length for single point, got %f", d)
	}
}

func TestPolyline_LineStringRoundTrip(t *testing.T) {
	p := Polyline{{Lon: -111.5, Lat: 40.2}, {Lon: -111.4, Lat: 40.3}, {Lon: -111.3, Lat: 40.25}}

	ls, err := p.LineString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back := PolylineFromLineString(ls)
	if len(back) != len(p) {
		t.Fatalf("expected %d coordinates, got %d", len(p), len(back))
	}
	for i := range p {
		if !back[i].Equal(p[i]) {
			t.Errorf("coordinate %d: expected %v, got %v", i, p[i], back[i])
		}
	}
}

func TestPolyline_LineStringDegenerate(t *testing.T) {
	_, err := Polyline{{Lon: 1, Lat: 2}}.LineString()
	if err != ErrDegeneratePolyline {
		t.Errorf("expected ErrDegeneratePolyline, got %v", err)
	}
}

func TestCoordinateFromString_Valid(t *testing.T) {
	c, err := CoordinateFromString("-111.5,40.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lon != -111.5 || c.Lat != 40.2 {
		t.Errorf("expected (-111.5, 40.2), got %v", c)
	}
}

func TestCoordinateFromString_ExtraComponents(t *testing.T) {
	c, err := CoordinateFromString("-111.5, 40.2, 1500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lon != -111.5 || c.Lat != 40.2 {
		t.Errorf("expected elevation ignored, got %v", c)
	}
}

func TestCoordinateFromString_Invalid(t *testing.T) {
	cases := []string{"", "-111.5", "abc,def", "-111.5,"}
	for _, in := range cases {
		if _, err := CoordinateFromString(in); err != ErrInvalidCoordinates {
			t.Errorf("input %q: expected ErrInvalidCoordinates, got %v", in, err)
		}
	}
}

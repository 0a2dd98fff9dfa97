package utils

import "testing"

func TestParseCoordinates_CommaDecimalWithDegreeSign(t *testing.T) {
	lat, lon, ok := ParseCoordinates("55,75222°", "37,61556°")
	if !ok {
		t.Fatalf("expected ok")
	}
	if lat != 55.75222 || lon != 37.61556 {
		t.Fatalf("got (%v, %v), want (55.75222, 37.61556)", lat, lon)
	}
}

func TestParseCoordinates_Accepted(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon string
		wantLat  float64
		wantLon  float64
	}{
		{"dot decimal", "55.7", "37.6", 55.7, 37.6},
		{"bounds inclusive", "-90", "180", -90, 180},
		{"other bounds", "90", "-180", 90, -180},
		{"spaces around degree sign", " 55.7 ° ", "\t37.6°\n", 55.7, 37.6},
		{"explicit plus", "+10", "+20", 10, 20},
		{"leading dot", ".5", "-.5", 0.5, -0.5},
		{"exponent", "1e1", "2E1", 10, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon, ok := ParseCoordinates(tc.lat, tc.lon)
			if !ok {
				t.Fatalf("ParseCoordinates(%q, %q): expected ok", tc.lat, tc.lon)
			}
			if lat != tc.wantLat || lon != tc.wantLon {
				t.Fatalf("got (%v, %v), want (%v, %v)", lat, lon, tc.wantLat, tc.wantLon)
			}
		})
	}
}

func TestParseCoordinates_Rejected(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon string
	}{
		{"latitude out of range", "91", "0"},
		{"longitude out of range", "0", "180.00001"},
		{"empty latitude", "", "37.6"},
		{"empty longitude", "55.7", ""},
		{"only degree sign", "°", "37.6"},
		{"letters", "abc", "37.6"},
		{"double sign", "--5", "37.6"},
		{"two separators", "55,7,5", "37.6"},
		{"hex", "0x10", "37.6"},
		{"nan", "NaN", "37.6"},
		{"inf", "55.7", "Inf"},
		{"underscore", "1_0", "37.6"},
		{"degree sign in front", "°55.7", "37.6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon, ok := ParseCoordinates(tc.lat, tc.lon)
			if ok {
				t.Fatalf("ParseCoordinates(%q, %q) = (%v, %v, true), want ok=false", tc.lat, tc.lon, lat, lon)
			}
			if lat != 0 || lon != 0 {
				t.Fatalf("rejected input must not yield values, got (%v, %v)", lat, lon)
			}
		})
	}
}

func TestFormatCoordinate(t *testing.T) {
	if got := FormatCoordinate(55.75222); got != "55,75222°" {
		t.Fatalf("FormatCoordinate = %q", got)
	}
	if got := FormatCoordinate(-0.5); got != "-0,50000°" {
		t.Fatalf("FormatCoordinate = %q", got)
	}

	lat, _, ok := ParseCoordinates(FormatCoordinate(12.34567), "0")
	if !ok || lat != 12.34567 {
		t.Fatalf("formatted coordinate does not parse back: %v %v", lat, ok)
	}
}

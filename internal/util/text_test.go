package util

import "testing"

func TestSanitizeUnit(t *testing.T) {
	cases := []struct {
		name string
		a    string
		b    string
	}{
		{name: "ascii vs micro sign", a: "/uL", b: "/µL"},
		{name: "ascii vs greek mu", a: "/uL", b: "/μL"},
		{name: "spacing and case", a: "g/dL", b: " G / DL "},
		{name: "million per microliter", a: "million/uL", b: "Million / µL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := SanitizeUnit(tc.a), SanitizeUnit(tc.b); got != want {
				t.Fatalf("%q != %q", got, want)
			}
		})
	}
}

func TestSimilarityScore(t *testing.T) {
	if got := SimilarityScore("hemoglobin", "Hemoglobin"); got != 100 {
		t.Fatalf("exact got %d", got)
	}
	if got := SimilarityScore("hemglobin", "hemoglobin"); got != 90 {
		t.Fatalf("one edit got %d", got)
	}
	if got := SimilarityScore("wbc", "rbc"); got >= 75 {
		t.Fatalf("short mismatch too high: %d", got)
	}
	if got := SimilarityScore("", "glucose"); got != 0 {
		t.Fatalf("empty got %d", got)
	}
}

func TestNormalizeValueToken(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{input: "11,200", want: 11200},
		{input: "15000o", want: 150000},
		{input: "1O.5", want: 10.5},
		{input: "8", want: 8},
	}
	for _, tc := range cases {
		got, err := ParseValue(tc.input)
		if err != nil {
			t.Fatalf("%q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %v want %v", tc.input, got, tc.want)
		}
	}
}

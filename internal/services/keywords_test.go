package services

import (
	"reflect"
	"testing"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain list", "pricing, refund, trial", []string{"pricing", "refund", "trial"}},
		{"ragged whitespace", " pricing ,refund ,  trial", []string{"pricing", "refund", "trial"}},
		{"empty segments dropped", "pricing,,refund,", []string{"pricing", "refund"}},
		{"empty string", "", []string{}},
		{"only commas", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeywords(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseKeywords(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeywordsRoundTrip(t *testing.T) {
	got := JoinKeywords(ParseKeywords("pricing, refund ,trial"))
	want := "pricing, refund, trial"
	if got != want {
		t.Fatalf("round trip = %q, want %q", got, want)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"  Trailing  Spaces  ", "trailing-spaces"},
		{"Über & Co.", "ber-co"},
		{"already-slugged", "already-slugged"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

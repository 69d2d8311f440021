package util

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://cdn.example.org", "https://cdn.example.org/"},
		{"https://cdn.example.org/", "https://cdn.example.org/"},
		{"https://cdn.example.org//", "https://cdn.example.org/"},
		{"  https://cdn.example.org ", "https://cdn.example.org/"},
	}

	for _, tc := range cases {
		if got := NormalizeBaseURL(tc.in); got != tc.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveTableName(t *testing.T) {
	if got := DeriveTableName("", "restaurants"); got != "restaurants" {
		t.Errorf("no prefix: got %q", got)
	}
	if got := DeriveTableName("vitrine", "restaurants"); got != "vitrine_restaurants" {
		t.Errorf("with prefix: got %q", got)
	}
}

package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		{"x", 5, 5},
		{" 42", 7, 7},
		{"999999999999999999999999", -1, -1},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestLimit(t *testing.T) {
	cases := []struct {
		s        string
		def, max int
		want     int
	}{
		{"", 100, 1000, 100},
		{"20", 100, 1000, 20},
		{"0", 100, 1000, 100},
		{"-5", 100, 1000, 100},
		{"abc", 100, 1000, 100},
		{"5000", 100, 1000, 1000},
		{"5000", 100, 0, 5000},
	}
	for _, tc := range cases {
		if got := Limit(tc.s, tc.def, tc.max); got != tc.want {
			t.Fatalf("Limit(%q, %d, %d) = %d; want %d", tc.s, tc.def, tc.max, got, tc.want)
		}
	}
}

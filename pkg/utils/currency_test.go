package utils

import (
	"math"
	"testing"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "small", input: 999, want: "₹999"},
		{name: "thousands", input: 1000, want: "₹1,000"},
		{name: "lakh", input: 100000, want: "₹1,00,000"},
		{name: "ten lakh", input: 1000000, want: "₹10,00,000"},
		{name: "crore", input: 15000000, want: "₹1,50,00,000"},
		{name: "rounds half up", input: 8678.5, want: "₹8,679"},
		{name: "rounds down", input: 8678.23, want: "₹8,678"},
		{name: "negative", input: -123456, want: "-₹1,23,456"},
		{name: "negative rounds to zero", input: -0.2, want: "₹0"},
		{name: "zero", input: 0, want: "₹0"},
		{name: "NaN", input: math.NaN(), want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatINR(tt.input)
			if got != tt.want {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatINRPrecise(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{input: 8678.23233, want: "₹8,678.23"},
		{input: 2082775.76, want: "₹20,82,775.76"},
		{input: 5, want: "₹5.00"},
		{input: -1234.5, want: "-₹1,234.50"},
	}

	for _, tt := range tests {
		got := FormatINRPrecise(tt.input)
		if got != tt.want {
			t.Errorf("FormatINRPrecise(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

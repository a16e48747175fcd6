package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafePct(t *testing.T) {
	tests := []struct {
		name       string
		part, base float64
		want       float64
	}{
		{"regular", 20, 15, 133.33333333333334},
		{"zero base", 20, 0, 0},
		{"negative base", 20, -5, 0},
		{"zero part", 0, 10, 0},
		{"negative part", -5, 10, -50},
		{"nan base", 1, math.NaN(), 0},
		{"huge part", math.MaxFloat64, 1e-300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafePct(tt.part, tt.base)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got))
			assert.False(t, math.IsInf(got, 0))
		})
	}
}

func TestSafeRatio(t *testing.T) {
	assert.InDelta(t, 4.65, SafeRatio(2104.55, 452.58), 0.01)
	assert.Equal(t, 0.0, SafeRatio(10, 0))
	assert.Equal(t, 0.0, SafeRatio(10, -1))
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{15, "$15.00"},
		{1234.5, "$1,234.50"},
		{4044050.12, "$4,044,050.12"},
		{-4470.22, "-$4,470.22"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUSD(tt.in))
		})
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "↑ +$5.00 (33.3%)", FormatDelta(5, 33.333))
	assert.Equal(t, "↓ –$1,500.00 (10.0%)", FormatDelta(-1500, -10))
	assert.Equal(t, "↑ +$0.00 (0.0%)", FormatDelta(0, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 115348.96, Round2(135809.67-20460.71))
	assert.Equal(t, 0.0, Round2(0.001))
}

package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"int", 42, 42},
		{"uint8", uint8(7), 7},
		{"string", "19.99", 19.99},
		{"currency string", " $1,234.50 ", 1234.5},
		{"negative string", "-3", -3},
		{"garbage", "twelve", 0},
		{"empty", "", 0},
		{"json number", json.Number("8.25"), 8.25},
		{"decimal", decimal.RequireFromString("3.10"), 3.1},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coerce(tt.in); got != tt.want {
				t.Errorf("Coerce(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNonNegativeAndClamp(t *testing.T) {
	if got := NonNegative(-5); got != 0 {
		t.Errorf("NonNegative(-5) = %v, want 0", got)
	}
	if got := NonNegative(math.Inf(-1)); got != 0 {
		t.Errorf("NonNegative(-Inf) = %v, want 0", got)
	}
	if got := Clamp(75, 0, 60); got != 60 {
		t.Errorf("Clamp(75, 0, 60) = %v, want 60", got)
	}
	if got := Clamp(math.NaN(), 0, 60); got != 0 {
		t.Errorf("Clamp(NaN, 0, 60) = %v, want 0", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.01},
		{2.344, 2.34},
		{-1.005, -1.01},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	if v, err := ParseAmount(" $1,200.50 "); err != nil || v != 1200.5 {
		t.Errorf("ParseAmount = %v, %v; want 1200.5", v, err)
	}
	if v, err := ParseAmount(""); err != nil || v != 0 {
		t.Errorf("ParseAmount(blank) = %v, %v; want 0", v, err)
	}
	if _, err := ParseAmount("twelve"); err == nil {
		t.Error("ParseAmount(twelve) should fail")
	}
}

// Package engine implements the planner's pure calculations: income
// normalization, budget-vs-actual analysis and debt payoff simulation.
//
// Every function is a pure function of its arguments. Nothing here performs
// I/O, holds state between calls, or mutates caller-owned values.
package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NonNegative returns v floored at zero. Non-finite values become 0.
func NonNegative(v float64) float64 {
	v = Finite(v)
	if v < 0 {
		return 0
	}
	return v
}

// Clamp bounds v to [lo, hi]. Non-finite values become lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds v to cents, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(Finite(v)).Round(2).InexactFloat64()
}

// Coerce turns arbitrary input into a finite number. Strings may carry a
// currency symbol, thousands separators and surrounding whitespace.
// Anything that cannot be read as a number yields 0.
func Coerce(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return Finite(x)
	case float32:
		return Finite(float64(x))
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case decimal.Decimal:
		return Finite(x.InexactFloat64())
	case json.Number:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	default:
		return 0
	}
}

var numberCleaner = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")

func parseNumber(s string) float64 {
	v, err := ParseAmount(s)
	if err != nil {
		return 0
	}
	return v
}

// ParseAmount reads user-entered text the way Coerce does, but reports text
// that is not a number instead of yielding 0. Blank input is 0.
func ParseAmount(s string) (float64, error) {
	cleaned := numberCleaner.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return Finite(d.InexactFloat64()), nil
}

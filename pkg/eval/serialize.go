package eval

import (
	"math"
	"strconv"
)

// ToString returns the display form of a value. It never fails and never
// evaluates anything.
func ToString(v Value) string {
	switch v := v.(type) {
	case Num:
		return formatNum(float64(v))
	case Str:
		return string(v)
	case Bool:
		if v {
			return "true"
		}
		return "false"
	case *Closure:
		return "#<procedure>"
	case *Primitive:
		return "#<primitive>"
	}
	return "#<unknown>"
}

// Repr is like ToString, but quotes strings and names primitives. It is meant
// for debugging.
func Repr(v Value) string {
	switch v := v.(type) {
	case Str:
		return strconv.Quote(string(v))
	case *Primitive:
		return "#<primitive " + v.Name + ">"
	}
	return ToString(v)
}

func formatNum(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case f == 0:
		// Also covers negative zero.
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

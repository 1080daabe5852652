package value

import (
	"strconv"
	"strings"
)

// Number retains the original JSON lexeme so rendering loses no precision.
// Numbers constructed programmatically should use FromInt64/FromFloat64.
type Number string

func FromInt64(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// FromFloat64 formats with the shortest representation that round-trips.
func FromFloat64(f float64) Number {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

func (n Number) Kind() Kind {
	return NumberKind
}

func (n Number) NativeValue() any {
	if n.IsInt() {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	f, _ := n.Float64()
	return f
}

// IsInt reports whether the lexeme has no fractional or exponent part.
func (n Number) IsInt() bool {
	return !strings.ContainsAny(string(n), ".eE")
}

func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

func (n Number) Uint64() (uint64, error) {
	return strconv.ParseUint(string(n), 10, 64)
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (n Number) String() string {
	return string(n)
}

func (n Number) equal(right Number) bool {
	if n == right {
		return true
	}
	lf, lerr := n.Float64()
	rf, rerr := right.Float64()
	return lerr == nil && rerr == nil && lf == rf
}

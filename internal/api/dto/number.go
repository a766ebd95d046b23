package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a lenient numeric field for the optimize payload, which
// originates from browser forms and may carry numbers, numeric strings,
// empty strings or nulls. Anything that does not parse as a finite number is
// recorded as absent instead of failing the whole request; callers decide
// per field whether absence drops the record or falls back to a default.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON never reports an error: an unparseable value is simply not
// a number.
func (n *Number) UnmarshalJSON(b []byte) error {
	n.Value, n.Valid = 0, false

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.set(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			n.set(f)
		}
	}

	return nil
}

func (n *Number) set(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	n.Value, n.Valid = f, true
}

// Int returns the truncated integer value; ok is false when absent.
func (n Number) Int() (int64, bool) {
	if !n.Valid {
		return 0, false
	}
	return int64(n.Value), true
}

// IntOr returns the truncated integer value or fallback when absent.
func (n Number) IntOr(fallback int64) int64 {
	if v, ok := n.Int(); ok {
		return v
	}
	return fallback
}

// IntPtr returns a pointer to the truncated integer value, or nil when
// absent.
func (n Number) IntPtr() *int64 {
	v, ok := n.Int()
	if !ok {
		return nil
	}
	return &v
}

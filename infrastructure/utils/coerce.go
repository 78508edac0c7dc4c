package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	ReasonAbsent     = "absent"
	ReasonNotNumeric = "not numeric"
)

// CoercionDiagnostic explains why a field could not be turned into an integer.
// It is a notice, not a failure: the caller logs it and keeps going.
type CoercionDiagnostic struct {
	Field  string
	Value  interface{}
	Reason string
}

func (d *CoercionDiagnostic) Error() string {
	return fmt.Sprintf("cannot turn %s=%v into int (%s)", d.Field, d.Value, d.Reason)
}

// TryParseInt converts raw into an int64.
// Integers come back unchanged; numeric strings, json.Number and integral
// floats are converted. Anything else yields a nil value and a diagnostic.
func TryParseInt(field string, raw interface{}) (*int64, *CoercionDiagnostic) {
	notNumeric := &CoercionDiagnostic{Field: field, Value: raw, Reason: ReasonNotNumeric}

	var v int64
	switch x := raw.(type) {
	case nil:
		return nil, &CoercionDiagnostic{Field: field, Reason: ReasonAbsent}
	case int:
		v = int64(x)
	case int8:
		v = int64(x)
	case int16:
		v = int64(x)
	case int32:
		v = int64(x)
	case int64:
		v = x
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, notNumeric
		}
		v = int64(x)
	case uint8:
		v = int64(x)
	case uint16:
		v = int64(x)
	case uint32:
		v = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return nil, notNumeric
		}
		v = int64(x)
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		if x != math.Trunc(x) || math.IsInf(x, 0) || x >= math.MaxInt64 || x < math.MinInt64 {
			return nil, notNumeric
		}
		v = int64(x)
	case json.Number:
		parsed, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return nil, notNumeric
		}
		v = parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil, notNumeric
		}
		v = parsed
	default:
		return nil, notNumeric
	}
	return &v, nil
}

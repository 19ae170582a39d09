package options

import (
	"strconv"

	"github.com/spf13/cast"
)

// StringPtr is a helper function that returns a pointer to a string.
func StringPtr(s string) *string {
	return &s
}

// IntPtr is a helper function that returns a pointer to an int.
func IntPtr(i int) *int {
	return &i
}

// BoolPtr is a helper function that returns a pointer to a bool.
func BoolPtr(b bool) *bool {
	return &b
}

// ToInt coerces a numeric-like value to an int: integers pass through,
// floats truncate, numeric strings parse.
func ToInt(v any) (int, error) {
	return cast.ToIntE(v)
}

// ExactInt reports the int value of v only when v is already of an integer
// kind; no lossy conversion is attempted.
func ExactInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int8:
		return int(val), true
	case int16:
		return int(val), true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case uint:
		return int(val), true
	case uint8:
		return int(val), true
	case uint16:
		return int(val), true
	case uint32:
		return int(val), true
	case uint64:
		return int(val), true
	default:
		return 0, false
	}
}

// ToFloat64 is a utility function that converts a value of various numeric
// types to a float64. It returns the converted float64 and a boolean
// indicating whether the conversion was successful.
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

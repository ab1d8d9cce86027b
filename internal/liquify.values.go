package internal

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// RangeValue is a bounded integer range produced by a range literal.
// It is inclusive on both ends and empty when Hi < Lo.
type RangeValue struct {
	Lo int
	Hi int
}

// Len returns the number of integers in the range
func (r RangeValue) Len() int {
	if r.Hi < r.Lo {
		return 0
	}
	return r.Hi - r.Lo + 1
}

// String returns the source form of the range
func (r RangeValue) String() string {
	return fmt.Sprintf("(%d..%d)", r.Lo, r.Hi)
}

// ToInteger coerces a value to an int. Accepts integer and float
// numbers and numeric strings. Anything else is a coercion error.
func ToInteger(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int8:
		return int(val), nil
	case int16:
		return int(val), nil
	case int32:
		return int(val), nil
	case int64:
		return int(val), nil
	case uint:
		return int(val), nil
	case uint8:
		return int(val), nil
	case uint16:
		return int(val), nil
	case uint32:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float32:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return int(f), nil
		}
		return 0, NewCoercionError(v)
	default:
		return 0, NewCoercionError(v)
	}
}

// ToSequence materializes a collection value into an ordered []any.
// Slices and arrays of any element type are flattened via reflection,
// ranges are expanded, and maps become sorted [key, value] pairs.
// Nil and non-iterable scalars yield an empty sequence.
func ToSequence(v any) []any {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case []any:
		return val
	case RangeValue:
		seq := make([]any, 0, val.Len())
		for i := val.Lo; i <= val.Hi; i++ {
			seq = append(seq, i)
		}
		return seq
	case *RangeValue:
		return ToSequence(*val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		seq := make([]any, 0, len(keys))
		for _, k := range keys {
			seq = append(seq, []any{k, val[k]})
		}
		return seq
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		seq := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			seq[i] = rv.Index(i).Interface()
		}
		return seq
	}

	return nil
}

// SliceSequence returns seq[from:to], clamping out-of-range bounds.
// A negative to means "to the end". Never fails.
func SliceSequence(seq []any, from, to int) []any {
	if from < 0 {
		from = 0
	}
	if from >= len(seq) {
		return nil
	}
	if to < 0 || to > len(seq) {
		to = len(seq)
	}
	if to <= from {
		return nil
	}
	return seq[from:to]
}

// ReverseSequence reverses a sequence in place
func ReverseSequence(seq []any) {
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// IndexValue returns the i-th component of a positionally indexable
// value. Returns false when the value is not indexable or the index
// is out of range.
func IndexValue(v any, i int) (any, bool) {
	if v == nil || i < 0 {
		return nil, false
	}
	if seq, ok := v.([]any); ok {
		if i >= len(seq) {
			return nil, false
		}
		return seq[i], true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// SequenceLength returns the length of a collection value, or 0 for
// non-collections.
func SequenceLength(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		return len(val)
	case RangeValue:
		return val.Len()
	case map[string]any:
		return len(val)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len()
	}
	return 0
}

// Truthy reports whether a value is true in a template condition.
// Only nil and false are falsy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Stringify converts a value to its template output form.
// Nil renders as the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return StringValueEmpty
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toFloat converts numeric values to float64 for comparison
func toFloat(v any) (float64, bool) {
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
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// compareEqual reports whether two values are equal, comparing
// numbers across numeric types.
func compareEqual(left, right any) bool {
	if lf, ok := toFloat(left); ok {
		if rf, ok := toFloat(right); ok {
			return lf == rf
		}
		return false
	}
	return reflect.DeepEqual(left, right)
}

// compareLess reports whether left < right for numbers and strings
func compareLess(left, right any) (bool, error) {
	if lf, ok := toFloat(left); ok {
		if rf, ok := toFloat(right); ok {
			return lf < rf, nil
		}
	}
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls < rs, nil
		}
	}
	return false, NewCoercionError(left)
}

// compareGreater reports whether left > right for numbers and strings
func compareGreater(left, right any) (bool, error) {
	return compareLess(right, left)
}

// containsValue reports whether a collection or string contains a value
func containsValue(collection, item any) bool {
	if s, ok := collection.(string); ok {
		return strings.Contains(s, Stringify(item))
	}
	for _, elem := range ToSequence(collection) {
		if compareEqual(elem, item) {
			return true
		}
	}
	return false
}

// CoercionError represents a failed numeric coercion
type CoercionError struct {
	Value any
}

// NewCoercionError creates a new coercion error for the given value
func NewCoercionError(value any) *CoercionError {
	return &CoercionError{Value: value}
}

// Error implements the error interface
func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: %v (%T)", ErrMsgNotCoercible, e.Value, e.Value)
}

// ErrMsgNotCoercible is the coercion failure message
const ErrMsgNotCoercible = "value is not coercible to an integer"

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInteger(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
		wantErr  bool
	}{
		{"int", 42, 42, false},
		{"int64", int64(7), 7, false},
		{"uint", uint(3), 3, false},
		{"float64 truncates", 3.9, 3, false},
		{"float32", float32(2.5), 2, false},
		{"numeric string", "15", 15, false},
		{"float string truncates", "2.7", 2, false},
		{"padded string", "  8 ", 8, false},
		{"non-numeric string", "abc", 0, true},
		{"nil", nil, 0, true},
		{"bool", true, 0, true},
		{"slice", []any{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ToInteger(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var coercionErr *CoercionError
				assert.ErrorAs(t, err, &coercionErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestToSequence(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []any
	}{
		{"nil", nil, nil},
		{"any slice passthrough", []any{1, "a"}, []any{1, "a"}},
		{"string slice", []string{"x", "y"}, []any{"x", "y"}},
		{"int slice", []int{1, 2, 3}, []any{1, 2, 3}},
		{"range", RangeValue{Lo: 2, Hi: 4}, []any{2, 3, 4}},
		{"empty range", RangeValue{Lo: 5, Hi: 1}, []any{}},
		{"single element range", RangeValue{Lo: 3, Hi: 3}, []any{3}},
		{"scalar", 42, nil},
		{"string is not a sequence", "abc", nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToSequence(tt.input)
			if tt.expected == nil {
				assert.Empty(t, result)
				return
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestToSequence_MapSortedPairs(t *testing.T) {
	result := ToSequence(map[string]any{"c": 3, "a": 1, "b": 2})

	require.Len(t, result, 3)
	assert.Equal(t, []any{"a", 1}, result[0])
	assert.Equal(t, []any{"b", 2}, result[1])
	assert.Equal(t, []any{"c", 3}, result[2])
}

func TestSliceSequence(t *testing.T) {
	seq := []any{"a", "b", "c", "d"}

	tests := []struct {
		name     string
		from     int
		to       int
		expected []any
	}{
		{"full via negative to", 0, -1, []any{"a", "b", "c", "d"}},
		{"window", 1, 3, []any{"b", "c"}},
		{"from to end", 2, -1, []any{"c", "d"}},
		{"to clamped", 2, 100, []any{"c", "d"}},
		{"from clamped", -5, 2, []any{"a", "b"}},
		{"from past end", 10, -1, nil},
		{"empty window", 2, 2, nil},
		{"inverted window", 3, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SliceSequence(seq, tt.from, tt.to))
		})
	}
}

func TestReverseSequence(t *testing.T) {
	seq := []any{1, 2, 3, 4}
	ReverseSequence(seq)
	assert.Equal(t, []any{4, 3, 2, 1}, seq)

	odd := []any{"a", "b", "c"}
	ReverseSequence(odd)
	assert.Equal(t, []any{"c", "b", "a"}, odd)

	empty := []any{}
	ReverseSequence(empty)
	assert.Empty(t, empty)
}

func TestIndexValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		index    int
		expected any
		ok       bool
	}{
		{"any slice", []any{"a", "b"}, 1, "b", true},
		{"typed slice", []string{"x", "y"}, 0, "x", true},
		{"out of range", []any{"a"}, 5, nil, false},
		{"negative index", []any{"a"}, -1, nil, false},
		{"nil", nil, 0, nil, false},
		{"scalar", 42, 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := IndexValue(tt.input, tt.index)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestSequenceLength(t *testing.T) {
	assert.Equal(t, 0, SequenceLength(nil))
	assert.Equal(t, 3, SequenceLength([]any{1, 2, 3}))
	assert.Equal(t, 2, SequenceLength([]string{"a", "b"}))
	assert.Equal(t, 5, SequenceLength("hello"))
	assert.Equal(t, 4, SequenceLength(RangeValue{Lo: 1, Hi: 4}))
	assert.Equal(t, 2, SequenceLength(map[string]any{"a": 1, "b": 2}))
	assert.Equal(t, 0, SequenceLength(42))
}

func TestRangeValue(t *testing.T) {
	r := RangeValue{Lo: 1, Hi: 5}
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, "(1..5)", r.String())

	assert.Equal(t, 0, RangeValue{Lo: 5, Hi: 1}.Len())
	assert.Equal(t, 1, RangeValue{Lo: 2, Hi: 2}.Len())
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(0))
	assert.True(t, Truthy(""))
	assert.True(t, Truthy([]any{}))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "hello", Stringify("hello"))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "3.5", Stringify(3.5))
	assert.Equal(t, "3", Stringify(3.0))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "(1..3)", Stringify(RangeValue{Lo: 1, Hi: 3}))
}

func TestCompareEqual(t *testing.T) {
	assert.True(t, compareEqual(1, 1.0))
	assert.True(t, compareEqual(int64(2), 2))
	assert.True(t, compareEqual("a", "a"))
	assert.False(t, compareEqual(1, "1"))
	assert.False(t, compareEqual("a", "b"))
	assert.True(t, compareEqual([]any{1}, []any{1}))
}

func TestCompareLess(t *testing.T) {
	result, err := compareLess(1, 2)
	require.NoError(t, err)
	assert.True(t, result)

	result, err = compareLess(2.5, 2)
	require.NoError(t, err)
	assert.False(t, result)

	result, err = compareLess("abc", "abd")
	require.NoError(t, err)
	assert.True(t, result)

	_, err = compareLess(true, 1)
	assert.Error(t, err)
}

func TestContainsValue(t *testing.T) {
	assert.True(t, containsValue("hello world", "world"))
	assert.False(t, containsValue("hello", "x"))
	assert.True(t, containsValue([]any{1, 2, 3}, 2))
	assert.True(t, containsValue([]any{"a", "b"}, "b"))
	assert.False(t, containsValue([]any{1, 2}, 5))
	assert.False(t, containsValue(nil, "x"))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{float64(2.5), 2.5, true},
		{int64(7), 7, true},
		{uint8(3), 3, true},
		{" 12.5 ", 12.5, true},
		{[]byte("4"), 4, true},
		{"abc", 0, false},
		{nil, 0, false},
		{map[string]any{}, 0, false},
	}

	for _, tt := range tests {
		got, ok := ToFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 23, ToInt(23.7))
	assert.Equal(t, 5, ToInt("5"))
	assert.Equal(t, 0, ToInt("x"))
}

func TestToIntSlice(t *testing.T) {
	assert.Equal(t, []int{1, 2}, ToIntSlice([]any{float64(1), "x", "2"}))
	assert.Empty(t, ToIntSlice(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "a", ToString([]byte("a")))
	assert.Equal(t, "3", ToString(3))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool(float64(2)))
	assert.True(t, ToBool("TRUE"))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(nil))
}

// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 42, ToInt("42"))
	assert.Equal(t, 0, ToInt(""))
	assert.Equal(t, 0, ToInt("not-a-number"))
}

func TestToIntD(t *testing.T) {
	assert.Equal(t, 42, ToIntD("42", 7))
	assert.Equal(t, 7, ToIntD("", 7))
	assert.Equal(t, 7, ToIntD("not-a-number", 7))
}

func TestToBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "true", want: true},
		{input: "1", want: true},
		{input: "false", want: false},
		{input: "0", want: false},
		{input: "", want: false},
		{input: "yes", want: false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ToBool(tc.input), "input %q", tc.input)
	}
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, 2.5, ToFloat64("2.5"))
	assert.Equal(t, 0.0, ToFloat64(""))
	assert.Equal(t, 0.0, ToFloat64("not-a-float"))
}

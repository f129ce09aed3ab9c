// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	p := To("webp")

	assert.NotNil(t, p)
	assert.Equal(t, "webp", *p)
}

func TestVal(t *testing.T) {
	assert.Equal(t, "webp", Val(To("webp")))
	assert.Equal(t, "", Val[string](nil))
	assert.Equal(t, 0, Val[int](nil))
}

func TestFallback(t *testing.T) {
	assert.Equal(t, 5, Fallback(To(5), 9))
	assert.Equal(t, 9, Fallback[int](nil, 9))
}

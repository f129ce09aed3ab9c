// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atshybrid/kaburlu-epaper/internal/viewer"
)

/*
TestModel_PinchClamping verifies that scale stays within [1, 4] at every
intermediate step, for expanding and collapsing pinch sequences alike.
*/
func TestModel_PinchClamping(t *testing.T) {
	tests := []struct {
		name     string
		ratios   []float64
		expected float64
	}{
		{"sequential_zoom_in", []float64{1.5, 1.3}, 1.95},
		{"overflow_clamped", []float64{3.0, 3.0}, 4.0},
		{"underflow_clamped", []float64{0.5, 0.5}, 1.0},
		{"identity_ratio", []float64{1.0}, 1.0},
		{"recover_after_clamp", []float64{10.0, 0.5}, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := viewer.NewModel()

			for _, ratio := range tt.ratios {
				model.ApplyPinchDelta(ratio)

				// Clamp must hold at every step, not just at the end.
				scale := model.Current().Scale
				assert.GreaterOrEqual(t, scale, viewer.MinScale)
				assert.LessOrEqual(t, scale, viewer.MaxScale)
			}

			assert.InDelta(t, tt.expected, model.Current().Scale, 1e-9)
		})
	}
}

/*
TestModel_PanWhileUnzoomedIsNoOp verifies that pan deltas are dropped at
identity scale, so an unzoomed page can never drift off-screen.
*/
func TestModel_PanWhileUnzoomedIsNoOp(t *testing.T) {
	model := viewer.NewModel()

	model.ApplyPanDelta(40, -25)
	model.ApplyPanDelta(-300, 300)

	transform := model.Current()
	assert.Equal(t, 0.0, transform.TranslateX)
	assert.Equal(t, 0.0, transform.TranslateY)
}

/*
TestModel_PanWhileZoomed verifies that pan deltas accumulate once zoomed.
*/
func TestModel_PanWhileZoomed(t *testing.T) {
	model := viewer.NewModel()
	model.ApplyPinchDelta(2.0)

	model.ApplyPanDelta(10, 5)
	model.ApplyPanDelta(-4, 3)

	transform := model.Current()
	assert.Equal(t, 6.0, transform.TranslateX)
	assert.Equal(t, 8.0, transform.TranslateY)
}

/*
TestModel_SnapBackIdempotence verifies that snapping back from identity
leaves the transform unchanged and starts no animation.
*/
func TestModel_SnapBackIdempotence(t *testing.T) {
	model := viewer.NewModel()

	model.SnapBack()

	assert.True(t, model.Current().IsIdentity())
	assert.False(t, model.Animating())
}

/*
TestModel_SnapBackConverges verifies that a near-unzoomed release springs
the transform all the way home.
*/
func TestModel_SnapBackConverges(t *testing.T) {
	model := viewer.NewModel()
	model.ApplyPinchDelta(1.05)
	model.ApplyPanDelta(6, -4)

	model.SnapBack()
	require.True(t, model.Animating())

	// Drive the spring well past its convergence horizon.
	for i := 0; i < 120 && model.Step(16*time.Millisecond); i++ {
	}

	transform := model.Current()
	assert.Equal(t, 1.0, transform.Scale)
	assert.Equal(t, 0.0, transform.TranslateX)
	assert.Equal(t, 0.0, transform.TranslateY)
	assert.False(t, model.Animating())
}

/*
TestModel_SnapBackSkippedWhenZoomed verifies that a release above the
threshold keeps the zoomed transform in place.
*/
func TestModel_SnapBackSkippedWhenZoomed(t *testing.T) {
	model := viewer.NewModel()
	model.ApplyPinchDelta(3.0)

	model.SnapBack()

	assert.False(t, model.Animating())
	assert.Equal(t, 3.0, model.Current().Scale)
}

/*
TestModel_GestureInterruptsAnimation verifies that a new pinch starting
mid-animation cancels the spring and takes precedence immediately.
*/
func TestModel_GestureInterruptsAnimation(t *testing.T) {
	model := viewer.NewModel()
	model.ApplyPinchDelta(1.05)
	model.SnapBack()
	require.True(t, model.Animating())

	// Advance partially, then interrupt with a live gesture.
	model.Step(16 * time.Millisecond)
	model.ApplyPinchDelta(2.0)

	assert.False(t, model.Animating())

	// The new gesture applied to the frozen intermediate value.
	assert.Greater(t, model.Current().Scale, 1.0)
}

/*
TestModel_Reset verifies the immediate, animation-free reset used when a
page scrolls out of the active slot.
*/
func TestModel_Reset(t *testing.T) {
	model := viewer.NewModel()
	model.ApplyPinchDelta(2.5)
	model.ApplyPanDelta(30, -12)

	model.Reset()

	assert.True(t, model.Current().IsIdentity())
	assert.False(t, model.Animating())
}

/*
TestModel_Settle verifies that settling jumps straight to the animation
target for shells without a frame loop.
*/
func TestModel_Settle(t *testing.T) {
	model := viewer.NewModel()
	model.AnimateTo(viewer.Transform{Scale: 2})

	model.Settle()

	assert.Equal(t, 2.0, model.Current().Scale)
	assert.False(t, model.Animating())
}

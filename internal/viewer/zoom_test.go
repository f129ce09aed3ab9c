// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atshybrid/kaburlu-epaper/internal/viewer"
)

/*
TestZoomController_GestureEndLatch verifies the release threshold: scales
above 1.1 latch the zoom, scales at or below it spring back and stay
unzoomed.
*/
func TestZoomController_GestureEndLatch(t *testing.T) {
	tests := []struct {
		name       string
		pinchRatio float64
		wantZoomed bool
	}{
		{"released_well_zoomed", 2.5, true},
		{"released_just_above_threshold", 1.2, true},
		{"released_below_threshold", 1.05, false},
		{"released_at_identity", 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := viewer.NewModel()
			ctrl := viewer.NewZoomController(model, nil)

			model.ApplyPinchDelta(tt.pinchRatio)
			ctrl.OnGestureEnd()

			assert.Equal(t, tt.wantZoomed, ctrl.IsZoomed())

			if !tt.wantZoomed {
				// Below the threshold the transform springs home.
				model.Settle()
				assert.True(t, model.Current().IsIdentity())
			}
		})
	}
}

/*
TestZoomController_DoubleTapToggle verifies that double tap is an
involution: two taps return both the latch and the transform to their
starting state.
*/
func TestZoomController_DoubleTapToggle(t *testing.T) {
	model := viewer.NewModel()
	ctrl := viewer.NewZoomController(model, nil)

	ctrl.OnDoubleTap()
	model.Settle()
	require.True(t, ctrl.IsZoomed())
	assert.Equal(t, viewer.DoubleTapScale, model.Current().Scale)

	ctrl.OnDoubleTap()
	model.Settle()
	assert.False(t, ctrl.IsZoomed())
	assert.True(t, model.Current().IsIdentity())
}

/*
TestZoomController_DoubleTapFromPinchedState verifies that a double tap on
a manually-zoomed page animates home rather than re-zooming.
*/
func TestZoomController_DoubleTapFromPinchedState(t *testing.T) {
	model := viewer.NewModel()
	ctrl := viewer.NewZoomController(model, nil)

	model.ApplyPinchDelta(3.0)
	ctrl.OnGestureEnd()
	require.True(t, ctrl.IsZoomed())

	ctrl.OnDoubleTap()
	model.Settle()

	assert.False(t, ctrl.IsZoomed())
	assert.True(t, model.Current().IsIdentity())
}

/*
TestZoomController_ChangeNotifications verifies that the observer fires
only on transitions, never on same-state re-evaluations.
*/
func TestZoomController_ChangeNotifications(t *testing.T) {
	var notified []bool
	model := viewer.NewModel()
	ctrl := viewer.NewZoomController(model, func(zoomed bool) {
		notified = append(notified, zoomed)
	})

	// Unzoomed release: no transition, no notification.
	ctrl.OnGestureEnd()
	assert.Empty(t, notified)

	model.ApplyPinchDelta(2.0)
	ctrl.OnGestureEnd()
	assert.Equal(t, []bool{true}, notified)

	// Still zoomed after another release: no duplicate notification.
	ctrl.OnGestureEnd()
	assert.Equal(t, []bool{true}, notified)

	ctrl.OnDoubleTap()
	assert.Equal(t, []bool{true, false}, notified)
}

/*
TestZoomController_RebindClearsLatch verifies that switching pages drops
the zoom latch so the new page starts unzoomed.
*/
func TestZoomController_RebindClearsLatch(t *testing.T) {
	first := viewer.NewModel()
	ctrl := viewer.NewZoomController(first, nil)

	first.ApplyPinchDelta(2.0)
	ctrl.OnGestureEnd()
	require.True(t, ctrl.IsZoomed())

	second := viewer.NewModel()
	ctrl.Rebind(second)

	assert.False(t, ctrl.IsZoomed())
	assert.True(t, second.Current().IsIdentity())
}

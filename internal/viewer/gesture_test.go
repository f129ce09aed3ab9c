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

var gestureEpoch = time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

func touch(phase viewer.TouchPhase, pointers int, x, y float64, at time.Duration) viewer.TouchEvent {
	return viewer.TouchEvent{
		Phase:        phase,
		PointerCount: pointers,
		X:            x,
		Y:            y,
		Timestamp:    gestureEpoch.Add(at),
	}
}

func kinds(actions []viewer.Action) []viewer.ActionKind {
	var out []viewer.ActionKind
	for _, a := range actions {
		out = append(out, a.Kind)
	}
	return out
}

/*
TestRecognizer_PinchClassification verifies that two pointers produce pinch
actions with the vertical-drag ratio.
*/
func TestRecognizer_PinchClassification(t *testing.T) {
	rec := viewer.NewRecognizer(func() bool { return false })

	rec.Handle(touch(viewer.TouchBegan, 2, 100, 200, 0))
	actions := rec.Handle(touch(viewer.TouchMoved, 2, 100, 300, 10*time.Millisecond))

	require.Len(t, actions, 1)
	assert.Equal(t, viewer.ActionPinchMove, actions[0].Kind)

	// dy = 100 points, ratio = 1 + 100/500.
	assert.InDelta(t, 1.2, actions[0].Ratio, 1e-9)

	actions = rec.Handle(touch(viewer.TouchEnded, 0, 100, 300, 20*time.Millisecond))
	assert.Equal(t, []viewer.ActionKind{viewer.ActionGestureEnd}, kinds(actions))
}

/*
TestRecognizer_PinchRatioIsIncremental verifies that each move reports the
delta since the previous sample, not since touch-down.
*/
func TestRecognizer_PinchRatioIsIncremental(t *testing.T) {
	rec := viewer.NewRecognizer(func() bool { return false })

	rec.Handle(touch(viewer.TouchBegan, 2, 0, 0, 0))
	first := rec.Handle(touch(viewer.TouchMoved, 2, 0, 250, 10*time.Millisecond))
	second := rec.Handle(touch(viewer.TouchMoved, 2, 0, 500, 20*time.Millisecond))

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.InDelta(t, 1.5, first[0].Ratio, 1e-9)
	assert.InDelta(t, 1.5, second[0].Ratio, 1e-9)
}

/*
TestRecognizer_SingleFingerRouting verifies the zoom-dependent split: pan
when zoomed, unclaimed fall-through when not.
*/
func TestRecognizer_SingleFingerRouting(t *testing.T) {
	tests := []struct {
		name      string
		zoomed    bool
		wantBegan []viewer.ActionKind
		wantMoved []viewer.ActionKind
		wantEnded []viewer.ActionKind
	}{
		{
			name:      "zoomed_page_pans",
			zoomed:    true,
			wantBegan: []viewer.ActionKind{viewer.ActionPanStart},
			wantMoved: []viewer.ActionKind{viewer.ActionPanMove},
			wantEnded: []viewer.ActionKind{viewer.ActionGestureEnd},
		},
		{
			name:      "unzoomed_page_falls_through",
			zoomed:    false,
			wantBegan: nil,
			wantMoved: nil,
			wantEnded: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := viewer.NewRecognizer(func() bool { return tt.zoomed })

			began := rec.Handle(touch(viewer.TouchBegan, 1, 50, 50, 0))
			moved := rec.Handle(touch(viewer.TouchMoved, 1, 120, 60, 10*time.Millisecond))
			ended := rec.Handle(touch(viewer.TouchEnded, 0, 120, 60, 20*time.Millisecond))

			assert.Equal(t, tt.wantBegan, kinds(began))
			assert.Equal(t, tt.wantMoved, kinds(moved))
			assert.Equal(t, tt.wantEnded, kinds(ended))
		})
	}
}

/*
TestRecognizer_PanDeltas verifies incremental pan deltas while zoomed.
*/
func TestRecognizer_PanDeltas(t *testing.T) {
	rec := viewer.NewRecognizer(func() bool { return true })

	rec.Handle(touch(viewer.TouchBegan, 1, 100, 100, 0))
	actions := rec.Handle(touch(viewer.TouchMoved, 1, 130, 90, 10*time.Millisecond))

	require.Len(t, actions, 1)
	assert.Equal(t, 30.0, actions[0].DX)
	assert.Equal(t, -10.0, actions[0].DY)
}

/*
TestRecognizer_DoubleTap verifies the 300ms window and the spatial slop, and
that the window is consumed after a double so a triple tap reads as a double
plus a single.
*/
func TestRecognizer_DoubleTap(t *testing.T) {
	tests := []struct {
		name   string
		gap    time.Duration
		x2, y2 float64
		want   viewer.ActionKind
	}{
		{"within_window", 200 * time.Millisecond, 100, 100, viewer.ActionDoubleTap},
		{"window_expired", 350 * time.Millisecond, 100, 100, viewer.ActionTap},
		{"too_far_apart", 200 * time.Millisecond, 160, 100, viewer.ActionTap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := viewer.NewRecognizer(func() bool { return false })

			rec.Handle(touch(viewer.TouchBegan, 1, 100, 100, 0))
			first := rec.Handle(touch(viewer.TouchEnded, 0, 100, 100, 10*time.Millisecond))
			require.Equal(t, []viewer.ActionKind{viewer.ActionTap}, kinds(first))

			at := 10*time.Millisecond + tt.gap
			rec.Handle(touch(viewer.TouchBegan, 1, tt.x2, tt.y2, at))
			second := rec.Handle(touch(viewer.TouchEnded, 0, tt.x2, tt.y2, at+5*time.Millisecond))

			require.Len(t, second, 1)
			assert.Equal(t, tt.want, second[0].Kind)
		})
	}

	t.Run("triple_tap_consumes_window", func(t *testing.T) {
		rec := viewer.NewRecognizer(func() bool { return false })

		at := time.Duration(0)
		taps := make([]viewer.ActionKind, 0, 3)
		for i := 0; i < 3; i++ {
			rec.Handle(touch(viewer.TouchBegan, 1, 100, 100, at))
			actions := rec.Handle(touch(viewer.TouchEnded, 0, 100, 100, at+10*time.Millisecond))
			require.Len(t, actions, 1)
			taps = append(taps, actions[0].Kind)
			at += 100 * time.Millisecond
		}

		assert.Equal(t, []viewer.ActionKind{
			viewer.ActionTap, viewer.ActionDoubleTap, viewer.ActionTap,
		}, taps)
	})
}

/*
TestRecognizer_MovedTouchIsNotATap verifies that a drag past the slop
never classifies as a tap on release.
*/
func TestRecognizer_MovedTouchIsNotATap(t *testing.T) {
	rec := viewer.NewRecognizer(func() bool { return false })

	rec.Handle(touch(viewer.TouchBegan, 1, 100, 100, 0))
	rec.Handle(touch(viewer.TouchMoved, 1, 180, 100, 10*time.Millisecond))
	actions := rec.Handle(touch(viewer.TouchEnded, 0, 180, 100, 20*time.Millisecond))

	assert.Empty(t, actions)
}

/*
TestRecognizer_SecondFingerPromotesToPinch verifies that a pan converts to a
pinch when a second pointer lands mid-gesture.
*/
func TestRecognizer_SecondFingerPromotesToPinch(t *testing.T) {
	rec := viewer.NewRecognizer(func() bool { return true })

	rec.Handle(touch(viewer.TouchBegan, 1, 100, 100, 0))
	rec.Handle(touch(viewer.TouchMoved, 1, 110, 100, 10*time.Millisecond))
	actions := rec.Handle(touch(viewer.TouchMoved, 2, 110, 150, 20*time.Millisecond))

	require.Len(t, actions, 1)
	assert.Equal(t, viewer.ActionPinchMove, actions[0].Kind)
}

/*
TestRecognizer_CancelRecovery verifies that a cancelled stream closes the
active gesture and leaves the recognizer usable.
*/
func TestRecognizer_CancelRecovery(t *testing.T) {
	rec := viewer.NewRecognizer(func() bool { return false })

	rec.Handle(touch(viewer.TouchBegan, 2, 100, 100, 0))
	actions := rec.Handle(touch(viewer.TouchCancelled, 0, 100, 100, 10*time.Millisecond))
	assert.Equal(t, []viewer.ActionKind{viewer.ActionGestureEnd}, kinds(actions))

	// The next gesture starts cleanly.
	rec.Handle(touch(viewer.TouchBegan, 2, 0, 0, time.Second))
	actions = rec.Handle(touch(viewer.TouchMoved, 2, 0, 50, time.Second+10*time.Millisecond))
	require.Len(t, actions, 1)
	assert.Equal(t, viewer.ActionPinchMove, actions[0].Kind)
}

/*
TestRecognizer_BeganMidGestureClosesPrevious verifies that a TouchBegan
arriving while a pinch is tracked first emits a GestureEnd for it.
*/
func TestRecognizer_BeganMidGestureClosesPrevious(t *testing.T) {
	rec := viewer.NewRecognizer(func() bool { return false })

	rec.Handle(touch(viewer.TouchBegan, 2, 100, 100, 0))
	actions := rec.Handle(touch(viewer.TouchBegan, 1, 200, 200, 50*time.Millisecond))

	assert.Contains(t, kinds(actions), viewer.ActionGestureEnd)
}

/*
TestRecognizer_ReclassifiesAfterAbandonedPinch verifies that a single
finger landing on top of an abandoned pinch still turns into a pan once
the pinch's deferred gesture-end has latched the zoom. The zoom latch is
only updated when the caller applies the emitted GestureEnd, which is
after the recognizer has already classified the new touch, so the
promotion has to happen on the first move.
*/
func TestRecognizer_ReclassifiesAfterAbandonedPinch(t *testing.T) {
	zoomed := false
	rec := viewer.NewRecognizer(func() bool { return zoomed })

	// A pinch zooms in and is then abandoned without a TouchEnded.
	rec.Handle(touch(viewer.TouchBegan, 2, 100, 100, 0))
	rec.Handle(touch(viewer.TouchMoved, 2, 100, 350, 10*time.Millisecond))

	// The next finger closes the orphaned pinch. At this point the latch
	// still reads unzoomed, so no pan starts yet.
	began := rec.Handle(touch(viewer.TouchBegan, 1, 200, 200, 50*time.Millisecond))
	assert.Equal(t, []viewer.ActionKind{viewer.ActionGestureEnd}, kinds(began))

	// Applying the gesture-end latches the zoom.
	zoomed = true

	actions := rec.Handle(touch(viewer.TouchMoved, 1, 230, 190, 60*time.Millisecond))
	require.Equal(t, []viewer.ActionKind{viewer.ActionPanStart, viewer.ActionPanMove}, kinds(actions))
	assert.Equal(t, 30.0, actions[1].DX)
	assert.Equal(t, -10.0, actions[1].DY)

	// Subsequent moves stay a plain pan.
	actions = rec.Handle(touch(viewer.TouchMoved, 1, 240, 190, 70*time.Millisecond))
	assert.Equal(t, []viewer.ActionKind{viewer.ActionPanMove}, kinds(actions))

	ended := rec.Handle(touch(viewer.TouchEnded, 0, 240, 190, 80*time.Millisecond))
	assert.Equal(t, []viewer.ActionKind{viewer.ActionGestureEnd}, kinds(ended))
}

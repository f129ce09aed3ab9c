// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer

// # Zoom Controller

// ZoomController owns the zoomed/unzoomed state for the active page and
// mediates double-tap behavior.
//
// # State Machine
//
// Unzoomed ⇄ Zoomed. Transitions are driven only by [OnGestureEnd]
// (threshold crossing at [ZoomThreshold]) and [OnDoubleTap] (explicit
// toggle). The controller lives for the page's active lifetime.
//
// The zoomed flag is the single authority used to gate page-swipe paging.
// It is deliberately not duplicated anywhere else, so the gesture layer and
// the paginator can never drift apart.
type ZoomController struct {
	model  *Model
	zoomed bool

	// onChange, when set, observes zoomed-state transitions. The Session
	// uses it to enable/disable paginator scrolling.
	onChange func(zoomed bool)
}

// NewZoomController binds a controller to the active page's transform model.
func NewZoomController(model *Model, onChange func(zoomed bool)) *ZoomController {
	return &ZoomController{model: model, onChange: onChange}
}

// IsZoomed reports whether the active page is currently latched as zoomed.
func (c *ZoomController) IsZoomed() bool {
	return c.zoomed
}

// OnGestureEnd re-evaluates the zoom latch after a pan/pinch release.
//
// A released scale above [ZoomThreshold] keeps the page zoomed (paging
// stays disabled); below it the page springs back to identity and paging
// re-enables.
func (c *ZoomController) OnGestureEnd() {
	zoomed := c.model.Current().Scale > ZoomThreshold
	if !zoomed {
		c.model.SnapBack()
	}
	c.setZoomed(zoomed)
}

// OnDoubleTap toggles the zoom: a zoomed page animates home, an unzoomed
// page animates to the fixed [DoubleTapScale] target, centered.
func (c *ZoomController) OnDoubleTap() {
	if c.zoomed {
		c.model.AnimateTo(Identity())
		c.setZoomed(false)
		return
	}

	c.model.AnimateTo(Transform{Scale: DoubleTapScale})
	c.setZoomed(true)
}

// Rebind points the controller at a new page's model and clears the latch.
// Called by the Session when the active page changes.
func (c *ZoomController) Rebind(model *Model) {
	c.model = model
	c.setZoomed(false)
}

// setZoomed updates the latch and notifies the observer on transitions.
func (c *ZoomController) setZoomed(zoomed bool) {
	if c.zoomed == zoomed {
		return
	}
	c.zoomed = zoomed
	if c.onChange != nil {
		c.onChange(zoomed)
	}
}

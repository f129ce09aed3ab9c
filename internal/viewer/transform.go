// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer

import "time"

// # Zoom Limits

const (
	// MinScale is the identity scale; pages never render smaller than fit-width.
	MinScale = 1.0

	// MaxScale caps pinch zoom at 4x, matching the print-legibility ceiling
	// of the page scans served by the CMS.
	MaxScale = 4.0

	// ZoomThreshold is the scale above which a page counts as "zoomed".
	// Below it, a released gesture springs the page back to identity.
	ZoomThreshold = 1.1

	// DoubleTapScale is the fixed zoom target of a double-tap on an
	// unzoomed page.
	DoubleTapScale = 2.0
)

// Transform is one page's view state: a uniform scale plus a pan offset.
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Identity returns the resting transform (fit-width, no pan).
func Identity() Transform {
	return Transform{Scale: 1, TranslateX: 0, TranslateY: 0}
}

// IsIdentity reports whether the transform is exactly at rest.
func (t Transform) IsIdentity() bool {
	return t.Scale == 1 && t.TranslateX == 0 && t.TranslateY == 0
}

// # Transform Model

// Model owns one page's [Transform] and enforces its clamping rules.
//
// # Ownership
//
// Each page's Model is exclusively owned by that page's gesture handling
// context; no two pages' Models are ever mutated by the same gesture.
// The Model itself is not safe for concurrent use — the owning [Session]
// serializes access.
type Model struct {
	current Transform

	// anim is non-nil while a spring animation is converging the
	// transform toward a target. Any direct mutation cancels it.
	anim *springAnimation
}

// NewModel creates a Model at the identity transform.
func NewModel() *Model {
	return &Model{current: Identity()}
}

// Current returns the page's transform as of the last mutation or
// animation step.
func (m *Model) Current() Transform {
	return m.current
}

// ApplyPinchDelta multiplies the current scale by the gesture-reported
// distance ratio, clamped to [MinScale, MaxScale].
//
// The clamp is applied at every step, so no intermediate state can
// transiently escape the bounds. A live pinch always cancels any
// in-flight animation.
func (m *Model) ApplyPinchDelta(distanceRatio float64) {
	m.cancelAnimation()

	scale := m.current.Scale * distanceRatio
	if scale < MinScale {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	m.current.Scale = scale
}

// ApplyPanDelta shifts the visible region by (dx, dy).
//
// Pan is only legal while zoomed: at identity scale the delta is silently
// dropped, because an unzoomed single-finger drag belongs to the page-swipe
// paginator instead. This also prevents drifting an unzoomed image
// off-screen.
func (m *Model) ApplyPanDelta(dx, dy float64) {
	if m.current.Scale <= MinScale {
		return
	}

	m.cancelAnimation()
	m.current.TranslateX += dx
	m.current.TranslateY += dy
}

// Reset immediately restores the identity transform with no animation.
// Used when the page scrolls out of the active slot or the edition closes.
func (m *Model) Reset() {
	m.cancelAnimation()
	m.current = Identity()
}

// SnapBack starts a spring animation to identity if the page ended a
// gesture below [ZoomThreshold].
//
// # Idempotence
//
// Calling SnapBack on a page already at identity is a no-op: identity
// springs to identity.
func (m *Model) SnapBack() {
	if m.current.Scale >= ZoomThreshold {
		return
	}
	if m.current.IsIdentity() {
		return
	}
	m.AnimateTo(Identity())
}

// AnimateTo starts a spring animation from the current transform to target.
// Any previous animation is replaced; its remaining motion is discarded.
func (m *Model) AnimateTo(target Transform) {
	m.anim = newSpringAnimation(m.current, target)
}

// Animating reports whether a spring animation is currently in flight.
func (m *Model) Animating() bool {
	return m.anim != nil
}

// Step advances the in-flight animation by dt and reports whether the
// model is still animating afterwards.
//
// It is driven by the embedding shell's frame callback; calling it with no
// animation in flight is a cheap no-op.
func (m *Model) Step(dt time.Duration) bool {
	if m.anim == nil {
		return false
	}

	current, done := m.anim.step(dt)
	m.current = current
	if done {
		m.anim = nil
	}
	return !done
}

// Settle completes any in-flight animation immediately, jumping to its
// target. Used by non-interactive shells that have no frame loop.
func (m *Model) Settle() {
	if m.anim == nil {
		return
	}
	m.current = m.anim.target
	m.anim = nil
}

// cancelAnimation drops the in-flight animation, freezing the transform at
// its current intermediate value. A new gesture always takes precedence
// over a running spring.
func (m *Model) cancelAnimation() {
	m.anim = nil
}

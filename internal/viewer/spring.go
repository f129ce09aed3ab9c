// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer

import (
	"math"
	"time"
)

// # Spring Animation

const (
	// springOmega is the natural frequency (rad/s) of the critically damped
	// spring. 20 rad/s converges visually in roughly 230ms, in line with
	// the snap-back feel of the mobile shell.
	springOmega = 20.0

	// springRestDelta is the convergence threshold: once every component is
	// within this distance of its target and essentially motionless, the
	// animation finishes by snapping exactly onto the target.
	springRestDelta = 1e-3

	// springMaxStep bounds a single integration step. Large dt values
	// (a stalled frame loop, a server-side settle) are subdivided so the
	// closed-form solution stays numerically tame.
	springMaxStep = 32 * time.Millisecond
)

// springValue integrates one scalar component of the transform along a
// critically damped spring toward its target.
type springValue struct {
	pos      float64
	velocity float64
	target   float64
}

// step advances the spring by dt seconds using the closed-form solution of
// the critically damped harmonic oscillator:
//
//	x(t) = target + (a + b·t)·e^(−ω·t)
//
// where a and b are set by the current displacement and velocity.
func (s *springValue) step(dt float64) {
	displacement := s.pos - s.target
	a := displacement
	b := s.velocity + springOmega*displacement

	decay := math.Exp(-springOmega * dt)
	s.pos = s.target + (a+b*dt)*decay
	s.velocity = (b - springOmega*(a+b*dt)) * decay
}

// atRest reports whether the component has effectively converged.
func (s *springValue) atRest() bool {
	return math.Abs(s.pos-s.target) < springRestDelta &&
		math.Abs(s.velocity) < springRestDelta
}

// springAnimation converges a full [Transform] toward a target, one spring
// per component.
type springAnimation struct {
	scale springValue
	tx    springValue
	ty    springValue

	target Transform
}

// newSpringAnimation starts a spring from the given transform to target
// with zero initial velocity.
func newSpringAnimation(from, target Transform) *springAnimation {
	return &springAnimation{
		scale:  springValue{pos: from.Scale, target: target.Scale},
		tx:     springValue{pos: from.TranslateX, target: target.TranslateX},
		ty:     springValue{pos: from.TranslateY, target: target.TranslateY},
		target: target,
	}
}

// step advances the animation by dt and returns the intermediate transform
// along with a done flag. When done, the returned transform is exactly the
// target (no residual epsilon).
func (a *springAnimation) step(dt time.Duration) (Transform, bool) {
	remaining := dt.Seconds()
	maxStep := springMaxStep.Seconds()

	for remaining > 0 {
		slice := remaining
		if slice > maxStep {
			slice = maxStep
		}
		a.scale.step(slice)
		a.tx.step(slice)
		a.ty.step(slice)
		remaining -= slice
	}

	if a.scale.atRest() && a.tx.atRest() && a.ty.atRest() {
		return a.target, true
	}

	return Transform{
		Scale:      a.scale.pos,
		TranslateX: a.tx.pos,
		TranslateY: a.ty.pos,
	}, false
}

// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer

import "time"

// # Gesture Classification

const (
	// doubleTapWindow is the maximum pause between two releases for the
	// second one to count as a double tap.
	doubleTapWindow = 300 * time.Millisecond

	// tapSlop is the spatial tolerance (in viewport points) within which a
	// touch still counts as stationary for tap/double-tap purposes.
	tapSlop = 12.0

	// pinchDragDivisor converts cumulative vertical drag into a pinch
	// distance ratio: ratio = 1 + dy/500.
	//
	// This is the product's long-standing single-axis proxy for true
	// two-point pinch distance. Replacing it with Euclidean inter-finger
	// distance would change zoom sensitivity on every device, so the proxy
	// is kept as-is.
	pinchDragDivisor = 500.0
)

// TouchPhase is the lifecycle stage of a touch event.
type TouchPhase int

const (
	// TouchBegan is the first contact of a gesture.
	TouchBegan TouchPhase = iota
	// TouchMoved is a position update while at least one pointer is down.
	TouchMoved
	// TouchEnded is the release of the last pointer.
	TouchEnded
	// TouchCancelled is an abnormal termination (incoming call, system
	// dialog, navigation). Treated as a gesture end, never dropped.
	TouchCancelled
)

// TouchEvent is one raw input sample from the platform shell.
//
// X and Y are the primary pointer's position in viewport points.
// PointerCount is the number of simultaneously active touch points.
type TouchEvent struct {
	Phase        TouchPhase `json:"phase"`
	PointerCount int        `json:"pointer_count"`
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	Timestamp    time.Time  `json:"timestamp"`
}

// ActionKind names a semantic gesture action produced by the [Recognizer].
type ActionKind int

const (
	// ActionPanStart begins a single-finger pan on a zoomed page.
	ActionPanStart ActionKind = iota
	// ActionPanMove carries an incremental pan delta (DX, DY).
	ActionPanMove
	// ActionPinchMove carries an incremental zoom ratio (Ratio).
	ActionPinchMove
	// ActionGestureEnd closes any active pan or pinch.
	ActionGestureEnd
	// ActionTap is a quick stationary touch, used for UI affordances only.
	ActionTap
	// ActionDoubleTap toggles the double-tap zoom.
	ActionDoubleTap
)

// Action is one semantic output of the recognizer.
type Action struct {
	Kind  ActionKind
	DX    float64
	DY    float64
	Ratio float64
}

// trackState is the recognizer's internal mode.
type trackState int

const (
	// stateIdle: no touch in progress.
	stateIdle trackState = iota
	// statePassive: a single touch on an unzoomed page. Not claimed —
	// the platform paginator owns the drag; we only watch for taps.
	statePassive
	// statePan: single-finger pan on a zoomed page.
	statePan
	// statePinch: two or more pointers down.
	statePinch
)

// Recognizer turns a raw touch stream into semantic [Action] values.
//
// # Classification Rules
//
//   - Two or more pointers: pinch. The zoom ratio derives from incremental
//     vertical drag (see pinchDragDivisor).
//   - One pointer on a zoomed page: pan.
//   - One pointer on an unzoomed page: unclaimed; the horizontal drag falls
//     through to the page-swipe paginator. Only tap timing is tracked.
//   - Release without a pan/pinch: double tap when within doubleTapWindow
//     and tapSlop of the previous release, otherwise a single tap.
//
// # Robustness
//
// Any abnormal stream termination (TouchCancelled, or a TouchBegan arriving
// mid-gesture) drives the state machine back to idle. No input sequence can
// permanently wedge the recognizer.
type Recognizer struct {
	// isZoomed queries whether the active page is currently zoomed.
	// Evaluated at touch-down to decide pan vs. fall-through.
	isZoomed func() bool

	state trackState

	// Primary pointer tracking for incremental deltas.
	lastX, lastY float64
	downX, downY float64
	moved        bool

	// Previous release, for the double-tap window.
	lastReleaseAt  time.Time
	lastReleaseX   float64
	lastReleaseY   float64
	hasPrevRelease bool
}

// NewRecognizer creates a Recognizer. isZoomed is consulted on every
// touch-down; it must be cheap.
func NewRecognizer(isZoomed func() bool) *Recognizer {
	return &Recognizer{isZoomed: isZoomed}
}

// Handle consumes one touch event and returns the semantic actions it
// produced, in order. The returned slice is often empty.
func (r *Recognizer) Handle(ev TouchEvent) []Action {
	switch ev.Phase {
	case TouchBegan:
		return r.handleBegan(ev)
	case TouchMoved:
		return r.handleMoved(ev)
	case TouchEnded:
		return r.handleEnded(ev)
	case TouchCancelled:
		return r.handleCancelled()
	default:
		return nil
	}
}

func (r *Recognizer) handleBegan(ev TouchEvent) []Action {
	var actions []Action

	// A Began arriving while a gesture is still tracked means the previous
	// stream terminated without a clean up-event. Close it out first.
	if r.state == statePan || r.state == statePinch {
		actions = append(actions, Action{Kind: ActionGestureEnd})
	}

	r.lastX, r.lastY = ev.X, ev.Y
	r.downX, r.downY = ev.X, ev.Y
	r.moved = false

	switch {
	case ev.PointerCount >= 2:
		r.state = statePinch
	case r.isZoomed != nil && r.isZoomed():
		r.state = statePan
		actions = append(actions, Action{Kind: ActionPanStart})
	default:
		r.state = statePassive
	}

	return actions
}

func (r *Recognizer) handleMoved(ev TouchEvent) []Action {
	if r.state == stateIdle {
		return nil
	}

	dx := ev.X - r.lastX
	dy := ev.Y - r.lastY
	r.lastX, r.lastY = ev.X, ev.Y

	if !r.moved {
		totalDX := ev.X - r.downX
		totalDY := ev.Y - r.downY
		if totalDX*totalDX+totalDY*totalDY > tapSlop*tapSlop {
			r.moved = true
		}
	}

	// A second finger landing mid-gesture promotes any mode to pinch.
	if ev.PointerCount >= 2 {
		r.state = statePinch
	}

	switch r.state {
	case statePinch:
		return []Action{{Kind: ActionPinchMove, Ratio: 1 + dy/pinchDragDivisor}}
	case statePan:
		return []Action{{Kind: ActionPanMove, DX: dx, DY: dy}}
	default:
		// A touch that interrupts an abandoned gesture is classified before
		// the orphaned gesture-end reaches the zoom controller, so the latch
		// it saw can be one event stale. Re-check on movement: a page that
		// is zoomed by now claims the drag as a pan.
		if r.isZoomed != nil && r.isZoomed() {
			r.state = statePan
			return []Action{{Kind: ActionPanStart}, {Kind: ActionPanMove, DX: dx, DY: dy}}
		}
		// Passive: the paginator owns this drag.
		return nil
	}
}

func (r *Recognizer) handleEnded(ev TouchEvent) []Action {
	state := r.state
	r.state = stateIdle

	switch {
	case state == statePinch:
		// Pinch releases end the gesture; the zoom controller decides
		// whether to latch the zoom or spring back.
		return []Action{{Kind: ActionGestureEnd}}
	case state == statePan && r.moved:
		return []Action{{Kind: ActionGestureEnd}}
	case state == statePan:
		// Stationary release on a zoomed page: close the gesture, then
		// classify the tap so a double tap can toggle the zoom back out.
		return []Action{{Kind: ActionGestureEnd}, r.classifyTap(ev)}
	case state == statePassive && !r.moved:
		return []Action{r.classifyTap(ev)}
	default:
		// A moved passive touch was a page swipe; nothing to report.
		return nil
	}
}

// classifyTap records a stationary release and resolves it against the
// double-tap window.
func (r *Recognizer) classifyTap(ev TouchEvent) Action {
	now := ev.Timestamp
	isDouble := r.hasPrevRelease &&
		now.Sub(r.lastReleaseAt) < doubleTapWindow &&
		within(ev.X, ev.Y, r.lastReleaseX, r.lastReleaseY, tapSlop)

	r.lastReleaseAt = now
	r.lastReleaseX, r.lastReleaseY = ev.X, ev.Y
	r.hasPrevRelease = true

	if isDouble {
		// Consume the window so a triple tap doesn't read as two doubles.
		r.hasPrevRelease = false
		return Action{Kind: ActionDoubleTap}
	}
	return Action{Kind: ActionTap}
}

func (r *Recognizer) handleCancelled() []Action {
	state := r.state
	r.state = stateIdle
	r.moved = false

	if state == statePan || state == statePinch {
		return []Action{{Kind: ActionGestureEnd}}
	}
	return nil
}

// within reports whether two points are inside the given tolerance.
func within(x1, y1, x2, y2, slop float64) bool {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx+dy*dy <= slop*slop
}

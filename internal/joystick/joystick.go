// Package joystick implements the touch joystick interaction engine.
//
// A Widget converts pointer events into a clamped button position and reports
// it as an (angle, strength) reading: angle in protractor degrees (0 east,
// counter-clockwise) and strength as a percentage of the border radius. All
// methods must be called from the event loop backing the Scheduler.
package joystick

import (
	"math"
	"time"
)

const noPointer = -1

// Widget is the joystick interaction state machine.
type Widget struct {
	opts Options

	width  float64
	height float64

	uiCenter Point
	center   Point
	pos      Point

	buttonRadius float64
	borderRadius float64

	activePointer int
	secondPointer int
	forwardLocked bool
	moveBudget    int

	sched       Scheduler
	refreshTask Task
	pressTask   Task
}

// New returns a widget bound to the given scheduler. Out-of-range option
// values fall back to their defaults.
func New(sched Scheduler, opts Options) *Widget {
	def := DefaultOptions()
	if !validRatio(opts.ButtonSizeRatio) {
		opts.ButtonSizeRatio = def.ButtonSizeRatio
	}
	if !validRatio(opts.BackgroundSizeRatio) {
		opts.BackgroundSizeRatio = def.BackgroundSizeRatio
	}
	if opts.Deadzone < 0 || opts.Deadzone > 100 {
		opts.Deadzone = def.Deadzone
	}
	if opts.BorderWidth < 0 {
		opts.BorderWidth = def.BorderWidth
	}
	if opts.ForwardLockDistance < 0 {
		opts.ForwardLockDistance = def.ForwardLockDistance
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = def.RefreshInterval
	}
	if opts.LongPressDelay <= 0 {
		opts.LongPressDelay = def.LongPressDelay
	}
	if opts.MoveTolerance <= 0 {
		opts.MoveTolerance = def.MoveTolerance
	}
	return &Widget{
		opts:          opts,
		sched:         sched,
		activePointer: noPointer,
		secondPointer: noPointer,
	}
}

// Resize recomputes the widget geometry for a new size. The center moves to
// the geometric midpoint; the button snaps to it under a fixed center and is
// re-clamped otherwise.
func (w *Widget) Resize(width, height float64) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w.width = width
	w.height = height
	w.recomputeRadii()
	w.uiCenter = Point{X: width / 2, Y: height / 2}
	w.center = w.uiCenter
	if w.opts.FixedCenter || !w.Pressed() {
		w.pos = w.center
		return
	}
	w.pos = clampToRadius(w.pos, w.center, w.borderRadius)
}

// HandleDown processes a pointer-down event and reports whether the widget
// consumed it. Touches outside the circular hit zone are left for the host to
// handle. A second concurrent pointer arms the multi-touch long-press instead
// of moving the button.
func (w *Widget) HandleDown(pointerID int, x, y float64) bool {
	if !w.opts.Enabled {
		return false
	}
	if w.activePointer != noPointer && pointerID != w.activePointer {
		w.secondDown(pointerID)
		return true
	}

	p := Point{X: x, Y: y}
	if Dist(p, w.uiCenter) > w.borderRadius+w.opts.BorderWidth {
		return false
	}

	w.activePointer = pointerID
	if !w.opts.FixedCenter {
		w.center = w.lockToAxis(p, w.center)
	}
	w.pos = w.lockToAxis(p, w.center)
	w.settle()
	w.startRefresh()
	w.emitMove()
	return true
}

// HandleMove processes a pointer-move event. Moves from pointers other than
// the tracked one only spend long-press tolerance.
func (w *Widget) HandleMove(pointerID int, x, y float64) {
	if !w.opts.Enabled {
		return
	}
	w.spendMoveBudget()
	if w.activePointer == noPointer || pointerID != w.activePointer {
		return
	}
	w.pos = w.lockToAxis(Point{X: x, Y: y}, w.center)
	w.settle()
	if !w.opts.AutoRecenter {
		w.emitMove()
	}
}

// HandleUp processes a pointer-up event. The long-press pointer lifting only
// cancels the pending long-press; the tracked pointer lifting ends the
// gesture.
func (w *Widget) HandleUp(pointerID int) {
	if !w.opts.Enabled {
		return
	}
	if w.secondPointer != noPointer && pointerID == w.secondPointer {
		w.secondPointer = noPointer
		w.stopPress()
		return
	}
	if w.activePointer == noPointer || pointerID != w.activePointer {
		return
	}
	w.release(true)
}

// Reset ends any active gesture as if the tracked pointer lifted. Used when
// the client connection drops without delivering pointer-up events.
func (w *Widget) Reset() {
	if w.activePointer == noPointer {
		w.secondPointer = noPointer
		w.stopPress()
		return
	}
	w.release(true)
}

// release ends the active gesture. emit controls whether the final recentered
// reading is delivered.
func (w *Widget) release(emit bool) {
	w.activePointer = noPointer
	w.secondPointer = noPointer
	w.stopRefresh()
	w.stopPress()
	if !w.opts.AutoRecenter {
		return
	}
	w.pos = w.recenteredPos()
	w.updateForwardLock()
	if emit {
		w.emitMove()
	}
}

// recenteredPos returns the release position: unlocked axes return to the
// center while a locked axis keeps its pinned coordinate.
func (w *Widget) recenteredPos() Point {
	switch w.opts.Direction {
	case DirectionHorizontal:
		return Point{X: w.center.X, Y: w.pos.Y}
	case DirectionVertical:
		return Point{X: w.pos.X, Y: w.center.Y}
	default:
		return w.center
	}
}

// secondDown arms the two-finger long-press detector.
func (w *Widget) secondDown(pointerID int) {
	if w.secondPointer != noPointer {
		return
	}
	w.secondPointer = pointerID
	w.moveBudget = w.opts.MoveTolerance
	w.stopPress()
	w.pressTask = w.sched.Schedule(w.opts.LongPressDelay, w.firePress)
}

// firePress delivers the multi-touch long-press notification.
func (w *Widget) firePress() {
	w.pressTask = nil
	if w.opts.OnMultiLongPress != nil {
		w.opts.OnMultiLongPress()
	}
}

// spendMoveBudget decrements the long-press move tolerance and cancels the
// pending long-press when it runs out.
func (w *Widget) spendMoveBudget() {
	if w.pressTask == nil {
		return
	}
	w.moveBudget--
	if w.moveBudget <= 0 {
		w.stopPress()
	}
}

// settle clamps the position against the border circle and refreshes the
// forward-lock state. Runs after every position change.
func (w *Widget) settle() {
	d := Dist(w.pos, w.center)
	if d > w.borderRadius || (w.opts.StickToBorder && d != 0) {
		w.pos = scaleToRadius(w.pos, w.center, w.borderRadius, d)
	}
	w.updateForwardLock()
}

// updateForwardLock recomputes the forward-lock state and emits transitions.
func (w *Widget) updateForwardLock() {
	if w.opts.ForwardLockDistance == 0 {
		return
	}
	locked := Dist(w.pos, w.lockAnchor()) < w.buttonRadius+w.opts.BorderWidth
	w.setForwardLocked(locked)
}

// setForwardLocked stores the lock state, emitting on transition.
func (w *Widget) setForwardLocked(locked bool) {
	if locked == w.forwardLocked {
		return
	}
	w.forwardLocked = locked
	if w.opts.OnForwardLock != nil {
		w.opts.OnForwardLock(locked)
	}
}

// lockAnchor is the forward-lock zone center, straight up from the widget
// midpoint.
func (w *Widget) lockAnchor() Point {
	return Point{X: w.uiCenter.X, Y: w.uiCenter.Y - w.opts.ForwardLockDistance}
}

// lockToAxis pins the locked axis of p to the matching coordinate of ref.
func (w *Widget) lockToAxis(p, ref Point) Point {
	switch w.opts.Direction {
	case DirectionHorizontal:
		p.Y = ref.Y
	case DirectionVertical:
		p.X = ref.X
	}
	return p
}

// recomputeRadii derives both radii from the smaller widget dimension, then
// re-clamps the position against the new border.
func (w *Widget) recomputeRadii() {
	half := math.Min(w.width, w.height) / 2
	w.buttonRadius = half * w.opts.ButtonSizeRatio
	w.borderRadius = half * w.opts.BackgroundSizeRatio
	w.pos = clampToRadius(w.pos, w.center, w.borderRadius)
}

// startRefresh restarts the periodic notifier, canceling a pending one first.
func (w *Widget) startRefresh() {
	w.stopRefresh()
	w.refreshTask = w.sched.Repeat(w.opts.RefreshInterval, w.emitMove)
}

// stopRefresh cancels the periodic notifier.
func (w *Widget) stopRefresh() {
	if w.refreshTask != nil {
		w.refreshTask.Stop()
		w.refreshTask = nil
	}
}

// stopPress cancels a pending long-press.
func (w *Widget) stopPress() {
	if w.pressTask != nil {
		w.pressTask.Stop()
		w.pressTask = nil
	}
}

// emitMove delivers the current reading to the move subscriber, applying the
// deadzone at the notification boundary only.
func (w *Widget) emitMove() {
	if w.opts.OnMove == nil {
		return
	}
	strength := w.Strength()
	if strength < w.opts.Deadzone {
		strength = 0
	}
	w.opts.OnMove(w.Angle(), strength)
}

// Angle returns the reading direction in degrees, 0 east and
// counter-clockwise in [0,360), or 90 while forward-locked.
func (w *Widget) Angle() int {
	if w.forwardLocked {
		return 90
	}
	return angleDeg(w.center, w.pos)
}

// Strength returns the displacement as a percentage of the border radius in
// [0,100], or 100 while forward-locked.
func (w *Widget) Strength() int {
	if w.forwardLocked {
		return 100
	}
	return strengthPct(w.center, w.pos, w.borderRadius)
}

// NormalizedX maps the button position onto [0,100] across the horizontal
// travel range, 50 when the widget has no usable width.
func (w *Widget) NormalizedX() int {
	return normalized(w.pos.X, w.buttonRadius, w.width)
}

// NormalizedY maps the button position onto [0,100] across the vertical
// travel range, 50 when the widget has no usable height.
func (w *Widget) NormalizedY() int {
	return normalized(w.pos.Y, w.buttonRadius, w.height)
}

// normalized maps coord onto [0,100] over the travel span left once the
// button radius is excluded on both sides.
func normalized(coord, buttonRadius, size float64) int {
	span := size - 2*buttonRadius
	if span <= 0 {
		return 50
	}
	v := int(math.Round((coord - buttonRadius) * 100 / span))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Pressed reports whether a pointer currently drives the widget.
func (w *Widget) Pressed() bool {
	return w.activePointer != noPointer
}

// ForwardLocked reports whether the forward lock is engaged.
func (w *Widget) ForwardLocked() bool {
	return w.forwardLocked
}

// Position returns the current button coordinate.
func (w *Widget) Position() Point {
	return w.pos
}

// Center returns the current reference center.
func (w *Widget) Center() Point {
	return w.center
}

// ButtonRadius returns the derived button radius.
func (w *Widget) ButtonRadius() float64 {
	return w.buttonRadius
}

// BorderRadius returns the derived border radius.
func (w *Widget) BorderRadius() float64 {
	return w.borderRadius
}

// Size returns the widget dimensions.
func (w *Widget) Size() (width, height float64) {
	return w.width, w.height
}

// Enabled reports whether pointer events are processed.
func (w *Widget) Enabled() bool { return w.opts.Enabled }

// FixedCenter reports whether the center is pinned to the widget midpoint.
func (w *Widget) FixedCenter() bool { return w.opts.FixedCenter }

// AutoRecenter reports whether the button springs back on release.
func (w *Widget) AutoRecenter() bool { return w.opts.AutoRecenter }

// StickToBorder reports whether any displacement rides the border circle.
func (w *Widget) StickToBorder() bool { return w.opts.StickToBorder }

// Direction returns the axis restriction.
func (w *Widget) Direction() Direction { return w.opts.Direction }

// Deadzone returns the minimum reported strength threshold.
func (w *Widget) Deadzone() int { return w.opts.Deadzone }

// ForwardLockDistance returns the lock-zone offset, 0 when disabled.
func (w *Widget) ForwardLockDistance() float64 { return w.opts.ForwardLockDistance }

// BorderWidth returns the border stroke width.
func (w *Widget) BorderWidth() float64 { return w.opts.BorderWidth }

// ButtonSizeRatio returns the button radius ratio.
func (w *Widget) ButtonSizeRatio() float64 { return w.opts.ButtonSizeRatio }

// BackgroundSizeRatio returns the border radius ratio.
func (w *Widget) BackgroundSizeRatio() float64 { return w.opts.BackgroundSizeRatio }

// RefreshInterval returns the periodic notification cadence.
func (w *Widget) RefreshInterval() time.Duration { return w.opts.RefreshInterval }

// SetOnMoveListener sets or clears the move subscriber.
func (w *Widget) SetOnMoveListener(fn func(angle, strength int)) {
	w.opts.OnMove = fn
}

// SetOnForwardLockListener sets or clears the forward-lock subscriber.
func (w *Widget) SetOnForwardLockListener(fn func(locked bool)) {
	w.opts.OnForwardLock = fn
}

// SetOnMultiLongPressListener sets or clears the long-press subscriber.
func (w *Widget) SetOnMultiLongPressListener(fn func()) {
	w.opts.OnMultiLongPress = fn
}

// SetButtonSizeRatio updates the button radius ratio. Values outside (0,1]
// keep the previous ratio.
func (w *Widget) SetButtonSizeRatio(r float64) {
	if !validRatio(r) {
		return
	}
	w.opts.ButtonSizeRatio = r
	w.recomputeRadii()
}

// SetBackgroundSizeRatio updates the border radius ratio. Values outside
// (0,1] keep the previous ratio.
func (w *Widget) SetBackgroundSizeRatio(r float64) {
	if !validRatio(r) {
		return
	}
	w.opts.BackgroundSizeRatio = r
	w.recomputeRadii()
}

// SetFixedCenter toggles between the geometric center and the touch-down
// center. Enabling it moves the center back to the widget midpoint.
func (w *Widget) SetFixedCenter(fixed bool) {
	w.opts.FixedCenter = fixed
	if !fixed {
		return
	}
	w.center = w.uiCenter
	if w.Pressed() {
		w.pos = clampToRadius(w.pos, w.center, w.borderRadius)
		return
	}
	w.pos = w.center
}

// SetAutoRecenter toggles the spring-back on release.
func (w *Widget) SetAutoRecenter(auto bool) {
	w.opts.AutoRecenter = auto
}

// SetStickToBorder forces any displacement onto the border circle from the
// next event on.
func (w *Widget) SetStickToBorder(stick bool) {
	w.opts.StickToBorder = stick
}

// SetEnabled toggles event processing. Disabling mid-gesture releases the
// widget without emitting.
func (w *Widget) SetEnabled(enabled bool) {
	if w.opts.Enabled == enabled {
		return
	}
	w.opts.Enabled = enabled
	if !enabled && w.Pressed() {
		w.release(false)
	}
}

// SetDirection updates the axis restriction. Unknown values are ignored.
func (w *Widget) SetDirection(d Direction) {
	switch d {
	case DirectionBoth, DirectionHorizontal, DirectionVertical:
		w.opts.Direction = d
	}
}

// SetDeadzone updates the minimum reported strength. Values outside 0-100
// keep the previous threshold.
func (w *Widget) SetDeadzone(dz int) {
	if dz < 0 || dz > 100 {
		return
	}
	w.opts.Deadzone = dz
}

// SetForwardLockDistance moves the lock zone, 0 disabling it. Negative values
// keep the previous distance.
func (w *Widget) SetForwardLockDistance(d float64) {
	if d < 0 {
		return
	}
	w.opts.ForwardLockDistance = d
	if d == 0 {
		w.setForwardLocked(false)
		return
	}
	w.updateForwardLock()
}

// SetBorderWidth updates the border stroke width. Negative values keep the
// previous width.
func (w *Widget) SetBorderWidth(width float64) {
	if width < 0 {
		return
	}
	w.opts.BorderWidth = width
}

// SetRefreshInterval updates the notification cadence, restarting a running
// notifier. Non-positive intervals keep the previous cadence.
func (w *Widget) SetRefreshInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	w.opts.RefreshInterval = interval
	if w.refreshTask != nil {
		w.startRefresh()
	}
}

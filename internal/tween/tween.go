// Package tween animates a single value towards a target with easing.
package tween

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(p float64) float64

// Linear is no easing.
func Linear(p float64) float64 { return p }

// Power1InOut is a quadratic ease in and out.
func Power1InOut(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	q := -2*p + 2
	return 1 - q*q/2
}

// BackOut overshoots the target by an amount set by s, then settles.
func BackOut(s float64) Ease {
	return func(p float64) float64 {
		p--
		return p*p*((s+1)*p+s) + 1
	}
}

// Value is an animatable number. Starting a new tween replaces the running one;
// the replaced tween's completion callback never fires.
type Value struct {
	v float64

	from, to   float64
	duration   float64
	elapsed    float64
	ease       Ease
	onComplete func()
	running    bool
}

// NewValue returns a Value resting at v.
func NewValue(v float64) *Value {
	return &Value{v: v}
}

// Get returns the current value.
func (t *Value) Get() float64 { return t.v }

// Running reports whether a tween is in progress.
func (t *Value) Running() bool { return t.running }

// To starts animating from the current value to target over duration seconds.
// onComplete may be nil. A non-positive duration jumps straight to target.
func (t *Value) To(target, duration float64, ease Ease, onComplete func()) {
	if ease == nil {
		ease = Linear
	}
	t.from, t.to = t.v, target
	t.duration, t.elapsed = duration, 0
	t.ease = ease
	t.onComplete = onComplete
	t.running = true
	if duration <= 0 {
		t.Step(0)
	}
}

// Step advances the running tween by dt seconds.
func (t *Value) Step(dt float64) {
	if !t.running {
		return
	}
	t.elapsed += dt
	p := 1.0
	if t.duration > 0 && t.elapsed < t.duration {
		p = t.elapsed / t.duration
	}
	t.v = t.from + (t.to-t.from)*t.ease(p)
	if p < 1 {
		return
	}
	t.v = t.to
	t.running = false
	if done := t.onComplete; done != nil {
		t.onComplete = nil
		done()
	}
}

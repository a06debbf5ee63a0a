package widget

import (
	"math"
	"time"
)

// DragPhase is the state of a Drag.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
	DragInertia
)

func (p DragPhase) String() string {
	switch p {
	case DragDragging:
		return "dragging"
	case DragInertia:
		return "inertia"
	}
	return "idle"
}

// DragConfig tunes inertia.
type DragConfig struct {
	// Friction is the per-frame velocity multiplier in (0, 1).
	Friction float64
	// MinVelocity ends inertia once |velocity| drops below it.
	MinVelocity float64
	// MaxFrames ends inertia after this many ticks.
	MaxFrames int
}

// DefaultDragConfig returns the gallery's tuning.
func DefaultDragConfig() DragConfig {
	return DragConfig{Friction: 0.94, MinVelocity: 0.01, MaxFrames: 600}
}

// Drag is a pointer-driven rotation with inertia. Offset is the
// accumulated rotation; velocity is in offset units per millisecond.
type Drag struct {
	cfg DragConfig

	phase    DragPhase
	offset   float64
	velocity float64
	lastX    float64
	lastAt   time.Time
	frames   int
}

// NewDrag returns an idle drag. Zero config fields take defaults.
func NewDrag(cfg DragConfig) *Drag {
	def := DefaultDragConfig()
	if cfg.Friction <= 0 || cfg.Friction >= 1 {
		cfg.Friction = def.Friction
	}
	if cfg.MinVelocity <= 0 {
		cfg.MinVelocity = def.MinVelocity
	}
	if cfg.MaxFrames <= 0 {
		cfg.MaxFrames = def.MaxFrames
	}
	return &Drag{cfg: cfg}
}

func (d *Drag) Phase() DragPhase  { return d.phase }
func (d *Drag) Offset() float64   { return d.offset }
func (d *Drag) Velocity() float64 { return d.velocity }

// PointerDown starts dragging from any phase, cancelling inertia.
func (d *Drag) PointerDown(x float64, at time.Time) {
	d.phase = DragDragging
	d.velocity = 0
	d.lastX = x
	d.lastAt = at
	d.frames = 0
}

// PointerMove moves the drag. It is ignored unless dragging.
func (d *Drag) PointerMove(x float64, at time.Time) {
	if d.phase != DragDragging {
		return
	}
	dx := x - d.lastX
	d.offset += dx
	if ms := float64(at.Sub(d.lastAt)) / float64(time.Millisecond); ms > 0 {
		d.velocity = dx / ms
	}
	d.lastX = x
	d.lastAt = at
}

// PointerUp releases the pointer. Fast releases coast in inertia.
func (d *Drag) PointerUp() {
	if d.phase != DragDragging {
		return
	}
	d.frames = 0
	if math.Abs(d.velocity) < d.cfg.MinVelocity {
		d.velocity = 0
		d.phase = DragIdle
		return
	}
	d.phase = DragInertia
}

// Tick advances inertia by one frame of dt and reports whether the drag
// is still moving.
func (d *Drag) Tick(dt time.Duration) bool {
	if d.phase != DragInertia {
		return d.phase == DragDragging
	}
	d.offset += d.velocity * float64(dt) / float64(time.Millisecond)
	d.velocity *= d.cfg.Friction
	d.frames++
	if math.Abs(d.velocity) < d.cfg.MinVelocity || d.frames >= d.cfg.MaxFrames {
		d.velocity = 0
		d.phase = DragIdle
		return false
	}
	return true
}

package locomotion

// Observer receives locomotion state changes for display.
// Calls are fire-and-forget; nothing flows back into the controller.
type Observer interface {
	GroundedChanged(grounded bool)
	SlidingChanged(sliding bool)
	WallRunningChanged(running bool, side Side)
}

// ObserverFuncs adapts optional functions to an Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Grounded    func(bool)
	Sliding     func(bool)
	WallRunning func(bool, Side)
}

func (o ObserverFuncs) GroundedChanged(g bool) {
	if o.Grounded != nil {
		o.Grounded(g)
	}
}

func (o ObserverFuncs) SlidingChanged(s bool) {
	if o.Sliding != nil {
		o.Sliding(s)
	}
}

func (o ObserverFuncs) WallRunningChanged(r bool, side Side) {
	if o.WallRunning != nil {
		o.WallRunning(r, side)
	}
}

// Observers fans notifications out to several observers in order.
type Observers []Observer

func (os Observers) GroundedChanged(g bool) {
	for _, o := range os {
		if o != nil {
			o.GroundedChanged(g)
		}
	}
}

func (os Observers) SlidingChanged(s bool) {
	for _, o := range os {
		if o != nil {
			o.SlidingChanged(s)
		}
	}
}

func (os Observers) WallRunningChanged(r bool, side Side) {
	for _, o := range os {
		if o != nil {
			o.WallRunningChanged(r, side)
		}
	}
}

// EffectKind identifies a cosmetic request.
type EffectKind uint8

const (
	EffectSlideStart EffectKind = iota
	EffectSlideEnd
	EffectWallLean
	EffectWallLeanReset
)

func (k EffectKind) String() string {
	switch k {
	case EffectSlideStart:
		return "slide_start"
	case EffectSlideEnd:
		return "slide_end"
	case EffectWallLean:
		return "wall_lean"
	case EffectWallLeanReset:
		return "wall_lean_reset"
	default:
		return "unknown"
	}
}

// Effect is a cosmetic request emitted on state transitions.
// Side is only meaningful for EffectWallLean.
type Effect struct {
	Kind EffectKind
	Side Side
}

// EffectSink consumes cosmetic requests. It must not block.
type EffectSink interface {
	Request(e Effect)
}

// EffectFunc adapts a function to an EffectSink.
type EffectFunc func(Effect)

func (f EffectFunc) Request(e Effect) { f(e) }

package locomotion

// Latch holds an edge-triggered press between the frame that samples it and
// the physics step that consumes it. A press is consumed exactly once.
type Latch struct {
	set bool
}

// Press records a press. Pressing an already set latch has no extra effect.
func (l *Latch) Press() { l.set = true }

// Pending reports whether a press is waiting to be consumed.
func (l *Latch) Pending() bool { return l.set }

// Consume clears the latch and reports whether a press was pending.
func (l *Latch) Consume() bool {
	was := l.set
	l.set = false
	return was
}

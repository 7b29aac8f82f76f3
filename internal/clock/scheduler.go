package clock

import "container/heap"

// Timer is a single armed one-shot: a master-cycle countdown that invokes
// Callback when it reaches zero. Callback may re-arm the timer (Arm/ArmRelative)
// to model hardware auto-reload behavior.
type Timer struct {
	Name      string
	Active    bool
	Remaining int64
	Callback  func(t *Timer)
}

// Arm activates the timer with an absolute remaining-cycle count. A
// non-positive count is TimerUnderflow: it becomes a single immediate fire.
func (t *Timer) Arm(remaining int64) {
	if remaining <= 0 {
		remaining = 1
	}
	t.Remaining = remaining
	t.Active = true
}

// ArmRelative adds delta cycles to whatever is currently remaining (or arms
// fresh if the timer was inactive), matching the hardware's "re-arm relative
// to its own nominal period" idiom used by the scanline timer.
func (t *Timer) ArmRelative(delta int64) {
	if !t.Active {
		t.Arm(delta)
		return
	}
	t.Remaining += delta
	if t.Remaining <= 0 {
		t.Remaining = 1
	}
}

// Disarm deactivates the timer; its Remaining value is left untouched and
// ignored while inactive.
func (t *Timer) Disarm() { t.Active = false }

// timerHeap is a container/heap min-heap ordered by Remaining, holding only
// the currently active timers.
type timerHeap []*Timer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].Remaining < h[j].Remaining }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x interface{}) { *h = append(*h, x.(*Timer)) }
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MasterClock owns the registered armed timers (the emulator registers only
// the video raster timer) and answers "cycles until the
// next event" / "consume N cycles, firing crossed callbacks" queries for the
// frame orchestrator. It replaces a per-component "next cycle" scheduler
// with a min-heap of armed one-shots, per the component budget table.
type MasterClock struct {
	Cycle  int64
	timers []*Timer
}

// NewMasterClock returns an empty clock at cycle zero; timers are registered
// with Register.
func NewMasterClock() *MasterClock {
	return &MasterClock{}
}

// Register adds a timer to the clock's fixed set. Timers are normally
// registered once at construction time and toggled active/inactive for the
// remainder of the session.
func (c *MasterClock) Register(t *Timer) {
	c.timers = append(c.timers, t)
}

// NextEventCycles returns the minimum Remaining across all active timers, or
// math.MaxInt64 if none are armed.
func (c *MasterClock) NextEventCycles() int64 {
	h := c.activeHeap()
	if h.Len() == 0 {
		return 1<<63 - 1
	}
	return h[0].Remaining
}

// Consume advances the master cycle counter and every active timer by n
// cycles, firing (and possibly re-arming, via Callback) any timer whose
// Remaining crosses zero, in ascending Remaining order.
func (c *MasterClock) Consume(n int64) {
	if n <= 0 {
		return
	}
	c.Cycle += n
	for _, t := range c.timers {
		if t.Active {
			t.Remaining -= n
		}
	}
	h := c.activeHeap()
	heap.Init(&h)
	for h.Len() > 0 && h[0].Remaining <= 0 {
		t := heap.Pop(&h).(*Timer)
		if t.Callback != nil {
			t.Callback(t)
		}
		if t.Active && t.Remaining <= 0 {
			t.Remaining = 1
		}
		if t.Active {
			heap.Push(&h, t)
		}
	}
}

// Reset clears every timer to inactive and zeroes the cycle counter,
// matching the host's reset() contract ("in-flight timers are cleared").
func (c *MasterClock) Reset() {
	c.Cycle = 0
	for _, t := range c.timers {
		t.Active = false
		t.Remaining = 0
	}
}

func (c *MasterClock) activeHeap() timerHeap {
	h := make(timerHeap, 0, len(c.timers))
	for _, t := range c.timers {
		if t.Active {
			h = append(h, t)
		}
	}
	return h
}

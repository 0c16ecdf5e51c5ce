package decision

// Aggregator smooths per-row signals over a sliding window and
// thresholds the mean into a single trade intent per evaluation cycle.
// It is a fixed-capacity ring buffer with a running sum, so each push
// is O(1).
//
// With the default window of 1 it degenerates to acting directly on the
// latest row's signal.
type Aggregator struct {
	buf  []int
	head int
	size int
	sum  int
}

// NewAggregator creates an aggregator over the last `window` signals.
// window values below 1 are treated as 1.
func NewAggregator(window int) *Aggregator {
	if window < 1 {
		window = 1
	}
	return &Aggregator{buf: make([]int, window)}
}

// Window returns the configured window capacity.
func (a *Aggregator) Window() int { return len(a.buf) }

// Len returns the number of signals currently retained.
func (a *Aggregator) Len() int { return a.size }

// Push appends a signal, evicting the oldest once the window is full,
// and returns the resulting intent: mean > 0 buy, mean < 0 sell,
// mean == 0 hold.
func (a *Aggregator) Push(signal int) Intent {
	if a.size == len(a.buf) {
		a.sum -= a.buf[a.head]
	} else {
		a.size++
	}
	a.buf[a.head] = signal
	a.head = (a.head + 1) % len(a.buf)
	a.sum += signal
	return a.Intent()
}

// Intent thresholds the current window mean. An empty window (no data
// fetched yet) holds rather than failing.
func (a *Aggregator) Intent() Intent {
	if a.size == 0 {
		return IntentHold
	}
	switch {
	case a.sum > 0:
		return IntentBuy
	case a.sum < 0:
		return IntentSell
	default:
		return IntentHold
	}
}

// Mean returns the arithmetic mean of the retained window, 0 when empty.
func (a *Aggregator) Mean() float64 {
	if a.size == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.size)
}

// Reset clears the retained history.
func (a *Aggregator) Reset() {
	a.head = 0
	a.size = 0
	a.sum = 0
}

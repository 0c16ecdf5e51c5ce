package strategy

// closeWindow keeps a rolling window of recent closing prices with a
// running sum, so moving averages cost O(1) per bar.
type closeWindow struct {
	max int
	buf []float64
	sum float64
}

func newCloseWindow(max int) *closeWindow {
	if max <= 0 {
		max = 1
	}
	return &closeWindow{max: max}
}

func (w *closeWindow) Add(v float64) {
	w.buf = append(w.buf, v)
	w.sum += v
	if len(w.buf) > w.max {
		w.sum -= w.buf[0]
		w.buf = w.buf[1:]
	}
}

func (w *closeWindow) Full() bool { return len(w.buf) == w.max }

func (w *closeWindow) Mean() float64 {
	if len(w.buf) == 0 {
		return 0
	}
	return w.sum / float64(len(w.buf))
}

// At returns the value n bars back from the most recent, or 0 when the
// window does not reach that far.
func (w *closeWindow) At(n int) float64 {
	idx := len(w.buf) - 1 - n
	if idx < 0 {
		return 0
	}
	return w.buf[idx]
}

func (w *closeWindow) Len() int { return len(w.buf) }

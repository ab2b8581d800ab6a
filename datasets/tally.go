package datasets

import "sync"

// Tally is used to count predictions against expected classes from many goroutines
type Tally struct {
	// confusion[expected][predicted] counts samples
	confusion [][]uint64

	total   uint64
	correct uint64

	mut sync.Mutex
}

// Init initializes the tally for the given number of classes
func (t *Tally) Init(classes int) {
	t.confusion = make([][]uint64, classes)
	for i := range t.confusion {
		t.confusion[i] = make([]uint64, classes)
	}
	t.total = 0
	t.correct = 0
}

// Add votes one prediction. Classes outside the tally only count towards the total.
func (t *Tally) Add(expected, predicted int) {
	t.mut.Lock()
	t.total++
	if expected == predicted {
		t.correct++
	}
	if expected >= 0 && expected < len(t.confusion) && predicted >= 0 && predicted < len(t.confusion) {
		t.confusion[expected][predicted]++
	}
	t.mut.Unlock()
}

// PercentError is the share of wrong predictions in percent, 0 when empty
func (t *Tally) PercentError() float64 {
	t.mut.Lock()
	defer t.mut.Unlock()
	if t.total == 0 {
		return 0
	}
	return 100 * float64(t.total-t.correct) / float64(t.total)
}

// Confusion returns a copy of the confusion matrix indexed [expected][predicted]
func (t *Tally) Confusion() [][]uint64 {
	t.mut.Lock()
	defer t.mut.Unlock()
	o := make([][]uint64, len(t.confusion))
	for i, row := range t.confusion {
		o[i] = append([]uint64(nil), row...)
	}
	return o
}

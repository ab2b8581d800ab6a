package trainer

import "context"
import "fmt"
import "time"

// EpochReport is the outcome of one training epoch.
type EpochReport struct {
	Epoch      int           `json:"epoch"`
	TrainError float64       `json:"train_error"` // percent
	TestError  float64       `json:"test_error"`  // percent
	Loss       float64       `json:"loss"`        // mean cross-entropy
	Duration   time.Duration `json:"duration"`

	// Confusion counts test predictions, indexed [expected][predicted] class.
	Confusion [][]uint64 `json:"confusion"`
}

// String formats the report as one progress line.
func (r EpochReport) String() string {
	return fmt.Sprintf("epoch: %4d   train error: %5.2f%%   test error: %5.2f%%", r.Epoch, r.TrainError, r.TestError)
}

// NewLoopFunc returns the fixed-length epoch loop. step runs epoch number e
// (counting from first) and the loop stops early when ctx is done or step fails.
func NewLoopFunc(first, epochs int, step func(e int) (EpochReport, error)) func(ctx context.Context) ([]EpochReport, error) {
	return func(ctx context.Context) ([]EpochReport, error) {
		reports := make([]EpochReport, 0, epochs)
		for e := first; e < first+epochs; e++ {
			if err := ctx.Err(); err != nil {
				return reports, err
			}
			start := time.Now()
			r, err := step(e)
			if err != nil {
				return reports, fmt.Errorf("epoch %d: %w", e, err)
			}
			r.Epoch = e
			r.Duration = time.Since(start)
			reports = append(reports, r)
		}
		return reports, nil
	}
}

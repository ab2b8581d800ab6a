package trainer

import "github.com/neurlang/mushroom/datasets"
import "github.com/neurlang/mushroom/net/feedforward"
import "github.com/neurlang/mushroom/parallel"

// NewEvaluateFunc returns a function classifying every sample of a dataset with net,
// on up to threads goroutines, and tallying the predictions against the expected classes.
func NewEvaluateFunc(net *feedforward.FeedforwardNetwork, threads int) func(ds datasets.Dataset) (*datasets.Tally, error) {
	return func(ds datasets.Dataset) (*datasets.Tally, error) {
		tally := new(datasets.Tally)
		tally.Init(net.Outdim())
		err := parallel.ForEachErr(len(ds), threads, func(j int) error {
			predicted, err := net.Infer(ds[j].Input)
			if err != nil {
				return err
			}
			tally.Add(ds[j].Class, predicted)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return tally, nil
	}
}

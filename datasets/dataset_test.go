package datasets

import "math/rand"
import "sync"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func sampleSet(n0, n1 int) Dataset {
	var inputs [][]float64
	var classes []int
	for i := 0; i < n0+n1; i++ {
		inputs = append(inputs, []float64{float64(i)})
		if i < n0 {
			classes = append(classes, 0)
		} else {
			classes = append(classes, 1)
		}
	}
	return New(inputs, classes)
}

func TestNew(t *testing.T) {
	d := New([][]float64{{1, 0}, {0, 1}}, []int{1, 0})
	require.Len(t, d, 2)
	assert.Equal(t, 2, d.Indim())
	assert.Equal(t, []int{1, 0}, d.Classes())
	assert.Equal(t, 0, Dataset(nil).Indim())
}

func TestSplitWithProportionStratified(t *testing.T) {
	d := sampleSet(40, 60)
	test, train := SplitWithProportion(d, .25, rand.New(rand.NewSource(1)))
	require.Len(t, test, 25)
	require.Len(t, train, 75)

	testByClass := SplitDataset(test)
	assert.Len(t, testByClass[0], 10)
	assert.Len(t, testByClass[1], 15)

	seen := map[float64]bool{}
	for _, s := range append(append(Dataset{}, test...), train...) {
		assert.False(t, seen[s.Input[0]], "sample %v in both parts", s.Input[0])
		seen[s.Input[0]] = true
	}
	assert.Len(t, seen, 100)
}

func TestSplitWithProportionReproducible(t *testing.T) {
	a, _ := SplitWithProportion(sampleSet(10, 10), .5, rand.New(rand.NewSource(7)))
	b, _ := SplitWithProportion(sampleSet(10, 10), .5, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestSplitWithProportionBounds(t *testing.T) {
	first, second := SplitWithProportion(sampleSet(3, 3), 0, rand.New(rand.NewSource(1)))
	assert.Empty(t, first)
	assert.Len(t, second, 6)
	first, second = SplitWithProportion(sampleSet(3, 3), 1, rand.New(rand.NewSource(1)))
	assert.Len(t, first, 6)
	assert.Empty(t, second)
}

func TestTally(t *testing.T) {
	var tally Tally
	tally.Init(2)
	assert.Equal(t, 0.0, tally.PercentError())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i < 25 {
				tally.Add(0, 1)
			} else {
				tally.Add(1, 1)
			}
		}(i)
	}
	wg.Wait()
	assert.InDelta(t, 25.0, tally.PercentError(), 1e-9)
	assert.Equal(t, [][]uint64{{0, 25}, {0, 75}}, tally.Confusion())

	// classes outside the tally count towards the total only
	tally.Add(5, 5)
	assert.InDelta(t, 2500.0/101, tally.PercentError(), 1e-9)
	assert.Equal(t, [][]uint64{{0, 25}, {0, 75}}, tally.Confusion())
}

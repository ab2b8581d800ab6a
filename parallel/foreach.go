// Package parallel contains the bounded ForEach loops used for row encoding and evaluation.
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = Threads()
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}

// ForEachErr is ForEach for bodies that can fail. All iterations run; the error
// of the lowest failing index is returned so the result does not depend on scheduling.
func ForEachErr(length, limit int, body func(i int) error) error {
	if length <= 0 {
		return nil
	}
	var (
		mut    sync.Mutex
		first  = -1
		result error
	)
	ForEach(length, limit, func(i int) {
		if err := body(i); err != nil {
			mut.Lock()
			if first == -1 || i < first {
				first, result = i, err
			}
			mut.Unlock()
		}
	})
	return result
}

package parallel

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

type (
	WorkerFunc func(func() error)
	WaitFunc   func() error
)

// Pool runs jobs on at most numWorkers goroutines. A pool is used for a
// single batch: queue jobs with Do, then call Wait once.
type Pool struct {
	Do   WorkerFunc
	Wait WaitFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	if numWorkers == 1 {
		var firstErr error
		return &Pool{
			Do: func(f func() error) {
				if firstErr != nil {
					return
				}
				firstErr = f()
			},
			Wait: func() error {
				return firstErr
			},
		}
	}

	var g errgroup.Group
	g.SetLimit(numWorkers)

	return &Pool{
		Do:   g.Go,
		Wait: g.Wait,
	}
}

// Each calls f(i) for every i in [0, n) on up to numWorkers goroutines and
// returns once every call is done. f cannot fail.
func Each(numWorkers, n int, f func(i int)) {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	numWorkers = min(numWorkers, n)

	if numWorkers <= 1 {
		for i := range n {
			f(i)
		}
		return
	}

	workChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for i := range workChan {
				f(i)
			}
		})
	}

	for i := range n {
		workChan <- i
	}
	close(workChan)
	wg.Wait()
}

package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryJob(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)

		var count atomic.Int64
		for range 100 {
			pool.Do(func() error {
				count.Add(1)
				return nil
			})
		}

		if err := pool.Wait(); err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if got := count.Load(); got != 100 {
			t.Errorf("workers=%d: ran %d jobs, want 100", workers, got)
		}
	}
}

func TestPoolReturnsError(t *testing.T) {
	errBoom := errors.New("boom")

	for _, workers := range []int{1, 4} {
		pool := Start(workers)
		for i := range 10 {
			pool.Do(func() error {
				if i == 3 {
					return errBoom
				}
				return nil
			})
		}

		if err := pool.Wait(); !errors.Is(err, errBoom) {
			t.Errorf("workers=%d: error = %v, want %v", workers, err, errBoom)
		}
	}
}

func TestSerialPoolStopsAfterError(t *testing.T) {
	pool := Start(1)

	var ran int
	for i := range 5 {
		pool.Do(func() error {
			ran++
			if i == 1 {
				return errors.New("stop")
			}
			return nil
		})
	}

	if err := pool.Wait(); err == nil {
		t.Fatal("expected error")
	}
	if ran != 2 {
		t.Errorf("ran %d jobs, want 2", ran)
	}
}

func TestEachVisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		for _, n := range []int{0, 1, 17} {
			visits := make([]atomic.Int64, n)

			Each(workers, n, func(i int) {
				visits[i].Add(1)
			})

			for i := range visits {
				if got := visits[i].Load(); got != 1 {
					t.Errorf("workers=%d n=%d: index %d visited %d times", workers, n, i, got)
				}
			}
		}
	}
}

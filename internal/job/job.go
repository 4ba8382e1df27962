// Package job tracks background work spawned by UI flows. The compositor
// core touches it through exactly one blocking operation: finish all
// outstanding jobs before flushing persistent state.
package job

import (
	"context"
	"errors"
	"sync"
)

// Jobs is a registry of in-flight background tasks.
type Jobs struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	wg      sync.WaitGroup
	pending int
	errs    []error
}

// New returns an empty job registry.
func New() *Jobs {
	ctx, cancel := context.WithCancel(context.Background())
	return &Jobs{ctx: ctx, cancel: cancel}
}

// Go runs fn on its own goroutine and tracks it until completion. The
// error, if any, is collected and reported by the next Finish call.
func (j *Jobs) Go(fn func(ctx context.Context) error) {
	j.mu.Lock()
	j.pending++
	j.mu.Unlock()
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		err := fn(j.ctx)
		j.mu.Lock()
		j.pending--
		if err != nil {
			j.errs = append(j.errs, err)
		}
		j.mu.Unlock()
	}()
}

// Pending reports the number of jobs not yet completed.
func (j *Jobs) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pending
}

// Finish blocks until every outstanding job has completed, then returns
// the collected errors joined into one. The error list is drained, so a
// second Finish with no new jobs returns nil.
func (j *Jobs) Finish() error {
	j.wg.Wait()
	j.mu.Lock()
	errs := j.errs
	j.errs = nil
	j.mu.Unlock()
	return errors.Join(errs...)
}

// Close cancels the context handed to running jobs. Pending jobs still
// count until they return; call Finish afterwards for a clean drain.
func (j *Jobs) Close() {
	j.cancel()
}

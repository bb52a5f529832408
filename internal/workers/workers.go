// Package workers runs fire-and-forget background jobs that must be
// drained before the process exits.
package workers

import (
	"log/slog"
	"sync"
)

// Global is the worker shared by the request handlers.
var Global = NewWorker()

type Worker struct {
	wg *sync.WaitGroup
}

func NewWorker() *Worker {
	return &Worker{
		wg: &sync.WaitGroup{},
	}
}

// Go runs fn in a new goroutine. A panic in fn is logged instead of
// crashing the server.
func (w *Worker) Go(name string, fn func()) {
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("background job panicked", "job", name, "panic", r)
			}
		}()

		fn()
	}()
}

// Wait blocks until every job started with Go has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}

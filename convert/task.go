package convert

import (
	"context"

	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/source"
)

// Task is a conversion running in the background
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}

	doc      *model.Document
	warnings []Warning
	err      error
}

// Start runs Convert in a new goroutine. The task stops when ctx ends or
// Cancel is called; Wait then returns the partial document.
func (c *Converter) Start(ctx context.Context, title string, sources ...source.Source) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()
		t.doc, t.warnings, t.err = c.Convert(ctx, title, sources...)
	}()

	return t
}

// Cancel asks the task to stop. It does not wait.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed when the task has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its result
func (t *Task) Wait() (*model.Document, []Warning, error) {
	<-t.done
	return t.doc, t.warnings, t.err
}

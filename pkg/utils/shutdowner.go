package utils

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Shutdowner is an interface with a Shutdown method to gracefully shutdown
// a running process.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownFunc adapts a function to the Shutdowner interface.
type ShutdownFunc func(ctx context.Context) error

// Shutdown calls f(ctx).
func (f ShutdownFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// GroupShutdown allow to group multiple Shutdowner into a single one.
type GroupShutdown struct {
	s []Shutdowner
}

// NewGroupShutdown returns a new GroupShutdown
func NewGroupShutdown(s ...Shutdowner) *GroupShutdown {
	return &GroupShutdown{s}
}

// Add appends a Shutdowner to the group.
func (g *GroupShutdown) Add(s Shutdowner) {
	g.s = append(g.s, s)
}

// Shutdown closes all the encapsulated [Shutdowner] in parallel an returns
// the concatenated errors.
func (g *GroupShutdown) Shutdown(ctx context.Context) error {
	var errm error
	var l sync.Mutex
	var w sync.WaitGroup

	for _, s := range g.s {
		w.Add(1)
		go func() {
			defer w.Done()
			if err := s.Shutdown(ctx); err != nil {
				l.Lock()
				errm = multierror.Append(errm, err)
				l.Unlock()
			}
		}()
	}

	w.Wait()
	return errm
}

package preview

import (
	"context"
	"sync"

	"github.com/goliatone/go-contractgen/pkg/model"
)

// RenderFunc produces a preview for a state.
type RenderFunc[T any] func(ctx context.Context, state model.State) (T, error)

// Snapshot is the most recently applied render.
type Snapshot[T any] struct {
	Generation uint64
	State      model.State
	Value      T
	Err        error
}

// Session re-renders a preview each time the state changes. Every Submit gets
// a new generation and cancels the render still in flight. A finished render
// is applied only when its generation is newer than the applied one, so
// results that complete out of order never overwrite newer output.
type Session[T any] struct {
	render RenderFunc[T]

	mu      sync.Mutex
	issued  uint64
	applied uint64
	latest  Snapshot[T]
	state   model.State
	cancel  context.CancelFunc
	running int
	idle    *sync.Cond
}

// NewSession returns a session that renders with fn.
func NewSession[T any](fn RenderFunc[T]) *Session[T] {
	s := &Session[T]{render: fn}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Submit starts rendering state and returns its generation. The render runs
// on its own goroutine under a context derived from ctx.
func (s *Session[T]) Submit(ctx context.Context, state model.State) uint64 {
	state = state.Clone()
	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.issued++
	gen := s.issued
	s.cancel = cancel
	s.state = state
	s.running++
	s.mu.Unlock()

	go func() {
		defer s.done()
		defer cancel()

		value, err := s.render(runCtx, state)
		if runCtx.Err() != nil {
			return
		}
		s.apply(Snapshot[T]{Generation: gen, State: state, Value: value, Err: err})
	}()
	return gen
}

func (s *Session[T]) done() {
	s.mu.Lock()
	s.running--
	if s.running == 0 {
		s.idle.Broadcast()
	}
	s.mu.Unlock()
}

func (s *Session[T]) apply(snap Snapshot[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Generation <= s.applied {
		return
	}
	s.applied = snap.Generation
	s.latest = snap
}

// Latest returns the applied snapshot, if any render has completed.
func (s *Session[T]) Latest() (Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.applied > 0
}

// State returns the most recently submitted state.
func (s *Session[T]) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Generation returns the most recently issued generation.
func (s *Session[T]) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued
}

// Flush waits until no render is in flight. Submits that race with Flush
// may or may not be waited for.
func (s *Session[T]) Flush() {
	s.mu.Lock()
	s.wait()
	s.mu.Unlock()
}

// wait blocks until running drops to zero. s.mu must be held.
func (s *Session[T]) wait() {
	for s.running > 0 {
		s.idle.Wait()
	}
}

// Close cancels the render in flight and waits for it to return.
func (s *Session[T]) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.wait()
	s.mu.Unlock()
}

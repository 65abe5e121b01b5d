package httpapi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/orchestrator"
	"github.com/goliatone/go-contractgen/pkg/preview"
)

// ErrSessionNotFound is returned for an unknown or closed session id.
var ErrSessionNotFound = errors.New("httpapi: session not found")

type previewSession = preview.Session[orchestrator.Preview]

// sessionStore keeps one live preview session per id. Renders run detached
// from the request that scheduled them.
type sessionStore struct {
	orch *orchestrator.Orchestrator

	mu       sync.Mutex
	sessions map[string]*previewSession
}

func newSessionStore(orch *orchestrator.Orchestrator) *sessionStore {
	return &sessionStore{orch: orch, sessions: make(map[string]*previewSession)}
}

func (s *sessionStore) open(ctx context.Context, templateID string, state model.State) (string, uint64, error) {
	tpl, err := s.orch.Template(ctx, orchestrator.Request{TemplateID: templateID})
	if err != nil {
		return "", 0, err
	}

	session := preview.NewSession(func(ctx context.Context, state model.State) (orchestrator.Preview, error) {
		return s.orch.Preview(ctx, orchestrator.Request{Template: &tpl, State: state})
	})
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return id, session.Submit(context.Background(), state), nil
}

func (s *sessionStore) get(id string) (*previewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return session, nil
}

func (s *sessionStore) submit(id string, state model.State) (uint64, error) {
	session, err := s.get(id)
	if err != nil {
		return 0, err
	}
	return session.Submit(context.Background(), state), nil
}

// latest waits for renders in flight and returns the newest applied preview.
func (s *sessionStore) latest(id string) (preview.Snapshot[orchestrator.Preview], error) {
	session, err := s.get(id)
	if err != nil {
		return preview.Snapshot[orchestrator.Preview]{}, err
	}
	session.Flush()
	snap, _ := session.Latest()
	return snap, nil
}

func (s *sessionStore) close(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	session.Close()
	return nil
}

func (s *sessionStore) closeAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*previewSession)
	s.mu.Unlock()
	for _, session := range sessions {
		session.Close()
	}
}

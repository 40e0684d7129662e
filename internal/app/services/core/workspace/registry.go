package workspace

import (
	"context"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"medicalcv-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry keeps the live workspaces by session id. A workspace missing from
// memory, after a restart or an idle eviction, is rebuilt from its persisted
// session.
type Registry struct {
	deps *Dependencies
	idle time.Duration
	now  func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewRegistry(deps *Dependencies, idle time.Duration) *Registry {
	return &Registry{
		deps:       deps,
		idle:       idle,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// Open creates an empty workspace under a fresh session id.
func (r *Registry) Open() *Workspace {
	w := New(utils.GenerateSessionID(), r.deps)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspaces[w.ID()] = w
	return w
}

// Get returns the workspace of sessionID, restoring it when needed. A session
// without a persisted identity is reported as not found.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Workspace, error) {
	r.mu.Lock()
	w, ok := r.workspaces[sessionID]
	r.mu.Unlock()
	if ok && w.Identity() != nil {
		w.touch(r.now())
		return w, nil
	}

	restored := New(sessionID, r.deps)
	restored.Session.Restore(ctx)
	if restored.Identity() == nil {
		return nil, exceptions.ErrSessionNotFound(sessionID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.workspaces[sessionID]; ok && existing.Identity() != nil {
		existing.touch(r.now())
		return existing, nil
	}
	restored.touch(r.now())
	r.workspaces[sessionID] = restored
	return restored, nil
}

// Close forgets the workspace. The persisted session is left to the provider.
func (r *Registry) Close(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Sweep evicts workspaces idle for longer than the idle timeout and returns
// how many were evicted.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, w := range r.workspaces {
		if w.idleSince(now) > r.idle {
			delete(r.workspaces, id)
			evicted++
		}
	}
	return evicted
}

// StartSweeper runs Sweep every interval until the returned stop func is called.
func (r *Registry) StartSweeper(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				if evicted := r.Sweep(); evicted > 0 {
					r.deps.Log.Info("workspace.Registry.Sweep evicted idle workspaces",
						zap.Int(constvars.LoggingCountKey, evicted),
					)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

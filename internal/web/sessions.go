package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/ventures/internal/portfolio"
)

// Session is one visitor's view of the portfolio. Catalog is the
// snapshot current when the session began and never changes after.
type Session struct {
	Catalog  *portfolio.Catalog
	Query    *portfolio.QueryState
	lastSeen time.Time
}

// Sessions is the registry of live viewing sessions. All access to a
// session happens under the registry lock.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*Session
	idle time.Duration
	now  func() time.Time
}

func NewSessions(idle time.Duration) *Sessions {
	return &Sessions{
		byID: make(map[string]*Session),
		idle: idle,
		now:  time.Now,
	}
}

// Do runs fn against the session for id. When id is unknown or has been
// idle too long a fresh session is started from snapshot(). It returns
// the id of the session fn ran against.
func (r *Sessions) Do(id string, snapshot func() *portfolio.Catalog, fn func(s *Session)) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s, ok := r.byID[id]
	if ok && now.Sub(s.lastSeen) > r.idle {
		delete(r.byID, id)
		ok = false
	}
	if !ok {
		id = uuid.NewString()
		s = &Session{Catalog: snapshot(), Query: portfolio.NewQueryState()}
		r.byID[id] = s
	}
	s.lastSeen = now
	fn(s)
	return id
}

// Start begins a fresh session from snapshot() and runs fn against it.
// The session named by prev, if any, is discarded. A page load starts
// over with an empty query and the catalog current at that moment.
func (r *Sessions) Start(prev string, snapshot func() *portfolio.Catalog, fn func(s *Session)) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, prev)
	id := uuid.NewString()
	s := &Session{Catalog: snapshot(), Query: portfolio.NewQueryState(), lastSeen: r.now()}
	r.byID[id] = s
	fn(s)
	return id
}

// Snapshot returns the catalog pinned by a live session without
// starting one.
func (r *Sessions) Snapshot(id string) (*portfolio.Catalog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || r.now().Sub(s.lastSeen) > r.idle {
		return nil, false
	}
	return s.Catalog, true
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Sweep drops idle sessions and returns how many were removed.
func (r *Sessions) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, s := range r.byID {
		if now.Sub(s.lastSeen) > r.idle {
			delete(r.byID, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Sessions) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

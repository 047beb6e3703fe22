package authguard

import (
	"sync"
	"time"
)

// Outcome is what the caller should do after a backend call
type Outcome int

const (
	// OutcomeNone means nothing needs to happen
	OutcomeNone Outcome = iota
	// OutcomeRetry means the caller may retry the same request
	OutcomeRetry
	// OutcomeSignOut means the session must end
	OutcomeSignOut
)

type session struct {
	failures int
	lastSeen time.Time
}

// Guard counts transient authentication failures per session. Failures are
// cumulative for the life of the session; only sign-out or the idle ttl clears
// them. It is the only shared mutable state of the service and is safe for
// concurrent use.
type Guard struct {
	mu          sync.Mutex
	sessions    map[string]*session
	maxFailures int
	ttl         time.Duration
	now         func() time.Time
}

// NewGuard creates a guard that signs a session out on its maxFailures-th
// transient 401. Idle sessions are forgotten after ttl.
func NewGuard(maxFailures int, ttl time.Duration) *Guard {
	if maxFailures < 1 {
		maxFailures = 3
	}
	return &Guard{
		sessions:    make(map[string]*session),
		maxFailures: maxFailures,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Record registers the result of one backend call for a session
func (g *Guard) Record(sessionID string, class Class) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	s, ok := g.sessions[sessionID]
	if !ok || (g.ttl > 0 && now.Sub(s.lastSeen) > g.ttl) {
		s = &session{}
		g.sessions[sessionID] = s
	}
	s.lastSeen = now

	switch class {
	case ClassNone:
		return OutcomeNone
	case ClassAuthTransient:
		s.failures++
		if s.failures >= g.maxFailures {
			delete(g.sessions, sessionID)
			return OutcomeSignOut
		}
		return OutcomeRetry
	case ClassAuthExpired:
		delete(g.sessions, sessionID)
		return OutcomeSignOut
	case ClassNetwork, ClassHTTP:
		return OutcomeRetry
	}
	return OutcomeNone
}

// Failures returns the current transient failure count of a session
func (g *Guard) Failures(sessionID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessions[sessionID]; ok {
		return s.failures
	}
	return 0
}

// Sweep drops sessions idle for longer than the ttl and returns how many went
func (g *Guard) Sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ttl <= 0 {
		return 0
	}
	now := g.now()
	removed := 0
	for id, s := range g.sessions {
		if now.Sub(s.lastSeen) > g.ttl {
			delete(g.sessions, id)
			removed++
		}
	}
	return removed
}

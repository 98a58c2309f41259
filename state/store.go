// Package state holds the most recent load result for downstream installer
// stages.
package state

import (
	"sync"

	"github.com/Strange-Account/go-modpack-loader/modpack"
)

var _ modpack.Sink = (*Store)(nil)

// Store keeps the last published plan. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	plan  *modpack.Plan
	plans map[string]*modpack.Plan
}

func NewStore() *Store {
	return &Store{plans: map[string]*modpack.Plan{}}
}

// Publish implements modpack.Sink.
func (s *Store) Publish(p *modpack.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plan = p
	s.plans[p.Source] = p
}

// Plan returns the last published plan, or nil.
func (s *Store) Plan() *modpack.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.plan
}

// Lookup returns the plan published for the modpack at source.
func (s *Store) Lookup(source string) (*modpack.Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[source]
	return p, ok
}

// Len returns the number of modpacks with a published plan.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.plans)
}

package planner

import (
	"sort"

	"github.com/samber/lo"
)

// State records which places a planning run has already scheduled. Create
// one per run; it is not safe for concurrent use.
type State struct {
	used map[string]struct{}
}

func NewState() *State {
	return &State{used: make(map[string]struct{})}
}

func (s *State) IsUsed(name string) bool {
	_, ok := s.used[name]
	return ok
}

func (s *State) MarkUsed(name string) {
	s.used[name] = struct{}{}
}

// Reset forgets every scheduled place so the state can serve a new run.
func (s *State) Reset() {
	clear(s.used)
}

func (s *State) Len() int {
	return len(s.used)
}

// Used lists the scheduled place names in sorted order.
func (s *State) Used() []string {
	names := lo.Keys(s.used)
	sort.Strings(names)
	return names
}

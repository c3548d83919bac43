package compile

import (
	"sync"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// runState tracks per-rep compilation progress for one run. It provides the
// at-most-once guarantee: a rep is claimed by exactly one chain, everyone
// else either gets the memoized result or waits.
type runState struct {
	mu       sync.Mutex
	byKey    map[string]*repState
	repOrder []*content.Rep
}

type repState struct {
	rep   *content.Rep
	owner *chain
	done  chan struct{}

	finished bool
	content  content.Content
	err      error
}

func newRunState() *runState {
	return &runState{byKey: make(map[string]*repState)}
}

func (s *runState) addRep(rep *content.Rep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := rep.Key()
	if _, exists := s.byKey[key]; exists {
		return
	}
	s.byKey[key] = &repState{rep: rep, done: make(chan struct{})}
	s.repOrder = append(s.repOrder, rep)
}

func (s *runState) reps() []*content.Rep {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*content.Rep, len(s.repOrder))
	copy(out, s.repOrder)
	return out
}

func (s *runState) repByKey(key string) (*content.Rep, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return st.rep, true
}

// claim marks rep as being compiled by ch. The second return is true when
// the caller now owns the compilation; false means the rep is finished or
// owned by another chain.
func (s *runState) claim(rep *content.Rep, ch *chain) (*repState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byKey[rep.Key()]
	if !ok {
		st = &repState{rep: rep, done: make(chan struct{})}
		s.byKey[rep.Key()] = st
		s.repOrder = append(s.repOrder, rep)
	}
	if st.finished || st.owner != nil {
		return st, false
	}
	st.owner = ch
	return st, true
}

// result is only valid after st.done is closed; the close provides the
// happens-before edge for the field reads.
func (st *repState) result() (content.Content, error) {
	return st.content, st.err
}

// finish publishes the outcome and releases waiters.
func (s *runState) finish(st *repState, c content.Content, err error) {
	s.mu.Lock()
	st.content = c
	st.err = err
	st.finished = true
	s.mu.Unlock()
	close(st.done)
}

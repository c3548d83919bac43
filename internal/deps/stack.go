package deps

import "git.home.luguber.info/inful/sitegen/internal/content"

// Stack is the ordered list of reps currently being compiled along one
// logical compilation chain. Cycle detection asks "am I my own ancestor"
// within this chain, so each chain carries its own stack; stacks are never
// shared across concurrent chains.
type Stack struct {
	reps []*content.Rep
}

// NewStack creates an empty in-progress stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push appends a rep to the active chain.
func (s *Stack) Push(rep *content.Rep) {
	s.reps = append(s.reps, rep)
}

// Pop removes the most recently pushed rep. Popping an empty stack is an
// invariant violation and panics.
func (s *Stack) Pop() {
	if len(s.reps) == 0 {
		panic("deps: pop on empty in-progress stack")
	}
	s.reps = s.reps[:len(s.reps)-1]
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	return len(s.reps)
}

// Members returns the reps on the chain in the order they were entered.
func (s *Stack) Members() []*content.Rep {
	out := make([]*content.Rep, len(s.reps))
	copy(out, s.reps)
	return out
}

// Contains reports whether rep is already on the active chain.
func (s *Stack) Contains(rep *content.Rep) bool {
	key := rep.Key()
	for _, r := range s.reps {
		if r.Key() == key {
			return true
		}
	}
	return false
}

// CycleFrom extracts the cycle that pushing rep would close: the sub-sequence
// of the stack starting at rep's first occurrence through the end, in the
// order the reps were entered. The caller reports it as a closed ring (the
// first member repeats at the end).
func (s *Stack) CycleFrom(rep *content.Rep) []string {
	key := rep.Key()
	for i, r := range s.reps {
		if r.Key() == key {
			ring := make([]string, 0, len(s.reps)-i)
			for _, member := range s.reps[i:] {
				ring = append(ring, member.String())
			}
			return ring
		}
	}
	// rep not on the stack: no cycle.
	return nil
}

// Package deps tracks the directed dependency graph discovered during a
// compilation run: an edge consumer → producer is recorded whenever a
// consumer's filter reads a producer's compiled content. The graph must stay
// acyclic for a run to succeed.
package deps

import (
	"sort"
	"sync"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// Tracker accumulates dependency edges for one compilation run. Safe for
// concurrent use; graph mutation is serialized under a single writer lock.
type Tracker struct {
	mu        sync.RWMutex
	producers map[string]map[string]bool // consumer key -> producer keys
	consumers map[string]map[string]bool // producer key -> consumer keys
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		producers: make(map[string]map[string]bool),
		consumers: make(map[string]map[string]bool),
	}
}

// Record registers that consumer read producer's compiled content.
func (t *Tracker) Record(consumer, producer *content.Rep) {
	c, p := consumer.Key(), producer.Key()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.producers[c] == nil {
		t.producers[c] = make(map[string]bool)
	}
	t.producers[c][p] = true

	if t.consumers[p] == nil {
		t.consumers[p] = make(map[string]bool)
	}
	t.consumers[p][c] = true
}

// DependenciesOf returns the sorted producer keys recorded for a consumer.
func (t *Tracker) DependenciesOf(rep *content.Rep) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sortedKeys(t.producers[rep.Key()])
}

// DependentsOf returns the sorted consumer keys recorded for a producer.
func (t *Tracker) DependentsOf(rep *content.Rep) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sortedKeys(t.consumers[rep.Key()])
}

// EdgeCount returns the number of recorded edges.
func (t *Tracker) EdgeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, ps := range t.producers {
		n += len(ps)
	}
	return n
}

// WouldCycle reports whether adding the edge consumer → producer would close
// a loop in the recorded graph, i.e. whether consumer is already reachable
// from producer.
func (t *Tracker) WouldCycle(consumer, producer *content.Rep) bool {
	c, p := consumer.Key(), producer.Key()
	if c == p {
		return true
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	visited := make(map[string]bool)
	stack := []string{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == c {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for next := range t.producers[cur] {
			stack = append(stack, next)
		}
	}
	return false
}

// PathBetween returns one dependency path from one rep key to another along
// recorded edges, both endpoints included, or nil if none exists.
func (t *Tracker) PathBetween(from, to string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if from == to {
		return []string{from}
	}
	visited := map[string]bool{from: true}
	parent := make(map[string]string)
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range t.producers[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			if next == to {
				path := []string{to}
				for p := cur; ; p = parent[p] {
					path = append([]string{p}, path...)
					if p == from {
						return path
					}
				}
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

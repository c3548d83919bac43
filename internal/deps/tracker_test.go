package deps

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndLookup(t *testing.T) {
	tr := NewTracker()
	a, b, c := rep("/a"), rep("/b"), rep("/c")

	tr.Record(a, b)
	tr.Record(a, c)
	tr.Record(b, c)
	tr.Record(a, b) // duplicate edge

	assert.Equal(t, []string{"/b#default", "/c#default"}, tr.DependenciesOf(a))
	assert.Equal(t, []string{"/a#default", "/b#default"}, tr.DependentsOf(c))
	assert.Nil(t, tr.DependenciesOf(c))
	assert.Equal(t, 3, tr.EdgeCount())
}

func TestWouldCycle(t *testing.T) {
	tr := NewTracker()
	a, b, c := rep("/a"), rep("/b"), rep("/c")

	tr.Record(a, b)
	tr.Record(b, c)

	assert.True(t, tr.WouldCycle(c, a), "c -> a closes a loop through b")
	assert.True(t, tr.WouldCycle(b, a))
	assert.False(t, tr.WouldCycle(a, c), "a -> c is just a shortcut edge")
	assert.True(t, tr.WouldCycle(a, a), "self edge is always a cycle")
}

func TestPathBetween(t *testing.T) {
	tr := NewTracker()
	a, b, c := rep("/a"), rep("/b"), rep("/c")

	tr.Record(a, b)
	tr.Record(b, c)

	assert.Equal(t,
		[]string{"/a#default", "/b#default", "/c#default"},
		tr.PathBetween("/a#default", "/c#default"))
	assert.Equal(t, []string{"/a#default"}, tr.PathBetween("/a#default", "/a#default"))
	assert.Nil(t, tr.PathBetween("/c#default", "/a#default"), "edges are directed")
}

func TestConcurrentRecord(t *testing.T) {
	tr := NewTracker()
	consumer := rep("/consumer")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Record(consumer, rep("/producer"))
				tr.DependenciesOf(consumer)
				tr.EdgeCount()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"/producer#default"}, tr.DependenciesOf(consumer))
	assert.Equal(t, 1, tr.EdgeCount())
}

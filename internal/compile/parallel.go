package compile

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/deps"
)

// compileAllParallel compiles independent reps on concurrent chains. Every
// chain is still a sequential depth-first traversal; the at-most-once
// guarantee comes from runState.claim, and a chain that needs a rep owned by
// another chain waits on it. The first failure wins; remaining queued reps
// are skipped.
func (e *Engine) compileAllParallel(ctx context.Context, reps []*content.Rep) error {
	workers := e.parallel
	if workers > len(reps) {
		workers = len(reps)
	}

	jobs := make(chan *content.Rep)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := range jobs {
				mu.Lock()
				failed := firstErr != nil
				mu.Unlock()
				if failed {
					continue
				}
				ch := &chain{engine: e, stack: deps.NewStack()}
				if _, err := e.compileRep(ctx, ch, rep); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	for _, rep := range reps {
		jobs <- rep
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return firstErr
}

// crossChainRing detects the parallel analogue of same-chain re-entry:
// waiting on producer would deadlock when producer already (transitively)
// depends on a rep our own chain is compiling. The ring is reconstructed
// from the recorded graph path back to our stack member.
func (e *Engine) crossChainRing(ch *chain, producer *content.Rep) []string {
	for _, member := range ch.stack.Members() {
		path := e.tracker.PathBetween(producer.Key(), member.Key())
		if path == nil {
			continue
		}
		ring := ch.stack.CycleFrom(member)
		for _, key := range path[:len(path)-1] {
			if rep, ok := e.state.repByKey(key); ok {
				ring = append(ring, rep.String())
			}
		}
		return ring
	}
	return nil
}

// Package compile implements the compilation engine: it drives every item
// representation through its matching rule's filter sequence, memoizes
// results, tracks dependencies discovered along the way, and fails the run
// on the first violated precondition.
package compile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/deps"
	"git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/filters"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/observability"
	"git.home.luguber.info/inful/sitegen/internal/rules"
)

// Engine compiles a loaded site. Items, layouts, and rules are immutable
// after construction and shared freely across compilation chains; per-rep
// state is guarded so every rep compiles at most once per run.
type Engine struct {
	items     []*content.Item
	itemsByID map[string]*content.Item
	layouts   map[string]*content.Layout
	rules     *rules.Set
	filters   *filters.Registry
	tracker   *deps.Tracker
	recorder  metrics.Recorder
	parallel  int
	runID     string

	state *runState
}

// Option configures engine behavior.
type Option func(*Engine)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithParallelism sets the number of concurrent compilation chains used by
// CompileAll. Values below 2 keep the default sequential traversal.
func WithParallelism(n int) Option {
	return func(e *Engine) { e.parallel = n }
}

// NewEngine validates the loaded site and prepares the per-run state.
func NewEngine(items []*content.Item, layouts []*content.Layout, ruleSet *rules.Set, registry *filters.Registry, opts ...Option) (*Engine, error) {
	if ruleSet.Empty() {
		return nil, errors.NoRulesFileFound()
	}
	if registry == nil {
		registry = filters.DefaultRegistry()
	}

	e := &Engine{
		items:     items,
		itemsByID: make(map[string]*content.Item, len(items)),
		layouts:   make(map[string]*content.Layout, len(layouts)),
		rules:     ruleSet,
		filters:   registry,
		tracker:   deps.NewTracker(),
		recorder:  metrics.NoopRecorder{},
		runID:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, item := range items {
		if _, dup := e.itemsByID[item.Identifier]; dup {
			return nil, errors.Internalf("duplicate item identifier %q", item.Identifier)
		}
		e.itemsByID[item.Identifier] = item
	}
	for _, layout := range layouts {
		if _, dup := e.layouts[layout.Identifier]; dup {
			return nil, errors.Internalf("duplicate layout identifier %q", layout.Identifier)
		}
		e.layouts[layout.Identifier] = layout
	}

	e.state = newRunState()
	for _, item := range items {
		for _, repName := range ruleSet.RepNamesFor(item) {
			e.state.addRep(content.NewRep(item, repName))
		}
	}
	return e, nil
}

// RunID returns the unique identifier of this compilation run.
func (e *Engine) RunID() string { return e.runID }

// Tracker exposes the dependency graph accumulated so far.
func (e *Engine) Tracker() *deps.Tracker { return e.tracker }

// Reps returns all representations of the run in deterministic order.
func (e *Engine) Reps() []*content.Rep { return e.state.reps() }

// Item returns the loaded item with the given identifier.
func (e *Engine) Item(identifier string) (*content.Item, bool) {
	item, ok := e.itemsByID[identifier]
	return item, ok
}

// CompileRep compiles one representation (and, re-entrantly, anything it
// depends on) and returns its final content. Results are memoized; a second
// call never recomputes.
func (e *Engine) CompileRep(ctx context.Context, rep *content.Rep) (content.Content, error) {
	ch := &chain{engine: e, stack: deps.NewStack()}
	return e.compileRep(ctx, ch, rep)
}

// CompileAll compiles every representation exactly once and returns the
// final content keyed by rep key. The first failure aborts the run with a
// single terminal error.
func (e *Engine) CompileAll(ctx context.Context) (map[string]content.Content, error) {
	ctx = observability.WithRunID(ctx, e.runID)
	start := time.Now()
	reps := e.state.reps()

	observability.InfoContext(ctx, "starting compilation run",
		slog.Int("items", len(e.items)),
		slog.Int("reps", len(reps)),
		slog.Int("layouts", len(e.layouts)))

	var err error
	if e.parallel > 1 {
		err = e.compileAllParallel(ctx, reps)
	} else {
		err = e.compileAllSequential(ctx, reps)
	}

	e.recorder.RunCompleted(len(reps), time.Since(start), err != nil)
	if err != nil {
		observability.ErrorContext(ctx, "compilation run failed", slog.Any("error", err))
		return nil, err
	}

	result := make(map[string]content.Content, len(reps))
	for _, rep := range reps {
		c, ok := rep.CompiledContent()
		if !ok {
			return nil, errors.Internalf("rep %s finished without compiled content", rep)
		}
		result[rep.Key()] = c
	}
	observability.InfoContext(ctx, "compilation run finished",
		slog.Int("reps", len(reps)),
		slog.Int("dependency_edges", e.tracker.EdgeCount()),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (e *Engine) compileAllSequential(ctx context.Context, reps []*content.Rep) error {
	for _, rep := range reps {
		ch := &chain{engine: e, stack: deps.NewStack()}
		if _, err := e.compileRep(ctx, ch, rep); err != nil {
			return err
		}
	}
	return nil
}

// compileRep is the memoized entry point shared by all chains.
func (e *Engine) compileRep(ctx context.Context, ch *chain, rep *content.Rep) (content.Content, error) {
	// Re-entry within the same chain closes a dependency loop; extract the
	// ring before touching any state.
	if ch.stack.Contains(rep) {
		e.recorder.CycleDetected()
		return content.Content{}, errors.DependencyCycle(ch.stack.CycleFrom(rep))
	}

	st, claimed := e.state.claim(rep, ch)
	if !claimed {
		select {
		case <-st.done:
			c, err := st.result()
			if err != nil {
				return content.Content{}, err
			}
			e.recorder.RepMemoized()
			return c, nil
		default:
		}
		// Another chain is compiling this rep: wait for it. If the
		// producer transitively depends on anything on our own stack, the
		// wait would never end; that is a cross-chain cycle.
		if ring := e.crossChainRing(ch, rep); ring != nil {
			e.recorder.CycleDetected()
			return content.Content{}, errors.DependencyCycle(ring)
		}
		select {
		case <-st.done:
			c, err := st.result()
			if err != nil {
				return content.Content{}, err
			}
			e.recorder.RepMemoized()
			return c, nil
		case <-ctx.Done():
			return content.Content{}, ctx.Err()
		}
	}

	out, err := e.doCompile(ctx, ch, rep)
	e.state.finish(st, out, err)
	return out, err
}

// doCompile runs the rep's rule step sequence. The in-progress stack is
// popped on every path so sibling diagnostics stay accurate after failures.
func (e *Engine) doCompile(ctx context.Context, ch *chain, rep *content.Rep) (content.Content, error) {
	ctx = observability.WithItem(ctx, rep.Item.Identifier)
	ctx = observability.WithRep(ctx, rep.Name)

	ch.stack.Push(rep)
	defer ch.stack.Pop()

	start := time.Now()
	observability.DebugContext(ctx, "compiling rep", slog.Int("depth", ch.stack.Len()))

	rule, err := e.rules.CompilationRuleFor(rep)
	if err != nil {
		return content.Content{}, errors.Compilation(rep.String(), err)
	}

	cur, ok := rep.Snapshot(content.SnapshotRaw)
	if !ok {
		return content.Content{}, errors.Internalf("rep %s has no raw snapshot", rep)
	}
	rep.SetSnapshot(content.SnapshotPre, cur)

	for _, step := range rule.Steps {
		switch step.Kind {
		case rules.StepFilter:
			cur, err = e.applyFilter(ctx, ch, rep, cur, step.FilterName, step.FilterArgs)
		case rules.StepLayout:
			cur, err = e.applyLayout(ctx, ch, rep, cur, step.LayoutIdentifier)
		case rules.StepSnapshot:
			rep.SetSnapshot(step.SnapshotName, cur)
		default:
			err = errors.Internalf("unknown rule step kind %q", step.Kind)
		}
		if err != nil {
			return content.Content{}, errors.Compilation(rep.String(), err)
		}
	}

	rep.MarkFinished(cur)
	e.recorder.RepCompiled(time.Since(start))
	observability.DebugContext(ctx, "rep compiled",
		slog.Duration("elapsed", time.Since(start)))
	return cur, nil
}

func (e *Engine) applyFilter(ctx context.Context, ch *chain, rep *content.Rep, cur content.Content, name string, args rules.Args) (content.Content, error) {
	f, err := e.filters.Get(name)
	if err != nil {
		return content.Content{}, err
	}
	if err := checkFilterKind(f, cur, rep); err != nil {
		return content.Content{}, err
	}

	req := filters.Request{
		Item:     rep.Item,
		RepName:  rep.Name,
		Args:     toFilterArgs(args),
		Services: &chainServices{engine: e, chain: ch, consumer: rep},
	}

	start := time.Now()
	out, err := f.Apply(ctx, cur, req)
	e.recorder.FilterApplied(name, time.Since(start))
	if err != nil {
		return content.Content{}, err
	}
	if out.Kind() != f.Produces() {
		return content.Content{}, errors.Internalf(
			"filter %q declared %s output but produced %s", name, f.Produces(), out.Kind())
	}
	return out, nil
}

// applyLayout wraps the rep's current content in a layout. The layout's
// filter comes from the layout rules; zero or multiple matches fail there.
func (e *Engine) applyLayout(ctx context.Context, ch *chain, rep *content.Rep, cur content.Content, layoutIdentifier string) (content.Content, error) {
	if rep.Binary() {
		return content.Content{}, errors.CannotLayoutBinaryItem(rep.String())
	}

	layout, ok := e.layouts[layoutIdentifier]
	if !ok {
		return content.Content{}, errors.UnknownLayout(layoutIdentifier)
	}

	binding, err := e.rules.LayoutFilterFor(layout)
	if err != nil {
		return content.Content{}, err
	}
	f, err := e.filters.Get(binding.FilterName)
	if err != nil {
		return content.Content{}, err
	}
	if f.Accepts() != content.KindTextual {
		return content.Content{}, errors.CannotUseBinaryFilter(binding.FilterName, rep.String())
	}

	req := filters.Request{
		Item:     rep.Item,
		RepName:  rep.Name,
		Args:     toFilterArgs(binding.FilterArgs),
		Inner:    cur,
		Services: &chainServices{engine: e, chain: ch, consumer: rep},
	}

	start := time.Now()
	out, err := f.Apply(ctx, layout.Content, req)
	e.recorder.FilterApplied(binding.FilterName, time.Since(start))
	if err != nil {
		return content.Content{}, err
	}
	return out, nil
}

func checkFilterKind(f filters.Filter, cur content.Content, rep *content.Rep) error {
	switch f.Accepts() {
	case content.KindTextual:
		if cur.IsBinary() {
			return errors.CannotUseTextualFilter(f.Name(), rep.String())
		}
	case content.KindBinary:
		if !cur.IsBinary() {
			return errors.CannotUseBinaryFilter(f.Name(), rep.String())
		}
	}
	return nil
}

func toFilterArgs(args rules.Args) filters.Args {
	if args == nil {
		return nil
	}
	out := make(filters.Args, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}

// chain is one logical depth-first compilation path. Cycle detection depends
// on "am I my own ancestor" within a single chain, so the stack is never
// shared.
type chain struct {
	engine *Engine
	stack  *deps.Stack
}

// chainServices exposes compiler capabilities to filters for one rep.
type chainServices struct {
	engine   *Engine
	chain    *chain
	consumer *content.Rep
}

// CompiledContentOf records the dependency edge first, then re-enters the
// engine synchronously for the producer's default rep.
func (s *chainServices) CompiledContentOf(ctx context.Context, identifier string) (content.Content, error) {
	item, ok := s.engine.itemsByID[identifier]
	if !ok {
		return content.Content{}, errors.UnknownItem(identifier)
	}
	producer, ok := s.engine.state.repByKey(item.Identifier + "#" + content.DefaultRepName)
	if !ok {
		return content.Content{}, errors.Internalf("item %q has no default rep", identifier)
	}

	s.engine.tracker.Record(s.consumer, producer)
	s.engine.recorder.DependencyRecorded()
	return s.engine.compileRep(ctx, s.chain, producer)
}

func (s *chainServices) ItemMetadata(identifier string) (content.Metadata, bool) {
	item, ok := s.engine.itemsByID[identifier]
	if !ok {
		return nil, false
	}
	return item.Metadata, true
}

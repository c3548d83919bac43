package compile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/incremental"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/observability"
)

// Writer materializes routed compiled content under an output directory.
// With an incremental store attached, outputs whose content hash matches the
// previous run are not rewritten.
type Writer struct {
	outputDir string
	store     *incremental.Store
	recorder  metrics.Recorder
}

// NewWriter creates a writer rooted at outputDir. store may be nil.
func NewWriter(outputDir string, store *incremental.Store, recorder metrics.Recorder) *Writer {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Writer{outputDir: outputDir, store: store, recorder: recorder}
}

// Write places compiled content at the given site-absolute route.
func (w *Writer) Write(ctx context.Context, route string, c content.Content) error {
	data := c.Bytes()
	hash := incremental.HashContent(data)

	if w.store != nil {
		unchanged, err := w.store.Unchanged(ctx, route, hash)
		if err != nil {
			return err
		}
		if unchanged {
			w.recorder.OutputWritten(0, true)
			observability.DebugContext(ctx, "output unchanged, skipping write",
				slog.String("route", route))
			return nil
		}
	}

	rel := filepath.FromSlash(strings.TrimPrefix(route, "/"))
	path := filepath.Join(w.outputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.KindInternal, "create output directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.KindInternal, "write output file")
	}

	if w.store != nil {
		if err := w.store.Remember(ctx, route, hash); err != nil {
			return err
		}
	}
	w.recorder.OutputWritten(len(data), false)
	observability.DebugContext(ctx, "output written",
		slog.String("route", route), slog.Int("bytes", len(data)))
	return nil
}

// WriteSite compiles everything and writes all routed outputs. It is the
// one-call entry point the CLI uses.
func (e *Engine) WriteSite(ctx context.Context, w *Writer) error {
	compiled, err := e.CompileAll(ctx)
	if err != nil {
		return err
	}
	for _, rep := range e.state.reps() {
		route, err := e.RouteOf(rep)
		if err != nil {
			return err
		}
		if route == "" {
			continue
		}
		if err := w.Write(ctx, route, compiled[rep.Key()]); err != nil {
			return err
		}
	}
	return nil
}

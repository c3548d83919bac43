package datasource

import (
	"context"
	"sync"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
)

// Git loads items and layouts from a git repository by cloning it into an
// in-memory filesystem and delegating to the filesystem adapter.
type Git struct {
	url        string
	ref        string
	contentDir string
	layoutsDir string

	once  sync.Once
	inner *Filesystem
	err   error
}

// NewGit creates a git-backed data source. ref may be empty to use the
// remote default branch.
func NewGit(url, ref, contentDir, layoutsDir string) *Git {
	return &Git{url: url, ref: ref, contentDir: contentDir, layoutsDir: layoutsDir}
}

// NewGitFromOptions builds the adapter from config options.
func NewGitFromOptions(opts Options) (DataSource, error) {
	url, ok := opts.String("url")
	if !ok {
		return nil, errors.Internal("git data source requires a \"url\" option")
	}
	ref, _ := opts.String("ref")
	contentDir, ok := opts.String("content_dir")
	if !ok {
		contentDir = "content"
	}
	layoutsDir, ok := opts.String("layouts_dir")
	if !ok {
		layoutsDir = "layouts"
	}
	return NewGit(url, ref, contentDir, layoutsDir), nil
}

func (g *Git) Name() string { return "git" }

// load clones once per adapter lifetime; items and layouts share the clone.
func (g *Git) load(ctx context.Context) (*Filesystem, error) {
	g.once.Do(func() {
		fs := memfs.New()
		opts := &gogit.CloneOptions{
			URL:          g.url,
			Depth:        1,
			SingleBranch: true,
		}
		if g.ref != "" {
			opts.ReferenceName = plumbing.NewBranchReferenceName(g.ref)
		}
		if _, err := gogit.CloneContext(ctx, memory.NewStorage(), fs, opts); err != nil {
			g.err = errors.Wrap(err, errors.KindInternal, "clone git data source").
				WithContext("url", g.url)
			return
		}
		g.inner = newBillyFilesystem(fs, g.contentDir, g.layoutsDir)
	})
	return g.inner, g.err
}

func (g *Git) Items(ctx context.Context) ([]*content.Item, error) {
	inner, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Items(ctx)
}

func (g *Git) Layouts(ctx context.Context) ([]*content.Layout, error) {
	inner, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Layouts(ctx)
}

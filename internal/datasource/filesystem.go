package datasource

import (
	"bytes"
	"context"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/filters"
)

const metaSuffix = ".meta.yaml"

// Filesystem loads items and layouts from directories on a billy filesystem.
// Textual files may carry YAML frontmatter (lifted into item metadata) or a
// sidecar "<name>.meta.yaml" file; a file with more than one sidecar
// candidate is an ambiguous association and fails loudly.
type Filesystem struct {
	fs         billy.Filesystem
	contentDir string
	layoutsDir string
}

// NewFilesystem creates an adapter over the OS filesystem rooted at root.
func NewFilesystem(root, contentDir, layoutsDir string) *Filesystem {
	return &Filesystem{fs: osfs.New(root), contentDir: contentDir, layoutsDir: layoutsDir}
}

// newBillyFilesystem wraps an existing billy filesystem (used by the git
// adapter).
func newBillyFilesystem(fs billy.Filesystem, contentDir, layoutsDir string) *Filesystem {
	return &Filesystem{fs: fs, contentDir: contentDir, layoutsDir: layoutsDir}
}

// NewFilesystemFromOptions builds the adapter from config options.
func NewFilesystemFromOptions(opts Options) (DataSource, error) {
	root, ok := opts.String("root")
	if !ok {
		root = "."
	}
	contentDir, ok := opts.String("content_dir")
	if !ok {
		contentDir = "content"
	}
	layoutsDir, ok := opts.String("layouts_dir")
	if !ok {
		layoutsDir = "layouts"
	}
	return NewFilesystem(root, contentDir, layoutsDir), nil
}

func (f *Filesystem) Name() string { return "filesystem" }

// Items walks the content directory. Sidecar metadata files are consumed as
// metadata for their content file, never as items themselves.
func (f *Filesystem) Items(ctx context.Context) ([]*content.Item, error) {
	paths, err := f.walk(f.contentDir)
	if err != nil {
		return nil, err
	}

	fileSet := make(map[string]bool, len(paths))
	for _, p := range paths {
		fileSet[p] = true
	}

	var items []*content.Item
	for _, p := range paths {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if strings.HasSuffix(p, metaSuffix) {
			continue
		}

		data, err := util.ReadFile(f.fs, p)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "read content file").
				WithContext("path", p)
		}

		meta, err := f.metadataFor(p, fileSet)
		if err != nil {
			return nil, err
		}

		identifier := f.identifierFor(f.contentDir, p)
		if isTextual(p, data) {
			body, fm, err := filters.SplitFrontmatter(string(data))
			if err != nil {
				return nil, errors.Wrap(err, errors.KindInternal, "parse frontmatter").
					WithContext("path", p)
			}
			items = append(items, content.NewTextualItem(identifier, body, mergeMetadata(fm, meta)))
		} else {
			items = append(items, content.NewBinaryItem(identifier, data, meta))
		}
	}
	return items, nil
}

// Layouts walks the layouts directory; every file is a textual layout.
func (f *Filesystem) Layouts(ctx context.Context) ([]*content.Layout, error) {
	paths, err := f.walk(f.layoutsDir)
	if err != nil {
		return nil, err
	}

	var layouts []*content.Layout
	for _, p := range paths {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data, err := util.ReadFile(f.fs, p)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "read layout file").
				WithContext("path", p)
		}
		layouts = append(layouts, content.NewLayout(f.identifierFor(f.layoutsDir, p), string(data)))
	}
	return layouts, nil
}

// metadataFor loads sidecar metadata. Candidates are "<file>.meta.yaml" and
// "<file minus extension>.meta.yaml"; both existing for one file is an
// ambiguous association.
func (f *Filesystem) metadataFor(p string, fileSet map[string]bool) (content.Metadata, error) {
	full := p + metaSuffix
	bare := strings.TrimSuffix(p, path.Ext(p)) + metaSuffix

	var candidates []string
	if fileSet[full] {
		candidates = append(candidates, full)
	}
	if bare != full && fileSet[bare] {
		candidates = append(candidates, bare)
	}

	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		data, err := util.ReadFile(f.fs, candidates[0])
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "read metadata file").
				WithContext("path", candidates[0])
		}
		meta := make(content.Metadata)
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "parse metadata file").
				WithContext("path", candidates[0])
		}
		return meta, nil
	default:
		return nil, errors.AmbiguousMetadataAssociation(p, candidates)
	}
}

// walk returns all regular file paths under dir, sorted for determinism. A
// missing directory yields no files.
func (f *Filesystem) walk(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := f.fs.Stat(dir); err != nil {
		return nil, nil
	}

	var paths []string
	var visit func(string) error
	visit = func(cur string) error {
		entries, err := f.fs.ReadDir(cur)
		if err != nil {
			return errors.Wrap(err, errors.KindInternal, "read directory").
				WithContext("path", cur)
		}
		for _, entry := range entries {
			p := f.fs.Join(cur, entry.Name())
			if entry.IsDir() {
				if err := visit(p); err != nil {
					return err
				}
				continue
			}
			paths = append(paths, p)
		}
		return nil
	}
	if err := visit(dir); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// identifierFor maps a file path under base to a site identifier, e.g.
// "content/articles/intro.md" → "/articles/intro.md".
func (f *Filesystem) identifierFor(base, p string) string {
	rel := strings.TrimPrefix(p, base)
	rel = strings.TrimPrefix(rel, "/")
	return "/" + path.Clean(strings.ReplaceAll(rel, "\\", "/"))
}

var textualExtensions = map[string]bool{
	".md": true, ".markdown": true, ".txt": true, ".html": true, ".htm": true,
	".css": true, ".js": true, ".xml": true, ".yaml": true, ".yml": true,
	".json": true, ".svg": true, ".tmpl": true, ".csv": true,
}

// isTextual decides the content kind: known textual extensions first, then a
// null-byte and UTF-8 sniff.
func isTextual(p string, data []byte) bool {
	if textualExtensions[strings.ToLower(path.Ext(p))] {
		return true
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}

func mergeMetadata(frontmatter map[string]any, sidecar content.Metadata) content.Metadata {
	if frontmatter == nil && sidecar == nil {
		return nil
	}
	merged := make(content.Metadata, len(frontmatter)+len(sidecar))
	for k, v := range sidecar {
		merged[k] = v
	}
	// Frontmatter wins over sidecar values on key collision.
	for k, v := range frontmatter {
		merged[k] = v
	}
	return merged
}

// Package modpack turns a modpack archive into an installation plan.
//
// A modpack carries a master definition at its root, one install document per
// mod under the mods segment, auxiliary files under the content segment and
// patch files under the patches prefix. Loading is a single sequential pass
// over the archive listing; the archive is closed before Load returns.
package modpack

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gobwas/glob"
	log "github.com/sirupsen/logrus"

	"github.com/Strange-Account/go-modpack-loader/archive"
	"github.com/Strange-Account/go-modpack-loader/packagetypes"
)

// Loader builds installation plans from modpack archives.
type Loader struct {
	opener archive.Opener
	conv   Conventions
	log    log.FieldLogger
	sink   Sink
	ignore []glob.Glob
}

type Option func(*Loader)

// WithConventions overrides the reserved entry paths. Empty fields keep their
// defaults.
func WithConventions(c Conventions) Option {
	return func(l *Loader) {
		l.conv = c.Merge(DefaultConventions())
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(l *Loader) {
		l.log = logger
	}
}

// WithSink publishes every successfully loaded, non-empty plan to s.
func WithSink(s Sink) Option {
	return func(l *Loader) {
		l.sink = s
	}
}

// WithIgnoreContent skips content entries whose path or file name matches one
// of globs.
func WithIgnoreContent(globs ...glob.Glob) Option {
	return func(l *Loader) {
		l.ignore = append(l.ignore, globs...)
	}
}

// CompileIgnore compiles content ignore patterns. "*" does not cross "/".
func CompileIgnore(patterns []string) ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func NewLoader(opener archive.Opener, opts ...Option) *Loader {
	l := &Loader{
		opener: opener,
		conv:   DefaultConventions(),
		log:    log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load opens the modpack at path and builds its plan. A modpack without a
// manifest yields an empty plan and no error.
func (l *Loader) Load(ctx context.Context, path string) (plan *Plan, err error) {
	logger := l.log.WithField("modpack", path)

	h, err := l.opener.Open(path)
	if err != nil {
		return nil, &ArchiveOpenError{Path: path, Err: err}
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			logger.Errorf("Closing modpack: %v", cerr)
			if err == nil {
				plan, err = nil, &ArchiveOpenError{Path: path, Err: cerr}
			}
		}
		// Published only once the archive is closed and nothing failed.
		if err == nil && !plan.Empty() && l.sink != nil {
			l.sink.Publish(plan)
		}
	}()

	var files []archive.Entry
	for _, e := range h.Entries() {
		if !e.IsFolder() {
			files = append(files, e)
		}
	}
	logger.Debugf("Modpack lists %d files", len(files))

	manifest := l.findManifest(files)
	if manifest == nil {
		logger.Warnf("No %s found, nothing to install", l.conv.ManifestFile)
		return &Plan{}, nil
	}

	def, err := l.loadDefinition(ctx, path, manifest)
	if err != nil {
		return nil, err
	}

	mods, err := l.loadMods(ctx, path, files)
	if err != nil {
		return nil, err
	}
	logger.Infof("Loaded %d mods", len(mods))

	content, err := l.extractContent(ctx, path, files)
	if err != nil {
		return nil, err
	}
	logger.Infof("Loaded %d content files", len(content))

	patches := l.indexPatches(logger, files)
	logger.Infof("Indexed %d patches", len(patches))

	archives, err := buildArchives(def, manifest.Path(), mods, patches)
	if err != nil {
		return nil, err
	}
	logger.Infof("Planned %d archives", len(archives))

	return &Plan{
		Source:     path,
		Definition: def,
		Mods:       mods,
		Content:    content,
		Archives:   archives,
	}, nil
}

func (l *Loader) findManifest(files []archive.Entry) archive.Entry {
	for _, e := range files {
		if l.conv.IsManifest(e.Path()) {
			return e
		}
	}
	return nil
}

func (l *Loader) loadDefinition(ctx context.Context, path string, e archive.Entry) (*packagetypes.MasterDefinition, error) {
	data, err := readEntry(ctx, path, e)
	if err != nil {
		return nil, err
	}

	def, err := packagetypes.DecodeDefinition(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: e.Path(), Kind: KindManifest, Err: err}
	}

	return def, nil
}

// loadMods decodes every mod descriptor in listing order. One bad descriptor
// fails the whole load.
func (l *Loader) loadMods(ctx context.Context, path string, files []archive.Entry) ([]*packagetypes.Mod, error) {
	var mods []*packagetypes.Mod
	for _, e := range files {
		if !l.conv.IsModDescriptor(e.Path()) {
			continue
		}

		data, err := readEntry(ctx, path, e)
		if err != nil {
			return nil, err
		}

		mod, err := packagetypes.DecodeMod(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Path: e.Path(), Kind: KindModDescriptor, Err: err}
		}
		mod.Source = e.Path()

		l.log.WithField("modpack", path).Debugf("Loaded mod %q from %s", mod.Name, e.Path())
		mods = append(mods, mod)
	}

	return mods, nil
}

func (l *Loader) extractContent(ctx context.Context, path string, files []archive.Entry) ([]ContentBlob, error) {
	var content []ContentBlob
	for _, e := range files {
		if !l.conv.IsContent(e.Path()) {
			continue
		}

		name := archive.Base(e.Path())
		if l.ignored(e.Path(), name) {
			l.log.WithField("modpack", path).Infof("Skipping content file: %s", e.Path())
			continue
		}

		data, err := readEntry(ctx, path, e)
		if err != nil {
			return nil, err
		}
		content = append(content, ContentBlob{Name: name, Path: e.Path(), Data: data})
	}

	return content, nil
}

func (l *Loader) ignored(path, name string) bool {
	for _, g := range l.ignore {
		if g.Match(path) || g.Match(name) {
			return true
		}
	}
	return false
}

// indexPatches maps patch file names to their entries. On a name collision the
// later entry wins.
func (l *Loader) indexPatches(logger log.FieldLogger, files []archive.Entry) PatchIndex {
	patches := PatchIndex{}
	for _, e := range files {
		if !l.conv.IsPatch(e.Path()) {
			continue
		}

		name := archive.Base(e.Path())
		if prev, ok := patches[name]; ok {
			logger.Warnf("Patch %s at %s replaces %s", name, e.Path(), prev.Path)
		}
		patches[name] = PatchRef{Name: name, Path: e.Path(), Size: e.Size()}
	}

	return patches
}

// maxPrealloc caps how much of an entry's declared size is allocated up front.
const maxPrealloc = 64 << 20

func readEntry(ctx context.Context, path string, e archive.Entry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load modpack %s: %w", path, err)
	}

	var buf bytes.Buffer
	if size := e.Size(); size > 0 && size <= maxPrealloc {
		buf.Grow(int(size))
	}
	if err := e.ExtractTo(&buf); err != nil {
		return nil, &ArchiveOpenError{Path: path, Err: fmt.Errorf("entry %s: %w", e.Path(), err)}
	}

	return buf.Bytes(), nil
}

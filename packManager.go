package main

import (
	"context"
	"fmt"

	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"

	"github.com/Strange-Account/go-modpack-loader/archive"
	"github.com/Strange-Account/go-modpack-loader/config"
	"github.com/Strange-Account/go-modpack-loader/modpack"
	"github.com/Strange-Account/go-modpack-loader/state"
)

type packManager struct {
	loader    *modpack.Loader
	store     *state.Store
	jobs      int
	reportDir string
}

type loadResult struct {
	path string
	plan *modpack.Plan
	err  error
}

func NewPackManager(c *config.ConfigFile, opener archive.Opener, store *state.Store) (*packManager, error) {
	globs, err := modpack.CompileIgnore(c.Load.IgnoreContent)
	if err != nil {
		return nil, err
	}

	loader := modpack.NewLoader(opener,
		modpack.WithConventions(c.Conventions),
		modpack.WithLogger(log.StandardLogger()),
		modpack.WithSink(store),
		modpack.WithIgnoreContent(globs...),
	)

	return &packManager{
		loader:    loader,
		store:     store,
		jobs:      c.Load.Jobs,
		reportDir: c.Report.Dir,
	}, nil
}

// loadAll loads every modpack, at most m.jobs at a time. Each modpack is
// loaded independently; the returned error reports how many failed.
func (m *packManager) loadAll(ctx context.Context, paths []string) ([]loadResult, error) {
	results := make([]loadResult, len(paths))

	swg := sizedwaitgroup.New(m.jobs)
	for i, path := range paths {
		if err := swg.AddWithContext(ctx); err != nil {
			results[i] = loadResult{path: path, err: err}
			continue
		}

		log.Infof("(%d/%d) Loading modpack %s", i+1, len(paths), path)
		go func(i int, path string) {
			defer swg.Done()

			plan, err := m.loader.Load(ctx, path)
			results[i] = loadResult{path: path, plan: plan, err: err}
		}(i, path)
	}
	swg.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			log.Errorf("Loading %s failed: %v", r.path, r.err)
			continue
		}
		m.summarize(r)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d modpacks failed to load", failed, len(paths))
	}
	return results, nil
}

func (m *packManager) summarize(r loadResult) {
	if r.plan.Empty() {
		log.Infof("%s has no manifest, skipping", r.path)
		return
	}

	d := r.plan.Definition
	log.Infof("%s: %s %s by %s", r.path, d.Name, d.Version, d.Author)
	log.Infof("  %d mods, %d content files, %d archives", len(r.plan.Mods), len(r.plan.Content), len(r.plan.Archives))
	for _, a := range r.plan.Archives {
		owner := "-"
		if a.Owner != nil {
			owner = a.Owner.Name
		}
		log.Debugf("  archive %s (%s) owner=%s patches=%d", a.Name, a.Installer, owner, len(a.Patches))
	}

	if m.reportDir == "" {
		return
	}
	reportFile, err := config.NewReport(r.plan).Write(m.reportDir)
	if err != nil {
		log.Errorf("Writing report for %s: %v", r.path, err)
		return
	}
	log.Infof("Wrote plan report %s", reportFile)
}

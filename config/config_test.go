package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Strange-Account/go-modpack-loader/modpack"
	"github.com/Strange-Account/go-modpack-loader/packagetypes"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "modpack-loader.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRead(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
_specver: 1
conventions:
  manifestFile: pack.auto
  patchesPrefix: diffs/
load:
  jobs: 2
  timeout: 30s
  ignoreContent:
    - "*.psd"
report:
  dir: reports
`)

	c, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "pack.auto", c.Conventions.ManifestFile)
	assert.Equal(t, "diffs/", c.Conventions.PatchesPrefix)
	assert.Equal(t, modpack.DefaultModsSegment, c.Conventions.ModsSegment)
	assert.Equal(t, 2, c.Load.Jobs)
	assert.Equal(t, []string{"*.psd"}, c.Load.IgnoreContent)
	assert.Equal(t, "reports", c.Report.Dir)

	d, err := c.LoadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestRead_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"old spec", "_specver: 0\n"},
		{"negative jobs", "_specver: 1\nload:\n  jobs: -1\n"},
		{"bad timeout", "_specver: 1\nload:\n  timeout: soon\n"},
		{"not yaml", "_specver: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Read(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestRead_Missing(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, modpack.DefaultConventions(), c.Conventions)
}

func TestReport_WriteRead(t *testing.T) {
	t.Parallel()

	mod := &packagetypes.Mod{Name: "SkyUI"}
	plan := &modpack.Plan{
		Source:     "/packs/skyrim.zip",
		Definition: &packagetypes.MasterDefinition{Name: "Skyrim", Version: "2.0"},
		Mods:       []*packagetypes.Mod{mod},
		Content:    []modpack.ContentBlob{{Name: "banner.png", Path: "content/banner.png"}},
		Archives: []modpack.ExtendedArchive{
			{
				SourceArchive: packagetypes.SourceArchive{Name: "mo2"},
				Installer:     modpack.InstallerBase,
				Patches:       []modpack.PatchRef{{Name: "a.bsdiff", Path: "patches/a.bsdiff"}},
			},
			{
				SourceArchive: packagetypes.SourceArchive{Name: "skyui", ArchiveName: "skyui.7z"},
				Installer:     modpack.InstallerDefault,
				Owner:         mod,
			},
		},
	}

	dir := t.TempDir()
	path, err := NewReport(plan).Write(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "skyrim.plan.yaml"), path)

	r, err := ReadReport(path)
	require.NoError(t, err)

	assert.Equal(t, "Skyrim", r.Name)
	assert.Equal(t, []string{"SkyUI"}, r.Mods)
	assert.Equal(t, []string{"content/banner.png"}, r.Content)
	require.Len(t, r.Archives, 2)
	assert.Equal(t, "modOrganizer2", r.Archives[0].Installer)
	assert.Equal(t, []string{"patches/a.bsdiff"}, r.Archives[0].Patches)
	assert.Equal(t, "SkyUI", r.Archives[1].Owner)
}

func TestNewReport_Empty(t *testing.T) {
	t.Parallel()

	r := NewReport(&modpack.Plan{})
	assert.Empty(t, r.Name)
	assert.Empty(t, r.Archives)
}

func TestReport_SameBaseName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := &Report{Source: "/packs/a/skyrim.zip", Name: "A"}
	second := &Report{Source: "/packs/b/skyrim.zip", Name: "B"}

	firstPath, err := first.Write(dir)
	require.NoError(t, err)
	secondPath, err := second.Write(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "skyrim.plan.yaml"), firstPath)
	assert.Equal(t, filepath.Join(dir, "skyrim-2.plan.yaml"), secondPath)

	r, err := ReadReport(firstPath)
	require.NoError(t, err)
	assert.Equal(t, "A", r.Name)

	// Rewriting the same modpack reuses its file.
	first.Name = "A2"
	again, err := first.Write(dir)
	require.NoError(t, err)
	assert.Equal(t, firstPath, again)
	r, err = ReadReport(again)
	require.NoError(t, err)
	assert.Equal(t, "A2", r.Name)
}

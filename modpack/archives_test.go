package modpack

import (
	"errors"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Strange-Account/go-modpack-loader/packagetypes"
)

func testPatches() PatchIndex {
	return PatchIndex{
		"b.bsdiff": {Name: "b.bsdiff", Path: "patches/b.bsdiff", Size: 2},
		"a.bsdiff": {Name: "a.bsdiff", Path: "patches/a.bsdiff", Size: 1},
	}
}

func TestPromote_Pure(t *testing.T) {
	t.Parallel()

	mod := &packagetypes.Mod{Name: "SkyUI", Source: "mods/skyui/install.json"}
	src := packagetypes.SourceArchive{
		Name:    "skyui",
		Digest:  digest.FromString("skyui").String(),
		Patches: []string{"b.bsdiff"},
	}
	before := src
	before.Patches = append([]string{}, src.Patches...)

	first, err := Promote(src, mod, testPatches(), InstallerDefault)
	require.NoError(t, err)
	second, err := Promote(src, mod, testPatches(), InstallerDefault)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, src)

	first.SourceArchive.Patches[0] = "changed"
	assert.Equal(t, "b.bsdiff", src.Patches[0])
}

func TestPromote_Patches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		patches []string
		want    []string
	}{
		{name: "no need list attaches whole index sorted", patches: nil, want: []string{"a.bsdiff", "b.bsdiff"}},
		{name: "need list attaches listed", patches: []string{"b.bsdiff"}, want: []string{"b.bsdiff"}},
		{name: "empty need list attaches none", patches: []string{}, want: []string{}},
		{name: "repeated need attaches once", patches: []string{"a.bsdiff", "a.bsdiff"}, want: []string{"a.bsdiff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := Promote(packagetypes.SourceArchive{Name: "x", Patches: tt.patches}, nil, testPatches(), InstallerBase)
			require.NoError(t, err)

			got := []string{}
			for _, p := range rec.Patches {
				got = append(got, p.Name)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, InstallerBase, rec.Installer)
			assert.Nil(t, rec.Owner)
		})
	}
}

func TestPromote_StructuralErrors(t *testing.T) {
	t.Parallel()

	mod := &packagetypes.Mod{Name: "m", Source: "mods/m/install.json"}

	tests := []struct {
		name  string
		src   packagetypes.SourceArchive
		field string
	}{
		{name: "missing name", src: packagetypes.SourceArchive{ArchiveName: "a.7z"}, field: "name"},
		{name: "negative size", src: packagetypes.SourceArchive{Name: "a", Size: -1}, field: "size"},
		{name: "malformed digest", src: packagetypes.SourceArchive{Name: "a", Digest: "md5-nope"}, field: "digest"},
		{name: "unknown patch", src: packagetypes.SourceArchive{Name: "a", Patches: []string{"zzz"}}, field: "patches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Promote(tt.src, mod, testPatches(), InstallerDefault)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrStructure))

			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.field, se.Field)
			assert.Equal(t, "mods/m/install.json", se.Path)
		})
	}
}

func TestBuildArchives_Order(t *testing.T) {
	t.Parallel()

	def := &packagetypes.MasterDefinition{MO2Archive: packagetypes.SourceArchive{Name: "mo2"}}
	m1 := &packagetypes.Mod{Name: "one", InstallPlans: []packagetypes.InstallPlan{
		{SourceArchive: packagetypes.SourceArchive{Name: "one-a"}},
		{SourceArchive: packagetypes.SourceArchive{Name: "one-b"}},
	}}
	m2 := &packagetypes.Mod{Name: "two", InstallPlans: []packagetypes.InstallPlan{
		{SourceArchive: packagetypes.SourceArchive{Name: "two-a"}},
	}}

	archives, err := buildArchives(def, DefaultManifestFile, []*packagetypes.Mod{m1, m2}, PatchIndex{})
	require.NoError(t, err)
	require.Len(t, archives, 4)

	names := []string{}
	for _, a := range archives {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"mo2", "one-a", "one-b", "two-a"}, names)

	assert.Equal(t, InstallerBase, archives[0].Installer)
	assert.Nil(t, archives[0].Owner)
	assert.Same(t, m1, archives[1].Owner)
	assert.Same(t, m1, archives[2].Owner)
	assert.Same(t, m2, archives[3].Owner)
	for _, a := range archives[1:] {
		assert.Equal(t, InstallerDefault, a.Installer)
	}
}

func TestBuildArchives_MissingBaseName(t *testing.T) {
	t.Parallel()

	_, err := buildArchives(&packagetypes.MasterDefinition{}, DefaultManifestFile, nil, PatchIndex{})

	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, DefaultManifestFile, se.Path)
	assert.Equal(t, "modOrganizer2Archive.name", se.Field)
}

func TestBuildArchives_ModPlanField(t *testing.T) {
	t.Parallel()

	def := &packagetypes.MasterDefinition{MO2Archive: packagetypes.SourceArchive{Name: "mo2"}}
	mod := &packagetypes.Mod{Source: "mods/x/install.json", InstallPlans: []packagetypes.InstallPlan{
		{SourceArchive: packagetypes.SourceArchive{Name: "ok"}},
		{SourceArchive: packagetypes.SourceArchive{}},
	}}

	_, err := buildArchives(def, DefaultManifestFile, []*packagetypes.Mod{mod}, PatchIndex{})

	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "mods/x/install.json", se.Path)
	assert.Equal(t, "installPlans[1].sourceArchive.name", se.Field)
}

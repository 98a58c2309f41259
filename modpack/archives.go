package modpack

import (
	_ "crypto/sha256"
	_ "crypto/sha512"
	"errors"
	"fmt"
	"sort"

	"github.com/opencontainers/go-digest"

	"github.com/Strange-Account/go-modpack-loader/packagetypes"
)

// InstallerType tells the installer how to treat an archive.
type InstallerType string

const (
	// InstallerBase marks the primary Mod Organizer 2 archive of the pack.
	InstallerBase InstallerType = "modOrganizer2"
	// InstallerDefault marks an ordinary mod archive.
	InstallerDefault InstallerType = "default"
)

// PatchRef locates a patch file inside the modpack.
type PatchRef struct {
	Name string
	Path string
	Size int64
}

// PatchIndex maps a patch base file name to its entry.
type PatchIndex map[string]PatchRef

// ExtendedArchive is a source archive annotated for installation.
type ExtendedArchive struct {
	packagetypes.SourceArchive

	Installer InstallerType
	// Owner is nil for the base archive.
	Owner   *packagetypes.Mod
	Patches []PatchRef
}

// Promote builds the installer-aware record for src. src is copied, never
// modified. When src declares a patch need list only those patches are
// attached, otherwise the whole index is.
func Promote(src packagetypes.SourceArchive, owner *packagetypes.Mod, patches PatchIndex, installer InstallerType) (ExtendedArchive, error) {
	var from string
	if owner != nil {
		from = owner.Source
	}

	if src.Name == "" {
		return ExtendedArchive{}, &StructuralError{Path: from, Field: "name", Reason: "is required"}
	}
	if src.Size < 0 {
		return ExtendedArchive{}, &StructuralError{Path: from, Archive: src.Name, Field: "size", Reason: "is negative"}
	}
	if src.Digest != "" {
		if _, err := digest.Parse(src.Digest); err != nil {
			return ExtendedArchive{}, &StructuralError{
				Path:    from,
				Archive: src.Name,
				Field:   "digest",
				Reason:  fmt.Sprintf("is malformed (%v)", err),
			}
		}
	}

	rec := ExtendedArchive{
		SourceArchive: src,
		Installer:     installer,
		Owner:         owner,
	}
	if src.Patches == nil {
		rec.Patches = make([]PatchRef, 0, len(patches))
		for _, ref := range patches {
			rec.Patches = append(rec.Patches, ref)
		}
	} else {
		rec.SourceArchive.Patches = append([]string{}, src.Patches...)
		rec.Patches = make([]PatchRef, 0, len(src.Patches))
		seen := map[string]bool{}
		for _, name := range src.Patches {
			if seen[name] {
				continue
			}
			seen[name] = true

			ref, ok := patches[name]
			if !ok {
				return ExtendedArchive{}, &StructuralError{
					Path:    from,
					Archive: src.Name,
					Field:   "patches",
					Reason:  fmt.Sprintf("references missing patch %q", name),
				}
			}
			rec.Patches = append(rec.Patches, ref)
		}
	}
	sort.Slice(rec.Patches, func(i, j int) bool { return rec.Patches[i].Name < rec.Patches[j].Name })

	return rec, nil
}

// buildArchives promotes the base archive followed by every install plan of
// every mod, in order.
func buildArchives(def *packagetypes.MasterDefinition, manifestPath string, mods []*packagetypes.Mod, patches PatchIndex) ([]ExtendedArchive, error) {
	base, err := Promote(def.MO2Archive, nil, patches, InstallerBase)
	if err != nil {
		var se *StructuralError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = manifestPath
			se.Field = "modOrganizer2Archive." + se.Field
		}
		return nil, err
	}

	archives := []ExtendedArchive{base}
	for _, mod := range mods {
		for i, plan := range mod.InstallPlans {
			rec, err := Promote(plan.SourceArchive, mod, patches, InstallerDefault)
			if err != nil {
				var se *StructuralError
				if errors.As(err, &se) {
					se.Field = fmt.Sprintf("installPlans[%d].sourceArchive.%s", i, se.Field)
				}
				return nil, err
			}
			archives = append(archives, rec)
		}
	}

	return archives, nil
}

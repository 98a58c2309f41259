package modpack

import (
	"fmt"
	"strings"
)

// Default path conventions of the modpack format.
const (
	DefaultManifestFile     = "definition.json"
	DefaultModsSegment      = "mods/"
	DefaultDescriptorSuffix = "install.json"
	DefaultContentSegment   = "content/"
	DefaultPatchesPrefix    = "patches/"
)

// Conventions are the reserved entry paths a modpack is laid out with.
type Conventions struct {
	// ManifestFile is compared against the whole entry path, ignoring case.
	ManifestFile string `yaml:"manifestFile"`
	// ModsSegment must appear somewhere in a descriptor path, ignoring case.
	ModsSegment string `yaml:"modsSegment"`
	// DescriptorSuffix must end a descriptor path.
	DescriptorSuffix string `yaml:"descriptorSuffix"`
	// ContentSegment must appear somewhere in a content path, ignoring case.
	ContentSegment string `yaml:"contentSegment"`
	// PatchesPrefix must start a patch path.
	PatchesPrefix string `yaml:"patchesPrefix"`
}

func DefaultConventions() Conventions {
	return Conventions{
		ManifestFile:     DefaultManifestFile,
		ModsSegment:      DefaultModsSegment,
		DescriptorSuffix: DefaultDescriptorSuffix,
		ContentSegment:   DefaultContentSegment,
		PatchesPrefix:    DefaultPatchesPrefix,
	}
}

// Merge returns c with every empty field taken from defaults.
func (c Conventions) Merge(defaults Conventions) Conventions {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}

	return Conventions{
		ManifestFile:     pick(c.ManifestFile, defaults.ManifestFile),
		ModsSegment:      pick(c.ModsSegment, defaults.ModsSegment),
		DescriptorSuffix: pick(c.DescriptorSuffix, defaults.DescriptorSuffix),
		ContentSegment:   pick(c.ContentSegment, defaults.ContentSegment),
		PatchesPrefix:    pick(c.PatchesPrefix, defaults.PatchesPrefix),
	}
}

// Validate reports the first empty convention.
func (c Conventions) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"manifestFile", c.ManifestFile},
		{"modsSegment", c.ModsSegment},
		{"descriptorSuffix", c.DescriptorSuffix},
		{"contentSegment", c.ContentSegment},
		{"patchesPrefix", c.PatchesPrefix},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("convention %s must not be empty", f.name)
		}
	}

	return nil
}

func (c Conventions) IsManifest(path string) bool {
	return strings.EqualFold(path, c.ManifestFile)
}

func (c Conventions) IsModDescriptor(path string) bool {
	return strings.Contains(strings.ToLower(path), strings.ToLower(c.ModsSegment)) &&
		strings.HasSuffix(path, c.DescriptorSuffix)
}

// IsContent reports whether path lies under the content segment. Manifest and
// descriptor entries are never content.
func (c Conventions) IsContent(path string) bool {
	if c.IsManifest(path) || c.IsModDescriptor(path) {
		return false
	}
	return strings.Contains(strings.ToLower(path), strings.ToLower(c.ContentSegment))
}

func (c Conventions) IsPatch(path string) bool {
	return strings.HasPrefix(path, c.PatchesPrefix)
}

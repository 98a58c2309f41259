package packagetypes

// MasterDefinition is the top-level manifest of a modpack.
type MasterDefinition struct {
	Name        string        `json:"name"`
	Author      string        `json:"author"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	HeaderImage string        `json:"headerImage"`
	Readme      string        `json:"readme"`
	SourceURL   string        `json:"sourceUrl"`
	MO2Archive  SourceArchive `json:"modOrganizer2Archive"`
}

// Mod is a single mod declaration.
type Mod struct {
	Name         string        `json:"name"`
	Author       string        `json:"author"`
	Version      string        `json:"version"`
	InstallPlans []InstallPlan `json:"installPlans"`

	// Source is the archive entry the mod was decoded from.
	Source string `json:"-"`
}

// InstallPlan names the source archive a mod installs from.
type InstallPlan struct {
	SourceArchive SourceArchive `json:"sourceArchive"`
	FilePairings  []FilePairing `json:"filePairings"`
}

type FilePairing struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SourceArchive references an archive dependency.
type SourceArchive struct {
	Name        string `json:"name"`
	ArchiveName string `json:"archiveName"`
	Size        int64  `json:"size"`
	Digest      string `json:"digest"`
	Repository  string `json:"repository"`
	TargetURL   string `json:"targetUrl"`

	// Patches lists the patch file names this archive needs. A nil list means
	// the format did not declare any need list.
	Patches []string `json:"patches"`
}

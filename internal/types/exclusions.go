package types

var (
	excludedDirectoryNames = []string{".git", "node_modules", ".next", "__pycache__", "public"}
	excludedFileNames      = []string{".DS_Store", ".env.local", DefaultTreeOutputName, ArchiveScriptName}
)

// ExclusionSet holds the directory and file names skipped while archiving.
// Names match by exact equality against the bare entry name.
type ExclusionSet struct {
	directories map[string]struct{}
	files       map[string]struct{}
}

// NewExclusionSet returns the fixed exclusion set extended with the archive output
// name and the names under which the builder itself runs.
func NewExclusionSet(archiveOutputName string, builderNames ...string) ExclusionSet {
	set := ExclusionSet{
		directories: make(map[string]struct{}, len(excludedDirectoryNames)),
		files:       make(map[string]struct{}, len(excludedFileNames)+1+len(builderNames)),
	}
	for _, name := range excludedDirectoryNames {
		set.directories[name] = struct{}{}
	}
	for _, name := range excludedFileNames {
		set.files[name] = struct{}{}
	}
	if archiveOutputName != "" {
		set.files[archiveOutputName] = struct{}{}
	}
	for _, name := range builderNames {
		if name != "" {
			set.files[name] = struct{}{}
		}
	}
	return set
}

// ExcludesDirectory reports whether a directory with this bare name is pruned.
func (set ExclusionSet) ExcludesDirectory(name string) bool {
	_, excluded := set.directories[name]
	return excluded
}

// ExcludesFile reports whether a file with this bare name is skipped.
func (set ExclusionSet) ExcludesFile(name string) bool {
	_, excluded := set.files[name]
	return excluded
}

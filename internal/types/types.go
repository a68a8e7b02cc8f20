// Package types defines every cross‑package data structure used by the projsnap tools.
package types

import "strings"

const (
	CommandTree    = "tree"
	CommandArchive = "archive"

	// DefaultTreeOutputName is the file the tree renderer writes into the working directory.
	DefaultTreeOutputName = "directory_tree.txt"
	// DefaultArchiveOutputName is the archive the builder writes into the working directory.
	DefaultArchiveOutputName = "menhera_shindan_backup.zip"
	// ArchiveScriptName is the name of the archive builder script this tool replaces.
	ArchiveScriptName = "zip_project.py"

	RootSuffix = "/"

	ConnectorBranch   = "├── "
	ConnectorTerminal = "└── "
	IndentBranch      = "│   "
	IndentTerminal    = "    "

	PermissionDeniedText = "Permission Denied"
)

// DirectoryEntry is an immediate child of a listed directory.
type DirectoryEntry struct {
	Name         string
	Path         string
	IsDirectory  bool
	IsAccessible bool
}

// RenderLine is one formatted line of the rendered tree.
type RenderLine struct {
	Prefix      string
	Connector   string
	Name        string
	Depth       int
	IsLast      bool
	IsDirectory bool
	// Sentinel marks the line emitted in place of the children of an unreadable directory.
	Sentinel bool
}

// String returns the line as it appears in the output file, without the trailing newline.
func (line RenderLine) String() string {
	if line.Sentinel {
		return line.Prefix + PermissionDeniedText
	}
	return line.Prefix + line.Connector + line.Name
}

// ConnectorFor returns the connector glyph and continuation indent for an entry.
func ConnectorFor(isLast bool) (string, string) {
	if isLast {
		return ConnectorTerminal, IndentTerminal
	}
	return ConnectorBranch, IndentBranch
}

// RootLine formats the header line naming the rendered root directory.
func RootLine(rootName string) string {
	return strings.TrimSuffix(rootName, RootSuffix) + RootSuffix
}

// ArchiveEntry is one file selected for the archive.
type ArchiveEntry struct {
	SourcePath  string
	ArchiveName string
}

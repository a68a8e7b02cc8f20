package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tyemirov/projsnap/internal/types"
	"github.com/tyemirov/projsnap/internal/utils"
)

const (
	// warningWalkPathFormat is used when a path cannot be visited during the archive walk.
	warningWalkPathFormat = "Warning: skipping %s: %v"
	// errorArchiveRootFormat is used when the archive root itself cannot be visited.
	errorArchiveRootFormat = "walking archive root %s: %w"
	// errorNilEntryHandlerMessage is returned when no entry handler is supplied.
	errorNilEntryHandlerMessage = "archive stream handler is nil"
	// errorEmptyArchiveRootMessage is returned when no root directory is supplied.
	errorEmptyArchiveRootMessage = "archive root path is empty"
)

// ArchiveStreamOptions configures an archive walk.
type ArchiveStreamOptions struct {
	Root       string
	Exclusions types.ExclusionSet
	Warn       func(message string)
}

// StreamArchive walks Root top-down and hands every file selected for the archive to
// handler. Directories named in the exclusion set are pruned before they are entered,
// files named in it are skipped. Directories that cannot be listed are reported through
// Warn and skipped. Symbolic links to directories are neither followed nor archived.
// Errors returned by handler stop the walk and are returned unchanged.
func StreamArchive(options ArchiveStreamOptions, handler func(types.ArchiveEntry) error) error {
	if handler == nil {
		return errors.New(errorNilEntryHandlerMessage)
	}
	if options.Root == "" {
		return errors.New(errorEmptyArchiveRootMessage)
	}
	warn := options.Warn
	if warn == nil {
		warn = func(string) {}
	}
	root := filepath.Clean(options.Root)

	walkFunction := func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if directoryEntry == nil {
				return fmt.Errorf(errorArchiveRootFormat, root, walkError)
			}
			warn(fmt.Sprintf(warningWalkPathFormat, currentPath, walkError))
			return nil
		}
		if directoryEntry.IsDir() {
			if currentPath != root && options.Exclusions.ExcludesDirectory(directoryEntry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			if targetInfo, statError := os.Stat(currentPath); statError == nil && targetInfo.IsDir() {
				return nil
			}
		}
		if options.Exclusions.ExcludesFile(directoryEntry.Name()) {
			return nil
		}
		return handler(types.ArchiveEntry{
			SourcePath:  currentPath,
			ArchiveName: utils.RelativeSlashPath(currentPath, root),
		})
	}

	return filepath.WalkDir(root, walkFunction)
}

// CollectArchiveNames returns the archive entry names StreamArchive selects for root.
func CollectArchiveNames(root string, exclusions types.ExclusionSet) ([]string, error) {
	var names []string
	streamError := StreamArchive(ArchiveStreamOptions{Root: root, Exclusions: exclusions}, func(entry types.ArchiveEntry) error {
		names = append(names, entry.ArchiveName)
		return nil
	})
	if streamError != nil {
		return nil, streamError
	}
	return names, nil
}

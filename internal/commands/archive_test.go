package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/tyemirov/projsnap/internal/commands"
	"github.com/tyemirov/projsnap/internal/types"
)

const testArchiveName = "backup.zip"

func collectSortedArchiveNames(testingHandle *testing.T, root string) []string {
	testingHandle.Helper()
	names, collectError := commands.CollectArchiveNames(root, types.NewExclusionSet(testArchiveName, "zipproject"))
	if collectError != nil {
		testingHandle.Fatalf("CollectArchiveNames error: %v", collectError)
	}
	slices.Sort(names)
	return names
}

func TestCollectArchiveNamesExcludesFixedNames(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, "a/b.txt", "node_modules/x.js", ".git/HEAD", ".env.local")

	names := collectSortedArchiveNames(testingHandle, root)
	if !slices.Equal(names, []string{"a/b.txt"}) {
		testingHandle.Fatalf("unexpected archive contents: %q", names)
	}
}

func TestCollectArchiveNamesPruningSemantics(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root,
		"src/public",
		"src/app/page.tsx",
		"src/app/node_modules/pkg/index.js",
		"src/app/.env.local",
		"src/app/.next/cache.json",
		"lib/__pycache__/mod.pyc",
		"public/logo.png",
		".DS_Store",
		"docs/.DS_Store",
		"directory_tree.txt",
		"zip_project.py",
		"zipproject",
		testArchiveName,
		"nested/"+testArchiveName,
		".env",
		"empty/",
	)

	names := collectSortedArchiveNames(testingHandle, root)
	expected := []string{".env", "src/app/page.tsx", "src/public"}
	if !slices.Equal(names, expected) {
		testingHandle.Fatalf("expected %q, got %q", expected, names)
	}
}

func TestCollectArchiveNamesKeepsFileNamedLikeExcludedDirectory(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, "public", "node_modules")

	names := collectSortedArchiveNames(testingHandle, root)
	if !slices.Equal(names, []string{"node_modules", "public"}) {
		testingHandle.Fatalf("top-level files sharing an excluded directory name must be archived, got %q", names)
	}
}

func TestStreamArchiveUsesForwardSlashRelativeNames(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, "a/b/c/d.txt")

	var entries []types.ArchiveEntry
	streamError := commands.StreamArchive(commands.ArchiveStreamOptions{Root: root}, func(entry types.ArchiveEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if streamError != nil {
		testingHandle.Fatalf("StreamArchive error: %v", streamError)
	}
	if len(entries) != 1 {
		testingHandle.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].ArchiveName != "a/b/c/d.txt" || strings.HasPrefix(entries[0].ArchiveName, "./") {
		testingHandle.Fatalf("unexpected archive name %q", entries[0].ArchiveName)
	}
	if entries[0].SourcePath != filepath.Join(root, "a", "b", "c", "d.txt") {
		testingHandle.Fatalf("unexpected source path %q", entries[0].SourcePath)
	}
}

func TestStreamArchiveSkipsDirectorySymlinks(testingHandle *testing.T) {
	if runtime.GOOS == "windows" {
		testingHandle.Skip("symlinks require privileges on windows")
	}
	root := testingHandle.TempDir()
	outside := testingHandle.TempDir()
	writeTree(testingHandle, outside, "inner.txt")
	writeTree(testingHandle, root, "real.txt")
	if err := os.Symlink(outside, filepath.Join(root, "linked_dir")); err != nil {
		testingHandle.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "linked_file")); err != nil {
		testingHandle.Fatalf("symlink: %v", err)
	}

	names := collectSortedArchiveNames(testingHandle, root)
	if !slices.Equal(names, []string{"linked_file", "real.txt"}) {
		testingHandle.Fatalf("unexpected names %q", names)
	}
}

func TestStreamArchiveWarnsOnUnreadableDirectory(testingHandle *testing.T) {
	skipWhenPermissionsIgnored(testingHandle)
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, "locked/secret.txt", "open.txt")
	lockedPath := filepath.Join(root, "locked")
	if err := os.Chmod(lockedPath, 0o000); err != nil {
		testingHandle.Fatalf("chmod: %v", err)
	}
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedPath, directoryMode) })

	var warnings []string
	var names []string
	options := commands.ArchiveStreamOptions{
		Root:       root,
		Exclusions: types.NewExclusionSet(testArchiveName),
		Warn:       func(message string) { warnings = append(warnings, message) },
	}
	streamError := commands.StreamArchive(options, func(entry types.ArchiveEntry) error {
		names = append(names, entry.ArchiveName)
		return nil
	})
	if streamError != nil {
		testingHandle.Fatalf("StreamArchive error: %v", streamError)
	}
	if !slices.Equal(names, []string{"open.txt"}) {
		testingHandle.Fatalf("unexpected names %q", names)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], lockedPath) {
		testingHandle.Fatalf("expected one warning naming %s, got %q", lockedPath, warnings)
	}
}

func TestStreamArchivePropagatesHandlerError(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTree(testingHandle, root, "a.txt", "b.txt")
	writeFailure := errors.New("disk full")
	streamError := commands.StreamArchive(commands.ArchiveStreamOptions{Root: root}, func(types.ArchiveEntry) error {
		return writeFailure
	})
	if !errors.Is(streamError, writeFailure) {
		testingHandle.Fatalf("expected handler error, got %v", streamError)
	}
}

func TestStreamArchiveMissingRoot(testingHandle *testing.T) {
	root := filepath.Join(testingHandle.TempDir(), "missing")
	if _, collectError := commands.CollectArchiveNames(root, types.NewExclusionSet(testArchiveName)); collectError == nil {
		testingHandle.Fatalf("expected error for missing root")
	}
}

// Package commands contains the traversal logic behind each tool.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tyemirov/projsnap/internal/types"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be read for a reason other than permissions.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorNilHandlerMessage is returned when no line handler is supplied.
	errorNilHandlerMessage = "tree stream handler is nil"
	// errorEmptyRootMessage is returned when no root directory is supplied.
	errorEmptyRootMessage = "tree root path is empty"
)

// TreeStreamOptions configures a tree walk.
type TreeStreamOptions struct {
	Root string
}

type treeStreamContext struct {
	handler func(types.RenderLine) error
}

// StreamTree walks Root depth first and hands every rendered line to handler in
// pre-order. A directory that cannot be listed because of permissions yields one
// Permission Denied line and is not descended; other listing failures abort the walk.
// The root line itself is not produced.
func StreamTree(options TreeStreamOptions, handler func(types.RenderLine) error) error {
	if handler == nil {
		return errors.New(errorNilHandlerMessage)
	}
	if options.Root == "" {
		return errors.New(errorEmptyRootMessage)
	}
	ctx := treeStreamContext{handler: handler}
	return ctx.walkDirectory(options.Root, "", 0)
}

// CollectTreeLines returns the formatted lines StreamTree produces for root.
func CollectTreeLines(root string) ([]string, error) {
	var lines []string
	streamError := StreamTree(TreeStreamOptions{Root: root}, func(line types.RenderLine) error {
		lines = append(lines, line.String())
		return nil
	})
	if streamError != nil {
		return nil, streamError
	}
	return lines, nil
}

func (ctx *treeStreamContext) walkDirectory(directoryPath string, prefix string, depth int) error {
	entries, listError := ListDirectory(directoryPath)
	if listError != nil {
		if errors.Is(listError, fs.ErrPermission) {
			return ctx.handler(types.RenderLine{Prefix: prefix, Depth: depth, Sentinel: true})
		}
		return fmt.Errorf(errorReadDirectoryFormat, directoryPath, listError)
	}

	lastIndex := len(entries) - 1
	for index, entry := range entries {
		isLast := index == lastIndex
		connector, indent := types.ConnectorFor(isLast)
		line := types.RenderLine{
			Prefix:      prefix,
			Connector:   connector,
			Name:        entry.Name,
			Depth:       depth,
			IsLast:      isLast,
			IsDirectory: entry.IsDirectory,
		}
		if err := ctx.handler(line); err != nil {
			return err
		}
		if !entry.IsDirectory {
			continue
		}
		if err := ctx.walkDirectory(entry.Path, prefix+indent, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// ListDirectory returns the immediate children of directoryPath sorted by name.
// Symbolic links are reported as directories when their target is a directory.
// Entries whose target cannot be inspected are marked inaccessible and treated as files.
func ListDirectory(directoryPath string) ([]types.DirectoryEntry, error) {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, readError
	}

	entries := make([]types.DirectoryEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		entry := types.DirectoryEntry{
			Name:         directoryEntry.Name(),
			Path:         childPath,
			IsDirectory:  directoryEntry.IsDir(),
			IsAccessible: true,
		}
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			targetInfo, statError := os.Stat(childPath)
			if statError != nil {
				entry.IsAccessible = false
			} else {
				entry.IsDirectory = targetInfo.IsDir()
			}
		}
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(left, right types.DirectoryEntry) int {
		return strings.Compare(left.Name, right.Name)
	})
	return entries, nil
}

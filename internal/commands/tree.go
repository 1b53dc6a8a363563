// Package commands renders a directory as a markdown document: an ASCII tree
// followed by one fenced section per file.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	treeBranchConnector = "├─ "
	treeLastConnector   = "└─ "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	treeLineSeparator = "\n"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorFilterPathFormat is used when a path cannot be checked against the filter.
	errorFilterPathFormat = "checking %s: %w"
	// errorStatPathFormat is used when file information cannot be retrieved.
	errorStatPathFormat = "stat %s: %w"
)

// treeEntry is one non-excluded child of a directory.
type treeEntry struct {
	name  string
	path  string
	isDir bool
}

// RenderTree returns the ASCII tree of rootDirectoryPath. The first line is the
// directory's own name; children are listed in name order with excluded paths omitted.
func RenderTree(rootDirectoryPath string, filter utils.Filter) (string, error) {
	lines := []string{filepath.Base(filepath.Clean(rootDirectoryPath))}
	if appendError := appendTreeLines(&lines, rootDirectoryPath, "", filter); appendError != nil {
		return "", appendError
	}
	return strings.Join(lines, treeLineSeparator), nil
}

func appendTreeLines(lines *[]string, directoryPath string, prefix string, filter utils.Filter) error {
	entries, listError := listIncludedEntries(directoryPath, filter)
	if listError != nil {
		return listError
	}
	for index, entry := range entries {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if index == len(entries)-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		*lines = append(*lines, prefix+connector+entry.name)
		if entry.isDir {
			if appendError := appendTreeLines(lines, entry.path, childPrefix, filter); appendError != nil {
				return appendError
			}
		}
	}
	return nil
}

// listIncludedEntries returns the children of directoryPath that pass the filter, sorted by name.
func listIncludedEntries(directoryPath string, filter utils.Filter) ([]treeEntry, error) {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError)
	}
	entries := make([]treeEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		excluded, excludeError := filter.Excludes(childPath)
		if excludeError != nil {
			return nil, fmt.Errorf(errorFilterPathFormat, childPath, excludeError)
		}
		if excluded {
			continue
		}
		childInfo, statError := os.Stat(childPath)
		if statError != nil {
			return nil, fmt.Errorf(errorStatPathFormat, childPath, statError)
		}
		entries = append(entries, treeEntry{
			name:  directoryEntry.Name(),
			path:  childPath,
			isDir: childInfo.IsDir(),
		})
	}
	return entries, nil
}

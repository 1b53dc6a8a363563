package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/nathanclairmonte/foldup/internal/types"
	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	projectTreeHeader = "# PROJECT TREE\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorRootNotDirectoryFormat is used when the root is not a directory.
	errorRootNotDirectoryFormat = "%s is not a directory"
	// errorRenderTreeFormat is used when rendering the tree fails.
	errorRenderTreeFormat = "rendering tree for %s: %w"
)

// Options selects what GenerateDocument leaves out.
type Options struct {
	ExcludePatterns []string
	MaxFileSizeMB   float64
	GitIgnore       gitignore.IgnoreMatcher
}

// GenerateDocument folds rootDirectoryPath into a single markdown document: the
// project tree followed by every non-excluded file, depth-first in name order.
// Any filesystem failure aborts generation.
func GenerateDocument(rootDirectoryPath string, options Options) (types.Document, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return types.Document{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInfo, statError := os.Stat(absoluteRootPath)
	if statError != nil {
		return types.Document{}, fmt.Errorf(errorStatPathFormat, absoluteRootPath, statError)
	}
	if !rootInfo.IsDir() {
		return types.Document{}, fmt.Errorf(errorRootNotDirectoryFormat, absoluteRootPath)
	}

	filter := utils.Filter{
		RootPath:      absoluteRootPath,
		Patterns:      options.ExcludePatterns,
		MaxFileSizeMB: options.MaxFileSizeMB,
		GitIgnore:     options.GitIgnore,
	}

	tree, treeError := RenderTree(absoluteRootPath, filter)
	if treeError != nil {
		return types.Document{}, fmt.Errorf(errorRenderTreeFormat, absoluteRootPath, treeError)
	}

	var statistics types.Statistics
	sections := []string{projectTreeHeader, tree}
	fileSections, processError := processDirectory(absoluteRootPath, absoluteRootPath, filter, &statistics)
	if processError != nil {
		return types.Document{}, processError
	}
	sections = append(sections, fileSections...)

	return types.Document{
		Content:    strings.Join(sections, sectionSeparator),
		Statistics: statistics,
	}, nil
}

// processDirectory renders every file below directoryPath in pre-order.
// Excluded regular files met here are recorded as skipped; excluded directories are not entered.
func processDirectory(directoryPath string, rootDirectoryPath string, filter utils.Filter, statistics *types.Statistics) ([]string, error) {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError)
	}

	var sections []string
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		excluded, excludeError := filter.Excludes(childPath)
		if excludeError != nil {
			return nil, fmt.Errorf(errorFilterPathFormat, childPath, excludeError)
		}
		if excluded {
			if isRegularFile(childPath) {
				statistics.RecordSkipped(utils.RelativePathOrSelf(childPath, rootDirectoryPath))
			}
			continue
		}

		childInfo, statError := os.Stat(childPath)
		if statError != nil {
			return nil, fmt.Errorf(errorStatPathFormat, childPath, statError)
		}
		switch {
		case childInfo.IsDir():
			childSections, childError := processDirectory(childPath, rootDirectoryPath, filter, statistics)
			if childError != nil {
				return nil, childError
			}
			sections = append(sections, childSections...)
		case childInfo.Mode().IsRegular():
			section, fileError := ProcessFile(childPath, rootDirectoryPath, statistics)
			if fileError != nil {
				return nil, fileError
			}
			sections = append(sections, section)
		default:
			statistics.RecordSkipped(utils.RelativePathOrSelf(childPath, rootDirectoryPath))
		}
	}
	return sections, nil
}

func isRegularFile(path string) bool {
	fileInfo, statError := os.Stat(path)
	return statError == nil && fileInfo.Mode().IsRegular()
}

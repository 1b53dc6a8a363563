package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

const (
	// bytesPerMegabyte converts the configured megabyte threshold into bytes.
	bytesPerMegabyte = 1024 * 1024

	errorStatPathFormat = "stat %s: %w"
)

// Filter decides which paths below RootPath are left out of the tree and the document.
type Filter struct {
	// RootPath is the absolute directory that relative paths are computed from.
	RootPath string
	// Patterns are matched as plain substrings of the slash-separated path relative to
	// RootPath, so a top-level entry has no leading separator and "/build" only matches
	// nested paths such as "src/build".
	Patterns []string
	// MaxFileSizeMB excludes regular files strictly larger than this many megabytes.
	MaxFileSizeMB float64
	// GitIgnore optionally adds matches from a .gitignore file.
	GitIgnore gitignore.IgnoreMatcher
}

// Excludes reports whether path is excluded by pattern or by size.
// Directories are never excluded by size. A path that cannot be stat'ed yields an error.
func (filter Filter) Excludes(path string) (bool, error) {
	relativePath := RelativePathOrSelf(path, filter.RootPath)
	if relativePath == "." {
		return false, nil
	}
	if MatchesAnyPattern(relativePath, filter.Patterns) {
		return true, nil
	}

	fileInfo, statError := os.Stat(path)
	if statError != nil {
		return false, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	if filter.GitIgnore != nil && filter.GitIgnore.Match(filepath.Clean(path), fileInfo.IsDir()) {
		return true, nil
	}
	if fileInfo.Mode().IsRegular() && float64(fileInfo.Size()) > filter.MaxFileSizeMB*bytesPerMegabyte {
		return true, nil
	}
	return false, nil
}

// MatchesAnyPattern reports whether pathValue contains any non-empty pattern as a substring.
func MatchesAnyPattern(pathValue string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == EmptyString {
			continue
		}
		if strings.Contains(pathValue, pattern) {
			return true
		}
	}
	return false
}

// LoadGitIgnoreMatcher reads the .gitignore at the top of rootPath.
// A missing file yields a nil matcher and no error.
func LoadGitIgnoreMatcher(rootPath string) (gitignore.IgnoreMatcher, error) {
	gitIgnorePath := filepath.Join(rootPath, GitIgnoreFileName)
	if _, statError := os.Stat(gitIgnorePath); statError != nil {
		if os.IsNotExist(statError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorStatPathFormat, gitIgnorePath, statError)
	}
	matcher, matcherError := gitignore.NewGitIgnore(gitIgnorePath, rootPath)
	if matcherError != nil {
		return nil, fmt.Errorf("read %s: %w", gitIgnorePath, matcherError)
	}
	return matcher, nil
}

// Package config builds the per-run configuration from built-in defaults,
// the project's ignore file and an optional YAML configuration file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	// DefaultMaxFileSizeMB is the size threshold applied when nothing overrides it.
	DefaultMaxFileSizeMB = 1.0
	// DefaultTokenModel selects the tiktoken encoding used for token estimates.
	DefaultTokenModel = "gpt-4"

	commentPrefix = "#"

	warningIgnoreFileMessage = "error reading ignore file, continuing without it"
)

// defaultExcludePatterns is copied into every Configuration returned by Default.
var defaultExcludePatterns = []string{
	"__pycache__",
	"node_modules",
	".git",
	"venv",
	".env",
	".env.local",
	".idea",
	".vscode",
	"dist",
	"build",
	".next",
	"coverage",
}

// Configuration holds the settings for one run.
type Configuration struct {
	Exclude            []string `yaml:"exclude"`
	MaxFileSizeMB      float64  `yaml:"max_file_size_mb"`
	IncludeBinaryFiles bool     `yaml:"include_binary_files"`
	ShowProcessedFiles bool     `yaml:"show_processed_files"`
	EstimateTokens     bool     `yaml:"estimate_tokens"`
	TokenModel         string   `yaml:"token_model"`
	TokenizerFile      string   `yaml:"tokenizer_file,omitempty"`
	UseGitignore       bool     `yaml:"use_gitignore"`
}

// Default returns a freshly allocated default configuration. Callers may mutate it freely.
func Default() Configuration {
	return Configuration{
		Exclude:       append([]string(nil), defaultExcludePatterns...),
		MaxFileSizeMB: DefaultMaxFileSizeMB,
		TokenModel:    DefaultTokenModel,
	}
}

// LoadIgnoreFilePatterns reads one pattern per line from ignoreFilePath.
// Blank lines and lines starting with '#' are skipped. A missing file yields no patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer fileHandle.Close()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("scanning %s: %w", ignoreFilePath, scanError)
	}
	return utils.DeduplicatePatterns(ignorePatterns), nil
}

// loadProjectIgnorePatterns reads the ignore file in rootDirectory, logging and
// discarding any read failure.
func loadProjectIgnorePatterns(rootDirectory string, logger *zap.Logger) []string {
	ignoreFilePath := filepath.Join(rootDirectory, utils.IgnoreFileName)
	ignorePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		logger.Warn(warningIgnoreFileMessage, zap.String("path", ignoreFilePath), zap.Error(loadError))
		return nil
	}
	return ignorePatterns
}

// unionPatterns returns a new slice holding base followed by any extra pattern not already present.
func unionPatterns(base []string, extra []string) []string {
	combined := make([]string, 0, len(base)+len(extra))
	combined = append(combined, base...)
	combined = append(combined, extra...)
	return utils.DeduplicatePatterns(combined)
}

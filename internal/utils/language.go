package utils

import (
	"path/filepath"
	"strings"
)

// PlaintextLanguage is the fence tag used when no language mapping exists.
const PlaintextLanguage = "plaintext"

// fenceLanguages maps file suffixes, or exact dotfile names, to markdown fence tags.
var fenceLanguages = map[string]string{
	// programming languages
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".jsx":  "jsx",
	".tsx":  "tsx",
	".rs":   "rust",
	".go":   "go",
	".java": "java",
	".cpp":  "cpp",
	".c":    "c",
	".cs":   "csharp",
	".rb":   "ruby",
	".php":  "php",
	// web
	".html": "html",
	".css":  "css",
	".scss": "scss",
	".sass": "sass",
	".less": "less",
	// data and config
	".md":   "markdown",
	".yml":  "yaml",
	".yaml": "yaml",
	".json": "json",
	".toml": "toml",
	".ini":  "ini",
	".xml":  "xml",
	// shell and scripts
	".sh":   "bash",
	".bash": "bash",
	".zsh":  "bash",
	".fish": "fish",
	".ps1":  "powershell",
}

// FenceLanguage returns the code fence language tag for the named file.
// Dotfiles are looked up verbatim; other names by their lowercased suffix.
func FenceLanguage(fileName string) string {
	baseName := filepath.Base(fileName)
	lookupKey := strings.ToLower(filepath.Ext(baseName))
	if strings.HasPrefix(baseName, ".") {
		lookupKey = baseName
	}
	if language, found := fenceLanguages[lookupKey]; found {
		return language
	}
	return PlaintextLanguage
}

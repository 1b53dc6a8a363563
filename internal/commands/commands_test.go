package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/nathanclairmonte/foldup/internal/commands"
	"github.com/nathanclairmonte/foldup/internal/config"
	"github.com/nathanclairmonte/foldup/internal/types"
	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	pythonFileName    = "a.py"
	pythonFileContent = "print(12)\n"
	imageFileName     = "b.png"
	excludedDirectory = "node_modules"
	excludedFileName  = "x.js"
	oneMegabyte       = 1024 * 1024
)

var imageFileContent = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}

// writeTestFile creates a file and its parent directories, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content []byte) {
	testingHandle.Helper()
	require.NoError(testingHandle, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(testingHandle, os.WriteFile(filePath, content, 0o644))
}

// defaultOptions mirrors the options the CLI derives from the default configuration.
func defaultOptions() commands.Options {
	defaults := config.Default()
	return commands.Options{ExcludePatterns: defaults.Exclude, MaxFileSizeMB: defaults.MaxFileSizeMB}
}

// createExampleProject lays out a text file, a binary file and an excluded dependency directory.
func createExampleProject(testingHandle *testing.T) string {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, pythonFileName), []byte(pythonFileContent))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, imageFileName), imageFileContent)
	writeTestFile(testingHandle, filepath.Join(rootDirectory, excludedDirectory, excludedFileName), []byte("module.exports = 1\n"))
	return rootDirectory
}

// fencedLanguages parses markdown and returns the info string of every fenced code block.
func fencedLanguages(testingHandle *testing.T, markdown string) []string {
	testingHandle.Helper()
	source := []byte(markdown)
	document := goldmark.New().Parser().Parse(text.NewReader(source))
	var languages []string
	walkError := ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if codeBlock, isFenced := node.(*ast.FencedCodeBlock); isFenced && entering {
			languages = append(languages, string(codeBlock.Language(source)))
		}
		return ast.WalkContinue, nil
	})
	require.NoError(testingHandle, walkError)
	return languages
}

func TestGenerateDocumentExampleProject(testingHandle *testing.T) {
	rootDirectory := createExampleProject(testingHandle)

	document, generateError := commands.GenerateDocument(rootDirectory, defaultOptions())
	require.NoError(testingHandle, generateError)

	rootName := filepath.Base(rootDirectory)
	expected := "# PROJECT TREE\n\n" +
		rootName + "\n" +
		"├─ a.py\n" +
		"└─ b.png\n" +
		"\n# a.py\n\n```python\nprint(12)\n\n```\n" +
		"\n# b.png\n\n```plaintext\n" + commands.BinaryContentOmitted + "\n```"
	require.Equal(testingHandle, expected, document.Content)

	require.Equal(testingHandle, types.Statistics{
		ProcessedFiles:    1,
		SkippedFiles:      1,
		TotalSize:         int64(len(pythonFileContent)),
		ProcessedFileList: []string{pythonFileName},
		SkippedFileList:   []string{imageFileName},
	}, document.Statistics)

	require.Equal(testingHandle, []string{"python", utils.PlaintextLanguage}, fencedLanguages(testingHandle, document.Content))
	require.NotContains(testingHandle, document.Content, excludedDirectory)
	require.NotContains(testingHandle, document.Content, string(imageFileContent[:4]))
}

func TestGenerateDocumentIsIdempotent(testingHandle *testing.T) {
	rootDirectory := createExampleProject(testingHandle)
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "main.go"), []byte("package main\n"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "lib", "util.ts"), []byte("export {}\n"))

	first, firstError := commands.GenerateDocument(rootDirectory, defaultOptions())
	require.NoError(testingHandle, firstError)
	second, secondError := commands.GenerateDocument(rootDirectory, defaultOptions())
	require.NoError(testingHandle, secondError)

	require.Equal(testingHandle, first.Content, second.Content)
	require.Equal(testingHandle, first.Statistics, second.Statistics)
}

func TestRenderTreeNesting(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a", "x.txt"), []byte("x"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a", "y.txt"), []byte("y"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.txt"), []byte("b"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "c", "d", "z.txt"), []byte("z"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "c", "skip.me"), []byte("s"))

	filter := utils.Filter{RootPath: rootDirectory, Patterns: []string{"skip"}, MaxFileSizeMB: 1}
	tree, treeError := commands.RenderTree(rootDirectory, filter)
	require.NoError(testingHandle, treeError)

	expected := strings.Join([]string{
		filepath.Base(rootDirectory),
		"├─ a",
		"│   ├─ x.txt",
		"│   └─ y.txt",
		"├─ b.txt",
		"└─ c",
		"    └─ d",
		"        └─ z.txt",
	}, "\n")
	require.Equal(testingHandle, expected, tree)
}

func TestRenderTreeInterleavesFilesAndDirectoriesByName(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b", "inner.txt"), []byte("i"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.txt"), []byte("a"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "c.txt"), []byte("c"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "B.txt"), []byte("B"))

	tree, treeError := commands.RenderTree(rootDirectory, utils.Filter{RootPath: rootDirectory, MaxFileSizeMB: 1})
	require.NoError(testingHandle, treeError)

	lines := strings.Split(tree, "\n")
	require.Equal(testingHandle, []string{"├─ B.txt", "├─ a.txt", "├─ b", "│   └─ inner.txt", "└─ c.txt"}, lines[1:])
}

func TestGenerateDocumentCountsExcludedLeafFiles(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "keep.txt"), []byte("keep\n"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "big.txt"), make([]byte, oneMegabyte+1))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "notes.secret"), []byte("hidden\n"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "secret_dir", "inner.txt"), []byte("inner\n"))

	document, generateError := commands.GenerateDocument(rootDirectory, commands.Options{
		ExcludePatterns: []string{"secret"},
		MaxFileSizeMB:   1,
	})
	require.NoError(testingHandle, generateError)

	require.Equal(testingHandle, 1, document.Statistics.ProcessedFiles)
	require.Equal(testingHandle, []string{"keep.txt"}, document.Statistics.ProcessedFileList)
	require.Equal(testingHandle, []string{"big.txt", "notes.secret"}, document.Statistics.SkippedFileList)
	require.Equal(testingHandle, 2, document.Statistics.SkippedFiles)
	require.NotContains(testingHandle, document.Content, "big.txt")
	require.NotContains(testingHandle, document.Content, "inner")
}

func TestGenerateDocumentSizeThresholdBoundary(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "at_limit.txt"), []byte(strings.Repeat("a", oneMegabyte)))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "over_limit.txt"), []byte(strings.Repeat("a", oneMegabyte+1)))

	document, generateError := commands.GenerateDocument(rootDirectory, commands.Options{MaxFileSizeMB: 1})
	require.NoError(testingHandle, generateError)

	require.Equal(testingHandle, []string{"at_limit.txt"}, document.Statistics.ProcessedFileList)
	require.Equal(testingHandle, []string{"over_limit.txt"}, document.Statistics.SkippedFileList)
	require.Equal(testingHandle, int64(oneMegabyte), document.Statistics.TotalSize)
}

func TestProcessFileEncodingError(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	filePath := filepath.Join(rootDirectory, "latin1.txt")
	writeTestFile(testingHandle, filePath, []byte{'c', 'a', 'f', 0xE9, '\n'})

	var statistics types.Statistics
	section, processError := commands.ProcessFile(filePath, rootDirectory, &statistics)
	require.NoError(testingHandle, processError)

	require.Equal(testingHandle, "\n# latin1.txt\n\n```plaintext\n"+commands.EncodingErrorOmitted+"\n```", section)
	require.Equal(testingHandle, types.Statistics{SkippedFiles: 1, SkippedFileList: []string{"latin1.txt"}}, statistics)
}

func TestProcessFileNormalizesLineEndings(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	filePath := filepath.Join(rootDirectory, "nested", "run.sh")
	writeTestFile(testingHandle, filePath, []byte("echo one\r\necho two\recho three\n"))

	var statistics types.Statistics
	section, processError := commands.ProcessFile(filePath, rootDirectory, &statistics)
	require.NoError(testingHandle, processError)

	require.Equal(testingHandle, "\n# nested/run.sh\n\n```bash\necho one\necho two\necho three\n\n```", section)
	require.Equal(testingHandle, 1, statistics.ProcessedFiles)
	require.Equal(testingHandle, int64(30), statistics.TotalSize)
}

func TestGenerateDocumentVisitsEveryFileOnce(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	fileNames := []string{"one.md", "two/three.json", "two/four.bin", "five/six/seven.yaml", "dist.txt"}
	for _, fileName := range fileNames {
		content := []byte("content\n")
		if strings.HasSuffix(fileName, ".bin") {
			content = []byte{0x00, 0x01}
		}
		writeTestFile(testingHandle, filepath.Join(rootDirectory, filepath.FromSlash(fileName)), content)
	}

	document, generateError := commands.GenerateDocument(rootDirectory, defaultOptions())
	require.NoError(testingHandle, generateError)

	statistics := document.Statistics
	require.Equal(testingHandle, len(fileNames), statistics.ProcessedFiles+statistics.SkippedFiles)
	require.ElementsMatch(testingHandle, fileNames, append(append([]string{}, statistics.ProcessedFileList...), statistics.SkippedFileList...))
	require.Equal(testingHandle, []string{"five/six/seven.yaml", "one.md", "two/three.json"}, statistics.ProcessedFileList)
	require.Equal(testingHandle, []string{"dist.txt", "two/four.bin"}, statistics.SkippedFileList)
}

func TestGenerateDocumentRejectsMissingRoot(testingHandle *testing.T) {
	missingDirectory := filepath.Join(testingHandle.TempDir(), "missing")
	_, generateError := commands.GenerateDocument(missingDirectory, defaultOptions())
	require.Error(testingHandle, generateError)
}

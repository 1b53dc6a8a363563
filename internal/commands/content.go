package commands

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/nathanclairmonte/foldup/internal/types"
	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	fileHeaderFormat = "\n# %s\n"
	fenceDelimiter   = "```"
	sectionSeparator = "\n"

	// BinaryContentOmitted replaces the body of files classified as binary.
	BinaryContentOmitted = "<!-- binary file contents omitted -->"
	// EncodingErrorOmitted replaces the body of files that are not valid UTF-8.
	EncodingErrorOmitted = "<!-- file contents omitted: encoding error -->"

	errorReadFileFormat = "reading file %s: %w"
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ProcessFile renders the markdown section for filePath and records the outcome in statistics.
// Binary and undecodable files get a placeholder body and are recorded as skipped.
func ProcessFile(filePath string, rootDirectoryPath string, statistics *types.Statistics) (string, error) {
	relativePath := utils.RelativePathOrSelf(filePath, rootDirectoryPath)
	header := fmt.Sprintf(fileHeaderFormat, relativePath)

	if utils.IsFileBinary(filePath) {
		statistics.RecordSkipped(relativePath)
		return renderFileSection(header, utils.PlaintextLanguage, BinaryContentOmitted), nil
	}

	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return "", fmt.Errorf(errorReadFileFormat, filePath, readError)
	}
	if !utf8.Valid(fileBytes) {
		statistics.RecordSkipped(relativePath)
		return renderFileSection(header, utils.PlaintextLanguage, EncodingErrorOmitted), nil
	}

	statistics.RecordProcessed(relativePath, int64(len(fileBytes)))
	return renderFileSection(header, utils.FenceLanguage(filePath), newlineNormalizer.Replace(string(fileBytes))), nil
}

func renderFileSection(header string, language string, body string) string {
	return strings.Join([]string{header, fenceDelimiter + language, body, fenceDelimiter}, sectionSeparator)
}

// Package types defines the data structures shared between foldup packages.
package types

// Statistics accumulates per-run counts while a document is generated.
// Every visited file lands in exactly one of the two lists.
type Statistics struct {
	ProcessedFiles    int
	SkippedFiles      int
	TotalSize         int64
	ProcessedFileList []string
	SkippedFileList   []string
}

// RecordProcessed adds a file whose contents were embedded in the document.
func (statistics *Statistics) RecordProcessed(relativePath string, sizeBytes int64) {
	statistics.ProcessedFiles++
	statistics.TotalSize += sizeBytes
	statistics.ProcessedFileList = append(statistics.ProcessedFileList, relativePath)
}

// RecordSkipped adds a file that was excluded, binary, or not decodable as text.
func (statistics *Statistics) RecordSkipped(relativePath string) {
	statistics.SkippedFiles++
	statistics.SkippedFileList = append(statistics.SkippedFileList, relativePath)
}

// Document is the result of a generation pass.
type Document struct {
	Content    string
	Statistics Statistics
}

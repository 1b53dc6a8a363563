package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nathanclairmonte/foldup/internal/types"
	"github.com/nathanclairmonte/foldup/internal/utils"
)

// Summary describes a completed run for terminal reporting.
type Summary struct {
	RootPath       string
	OutputPath     string
	OutputSize     int64
	Statistics     types.Statistics
	ShowFileLists  bool
	EstimateTokens bool
	TokenCount     int
}

const (
	processingLineFormat = "Processing directory: %s\n"
	successLineFormat    = "Successfully generated: %s\n"
	summaryLineFormat    = "  %-22s %s\n"
	fileListEntryFormat  = "    %s\n"

	labelFilesProcessed = "Files processed:"
	labelFilesSkipped   = "Files skipped:"
	labelTotalSize      = "Total size processed:"
	labelOutputSize     = "Output size:"
	labelEstimatedToken = "Estimated tokens:"
	headingProcessed    = "Processed files:"
	headingSkipped      = "Skipped files:"
)

// ColorEnabled reports whether writer is a terminal that should receive coloured output.
func ColorEnabled(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// PrintProcessing announces the directory about to be processed.
func PrintProcessing(writer io.Writer, rootPath string) {
	fmt.Fprintf(writer, processingLineFormat, rootPath)
}

// PrintSummary writes the human-readable statistics of a run to writer.
// Colour is applied only when writer is a terminal.
func PrintSummary(writer io.Writer, summary Summary) {
	colorize := ColorEnabled(writer)
	success := newPainter(colorize, color.FgGreen, color.Bold)
	label := newPainter(colorize, color.FgCyan)
	warning := newPainter(colorize, color.FgYellow)

	fmt.Fprint(writer, success.Sprintf(successLineFormat, summary.OutputPath))
	fmt.Fprintf(writer, summaryLineFormat, label.Sprint(labelFilesProcessed), fmt.Sprint(summary.Statistics.ProcessedFiles))
	fmt.Fprintf(writer, summaryLineFormat, label.Sprint(labelFilesSkipped), fmt.Sprint(summary.Statistics.SkippedFiles))
	fmt.Fprintf(writer, summaryLineFormat, label.Sprint(labelTotalSize), utils.FormatFileSize(summary.Statistics.TotalSize))
	fmt.Fprintf(writer, summaryLineFormat, label.Sprint(labelOutputSize), utils.FormatFileSize(summary.OutputSize))

	if summary.EstimateTokens {
		fmt.Fprintf(writer, summaryLineFormat, label.Sprint(labelEstimatedToken), fmt.Sprint(summary.TokenCount))
	}

	if !summary.ShowFileLists {
		return
	}
	fmt.Fprintln(writer, label.Sprint(headingProcessed))
	for _, processedPath := range summary.Statistics.ProcessedFileList {
		fmt.Fprintf(writer, fileListEntryFormat, processedPath)
	}
	fmt.Fprintln(writer, warning.Sprint(headingSkipped))
	for _, skippedPath := range summary.Statistics.SkippedFileList {
		fmt.Fprintf(writer, fileListEntryFormat, skippedPath)
	}
}

func newPainter(enabled bool, attributes ...color.Attribute) *color.Color {
	painter := color.New(attributes...)
	if enabled {
		painter.EnableColor()
	} else {
		painter.DisableColor()
	}
	return painter
}

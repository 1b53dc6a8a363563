// Package clipboard places generated documents on the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	warningClipboardMessage = "could not copy document to clipboard"
	copiedClipboardMessage  = "document copied to clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using the host clipboard utilities.
type Service struct{}

// NewService constructs a clipboard Service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// CopyDocument copies document with copier. A clipboard failure is logged and reported as false.
func CopyDocument(copier Copier, document string, logger *zap.Logger) bool {
	activeLogger := utils.LoggerOrNop(logger)
	if copyError := copier.Copy(document); copyError != nil {
		activeLogger.Warn(warningClipboardMessage, zap.Error(copyError))
		return false
	}
	activeLogger.Debug(copiedClipboardMessage, zap.Int("bytes", len(document)))
	return true
}

var _ Copier = (*Service)(nil)

// Package remote fetches git repository targets into temporary checkouts.
package remote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	gitSuffix           = ".git"
	sshPrefix           = "git@"
	temporaryDirPattern = "foldup-git-"
	fallbackCheckoutDir = "repository"

	cloningMessage = "cloning repository"

	errorCreateTemporaryDirectoryFormat = "create temporary directory: %w"
	errorCloneRepositoryFormat          = "clone repository %s: %w"
)

// Checkout is a shallow clone living in a temporary directory.
type Checkout struct {
	// Path is the working tree of the clone.
	Path string

	temporaryDirectory string
}

// Cleanup removes the temporary directory holding the checkout.
func (checkout Checkout) Cleanup() error {
	if checkout.temporaryDirectory == "" {
		return nil
	}
	return os.RemoveAll(checkout.temporaryDirectory)
}

// IsGitURL reports whether target names a git repository rather than a local directory.
func IsGitURL(target string) bool {
	trimmed := strings.TrimSpace(target)
	return strings.HasSuffix(trimmed, gitSuffix) || strings.HasPrefix(trimmed, sshPrefix)
}

// RepositoryName derives the checkout directory name from a repository URL.
func RepositoryName(repositoryURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(repositoryURL), "/")
	trimmed = strings.TrimSuffix(trimmed, gitSuffix)
	if separatorIndex := strings.LastIndexAny(trimmed, "/:"); separatorIndex >= 0 {
		trimmed = trimmed[separatorIndex+1:]
	}
	if trimmed == "" || trimmed == "." || trimmed == ".." {
		return fallbackCheckoutDir
	}
	return trimmed
}

// Clone performs a shallow clone of the default branch of repositoryURL.
// The caller owns the returned Checkout and must call Cleanup.
func Clone(ctx context.Context, repositoryURL string, logger *zap.Logger) (Checkout, error) {
	temporaryDirectory, mkdirError := os.MkdirTemp("", temporaryDirPattern)
	if mkdirError != nil {
		return Checkout{}, fmt.Errorf(errorCreateTemporaryDirectoryFormat, mkdirError)
	}
	checkout := Checkout{
		Path:               filepath.Join(temporaryDirectory, RepositoryName(repositoryURL)),
		temporaryDirectory: temporaryDirectory,
	}

	utils.LoggerOrNop(logger).Info(cloningMessage, zap.String("url", repositoryURL), zap.String("path", checkout.Path))
	_, cloneError := git.PlainCloneContext(ctx, checkout.Path, false, &git.CloneOptions{
		URL:           repositoryURL,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if cloneError != nil {
		_ = checkout.Cleanup()
		return Checkout{}, fmt.Errorf(errorCloneRepositoryFormat, repositoryURL, cloneError)
	}
	return checkout, nil
}

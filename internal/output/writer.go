// Package output writes generated documents to disk and reports run statistics.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileSuffix        = ".lock"
	temporaryFilePattern  = ".foldup-*"
	outputFilePermissions = 0o644
	outputDirPermissions  = 0o755

	errorCreateDirectoryFormat = "create output directory %s: %w"
	errorAcquireLockFormat     = "acquire lock on %s: %w"
	errorCreateTemporaryFormat = "create temporary file in %s: %w"
	errorWriteTemporaryFormat  = "write temporary file %s: %w"
	errorRenameOutputFormat    = "rename %s to %s: %w"
	errorRemoveLockFormat      = "remove lock file %s: %w"
)

// WriteDocument writes content to outputPath while holding an exclusive lock on
// outputPath+".lock", removed again once the write completes. The content is staged in a temporary file in the same
// directory and renamed into place, so readers never observe a partial document.
func WriteDocument(outputPath string, content string) (err error) {
	outputDirectory := filepath.Dir(outputPath)
	if mkdirError := os.MkdirAll(outputDirectory, outputDirPermissions); mkdirError != nil {
		return fmt.Errorf(errorCreateDirectoryFormat, outputDirectory, mkdirError)
	}

	fileLock := flock.New(outputPath + lockFileSuffix)
	if lockError := fileLock.Lock(); lockError != nil {
		return fmt.Errorf(errorAcquireLockFormat, outputPath, lockError)
	}
	defer func() {
		if unlockError := fileLock.Unlock(); unlockError != nil {
			if err == nil {
				err = unlockError
			}
			return
		}
		if removeError := os.Remove(fileLock.Path()); removeError != nil && !errors.Is(removeError, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf(errorRemoveLockFormat, fileLock.Path(), removeError)
		}
	}()

	return atomicWrite(outputPath, []byte(content))
}

func atomicWrite(outputPath string, data []byte) error {
	outputDirectory := filepath.Dir(outputPath)
	temporaryFile, createError := os.CreateTemp(outputDirectory, temporaryFilePattern)
	if createError != nil {
		return fmt.Errorf(errorCreateTemporaryFormat, outputDirectory, createError)
	}
	temporaryPath := temporaryFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = temporaryFile.Close()
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.Write(data); writeError != nil {
		return fmt.Errorf(errorWriteTemporaryFormat, temporaryPath, writeError)
	}
	if syncError := temporaryFile.Sync(); syncError != nil {
		return fmt.Errorf(errorWriteTemporaryFormat, temporaryPath, syncError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorWriteTemporaryFormat, temporaryPath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, outputFilePermissions); chmodError != nil {
		return fmt.Errorf(errorWriteTemporaryFormat, temporaryPath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, outputPath); renameError != nil {
		return fmt.Errorf(errorRenameOutputFormat, temporaryPath, outputPath, renameError)
	}
	renamed = true
	return nil
}

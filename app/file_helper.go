package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/scriptscan/domain"
)

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// FileExists reports whether path exists and is a regular file
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// IsHTMLDocument checks the extension of path
func (h *FileHelper) IsHTMLDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// ValidateDocument checks that path names a readable document
func (h *FileHelper) ValidateDocument(path string) error {
	if path == "" {
		return domain.NewInvalidInputError("no document specified", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewFileNotFoundError(path, err)
		}
		return domain.NewInvalidInputError(fmt.Sprintf("cannot access %s", path), err)
	}
	if info.IsDir() {
		return domain.NewInvalidInputError(fmt.Sprintf("%s is a directory", path), nil)
	}
	return nil
}

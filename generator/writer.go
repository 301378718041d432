package generator

import (
	"fmt"
	"path/filepath"

	"filedex/models"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// WriteDocument writes files as an indented JSON array to name, replacing
// any previous content. The document is written to a temporary file in the
// same directory first and renamed into place.
func WriteDocument(fs afero.Fs, name string, files []models.FileMetadata) error {
	if files == nil {
		files = []models.FileMetadata{}
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(name)
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := fs.Rename(tmpName, name); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}

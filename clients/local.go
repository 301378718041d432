package clients

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"filedex/models"

	"github.com/spf13/afero"
)

// DefaultRawHost serves raw file content for GitHub repositories
const DefaultRawHost = "raw.githubusercontent.com"

// LocalClient lists the regular files of a local directory
type LocalClient struct {
	Dir    string
	Host   string
	Owner  string
	Repo   string
	Branch string
	fs     afero.Fs
}

// LocalConfig holds the directory and download URL coordinates for LocalClient
type LocalConfig struct {
	Dir    string
	Host   string
	Owner  string
	Repo   string
	Branch string
}

// NewLocalClient creates a new local client on top of fs
func NewLocalClient(fs afero.Fs, cfg LocalConfig) *LocalClient {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Host == "" {
		cfg.Host = DefaultRawHost
	}

	return &LocalClient{
		Dir:    cfg.Dir,
		Host:   strings.Trim(cfg.Host, "/"),
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Branch: cfg.Branch,
		fs:     fs,
	}
}

// ListFiles lists regular files in the directory, not recursing into folders
func (lc *LocalClient) ListFiles(ctx context.Context) ([]models.FileMetadata, error) {
	entries, err := afero.ReadDir(lc.fs, lc.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", lc.Dir, err)
	}

	var files []models.FileMetadata
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Mode().IsRegular() {
			continue
		}

		name := entry.Name()
		files = append(files, models.FileMetadata{
			Name:         name,
			Path:         name,
			Size:         models.NewSize(entry.Size()),
			LastModified: models.NewTimestamp(entry.ModTime()),
			DownloadURL:  lc.DownloadURL(name),
			FileType:     models.FileType(name),
		})
	}

	return files, nil
}

// DownloadURL builds https://<host>/<owner>/<repo>/<branch>/<file>
func (lc *LocalClient) DownloadURL(name string) string {
	u := url.URL{
		Scheme: "https",
		Host:   lc.Host,
		Path:   path.Join("/", lc.Owner, lc.Repo, lc.Branch, name),
	}
	return u.String()
}

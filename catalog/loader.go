package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"filedex/exclusion"
	"filedex/models"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// ErrLoad wraps every failure to obtain a usable metadata document
var ErrLoad = errors.New("failed to load file metadata")

// Loader fetches the metadata document from a file or an http(s) URL
type Loader struct {
	source  string
	fs      afero.Fs
	client  *resty.Client
	exclude exclusion.Predicate
}

// LoaderOptions configures a Loader
type LoaderOptions struct {
	Fs      afero.Fs
	Exclude exclusion.Predicate
	Timeout time.Duration
}

// NewLoader creates a loader for source
func NewLoader(source string, opts LoaderOptions) *Loader {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Exclude == nil {
		opts.Exclude = exclusion.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Accept", "application/json")

	return &Loader{
		source:  source,
		fs:      opts.Fs,
		client:  client,
		exclude: opts.Exclude,
	}
}

// Source returns where the document is loaded from
func (l *Loader) Source() string {
	return l.source
}

// Load fetches and decodes the document, dropping excluded names
func (l *Loader) Load(ctx context.Context) ([]models.FileMetadata, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var files []models.FileMetadata
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("%w: malformed document: %w", ErrLoad, err)
	}

	kept := files[:0]
	for _, file := range files {
		if !l.exclude.Excluded(file.Name) {
			kept = append(kept, file)
		}
	}
	return kept, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if !isURL(l.source) {
		return afero.ReadFile(l.fs, l.source)
	}

	resp, err := l.client.R().
		SetContext(ctx).
		Get(l.source)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("HTTP error: status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

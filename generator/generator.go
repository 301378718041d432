package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"filedex/exclusion"
	"filedex/models"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// DefaultOutput is the file name of the generated document
const DefaultOutput = "files_metadata.json"

// Source lists the file universe of a listing
type Source interface {
	ListFiles(ctx context.Context) ([]models.FileMetadata, error)
}

// Enricher is implemented by sources that can look up a true modification
// time per file, such as a commit history
type Enricher interface {
	LastModified(ctx context.Context, path string) (time.Time, error)
}

// Generator produces the metadata document from a Source
type Generator struct {
	source  Source
	exclude exclusion.Predicate
	fs      afero.Fs
	now     func() time.Time
	log     *slog.Logger
}

// Dependencies configuration for creating a generator
type Dependencies struct {
	Source  Source
	Exclude exclusion.Predicate
	Fs      afero.Fs
	Now     func() time.Time
	Logger  *slog.Logger
}

// Config holds configuration for a generator run
type Config struct {
	Output string
	// Concurrency bounds the number of enrichment lookups in flight.
	// Values below 1 mean sequential.
	Concurrency int
}

// Result summarizes a generator run
type Result struct {
	Files          []models.FileMetadata
	Excluded       []string
	Duplicates     []string
	EnrichFailures int
	Output         string
}

// New creates a new generator
func New(d *Dependencies) *Generator {
	g := &Generator{
		source:  d.Source,
		exclude: d.Exclude,
		fs:      d.Fs,
		now:     d.Now,
		log:     d.Logger,
	}
	if g.exclude == nil {
		g.exclude = exclusion.Default()
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	return g
}

// Run lists, filters, enriches and writes the document. Nothing is written
// unless every step before the write succeeded.
func (g *Generator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if g.source == nil {
		return nil, fmt.Errorf("no source configured")
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	g.log.Info("generating metadata", "output", cfg.Output)

	listed, err := g.source.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	result := &Result{Output: cfg.Output}
	result.Files, result.Excluded, result.Duplicates = g.filter(listed, filepath.Base(cfg.Output))

	if enricher, ok := g.source.(Enricher); ok {
		result.EnrichFailures, err = g.enrich(ctx, enricher, result.Files, cfg.Concurrency)
		if err != nil {
			return nil, err
		}
	}

	if err := WriteDocument(g.fs, cfg.Output, result.Files); err != nil {
		return nil, err
	}

	g.summarize(result)
	return result, nil
}

// filter drops excluded and duplicate names, keeping listing order
func (g *Generator) filter(listed []models.FileMetadata, output string) (files []models.FileMetadata, excluded, duplicates []string) {
	seen := make(map[string]struct{}, len(listed))
	files = make([]models.FileMetadata, 0, len(listed))

	for _, file := range listed {
		if file.Name == output || g.exclude.Excluded(file.Name) {
			excluded = append(excluded, file.Name)
			continue
		}
		if _, ok := seen[file.Name]; ok {
			g.log.Warn("duplicate file name, keeping the first", "name", file.Name, "path", file.Path)
			duplicates = append(duplicates, file.Name)
			continue
		}
		seen[file.Name] = struct{}{}

		if file.FileType == "" {
			file.FileType = models.FileType(file.Name)
		}
		if file.Path == "" {
			file.Path = file.Name
		}
		files = append(files, file)
	}

	return files, excluded, duplicates
}

// enrich sets LastModified on every file. A failed lookup degrades the
// record to the current time and never removes it.
func (g *Generator) enrich(ctx context.Context, enricher Enricher, files []models.FileMetadata, concurrency int) (int, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var failures atomic.Int32

	eg := new(errgroup.Group)
	eg.SetLimit(concurrency)

	for i := range files {
		file := &files[i]
		eg.Go(func() error {
			modified, err := enricher.LastModified(ctx, file.Path)
			if err != nil {
				failures.Add(1)
				file.LastModified = models.NewTimestamp(g.now())
				g.log.Warn("failed to get last modified time, using current time",
					"file", file.Path, "error", err)
				return nil
			}
			file.LastModified = models.NewTimestamp(modified)
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("enrichment interrupted: %w", err)
	}

	return int(failures.Load()), nil
}

func (g *Generator) summarize(result *Result) {
	var total uint64
	for _, file := range result.Files {
		if file.Size.Known {
			total += uint64(file.Size.Bytes)
		}
		g.log.Debug("included", "name", file.Name, "type", file.FileType)
	}

	g.log.Info("metadata generated",
		"output", result.Output,
		"files", len(result.Files),
		"excluded", len(result.Excluded),
		"duplicates", len(result.Duplicates),
		"enrich_failures", result.EnrichFailures,
		"total_size", humanize.Bytes(total),
	)
}

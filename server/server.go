package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"filedex/models"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	slogGin "github.com/samber/slog-gin"
)

// DefaultAddr is the address the catalog is served on
const DefaultAddr = ":8080"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Config holds configuration for the catalog server
type Config struct {
	Addr       string
	DateLayout string
	// CacheSize is the number of rendered pages kept in memory
	CacheSize int
}

// Server serves the interactive catalog of a metadata document
type Server struct {
	config *Config
	docs   *documentStore
	pages  *lru.Cache[pageKey, []byte]
	tpl    *template.Template
	engine *gin.Engine
	server *http.Server
}

// New creates a new catalog server
func New(config *Config, loader Loader) (*Server, error) {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.CacheSize <= 0 {
		config.CacheSize = 256
	}

	pages, err := lru.New[pageKey, []byte](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	funcMap := template.FuncMap{
		"ago": func(ts models.Timestamp) string {
			t, err := ts.Time()
			if err != nil {
				return ""
			}
			return humanize.Time(t)
		},
	}
	tpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		config: config,
		docs:   newDocumentStore(loader),
		pages:  pages,
		tpl:    tpl,
	}
	s.engine = s.routes()
	s.server = &http.Server{
		Addr:              config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(slogGin.NewWithConfig(slog.Default().WithGroup("http"), slogGin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/", s.index)
	r.GET("/files_metadata.json", s.document)
	r.POST("/theme", s.setTheme)
	r.POST("/reload", s.reload)

	return r
}

// Handler returns the http handler of the server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	slog.Info("catalog server start", "addr", s.config.Addr)
	defer slog.Info("catalog server stop")

	// a failed preload is reported to visitors, it does not stop the server
	_, _, _ = s.docs.Get(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) reload(c *gin.Context) {
	s.docs.Invalidate()
	s.pages.Purge()
	c.Redirect(http.StatusSeeOther, "/")
}

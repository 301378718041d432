package server

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"

	"filedex/catalog"
	"filedex/models"
	"filedex/theme"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const maxPageSize = 500

type pageKey struct {
	generation uint64
	state      catalog.ViewState
	preference theme.Preference
	applied    theme.Theme
}

// pageData is what the index template renders
type pageData struct {
	catalog.View
	Preference  theme.Preference
	Applied     theme.Theme
	Preferences []theme.Preference
	SortOptions []catalog.SortOption
	PageSizes   []int
}

// PageURL links to page keeping the rest of the state
func (p pageData) PageURL(page int) string {
	return stateURL(p.State.WithPage(page))
}

// ReturnURL is the current location
func (p pageData) ReturnURL() string {
	return stateURL(p.State)
}

func stateURL(s catalog.ViewState) string {
	q := url.Values{}
	if s.Search != "" {
		q.Set("q", s.Search)
	}
	q.Set("sort", string(s.Sort))
	q.Set("size", strconv.Itoa(s.PageSize))
	q.Set("page", strconv.Itoa(s.Page))
	return "/?" + q.Encode()
}

// stateFromQuery reads the view state from the request. Forms submit
// page=1 when the search or the page size changes.
func stateFromQuery(c *gin.Context) catalog.ViewState {
	state := catalog.DefaultViewState()

	if size, err := strconv.Atoi(c.Query("size")); err == nil && size > 0 {
		state = state.WithPageSize(min(size, maxPageSize))
	}
	state = state.WithSearch(c.Query("q"))
	state = state.WithSort(catalog.SortMode(c.Query("sort")))
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		state = state.WithPage(page)
	}

	return state
}

func (s *Server) index(c *gin.Context) {
	c.Header("Accept-CH", colorSchemeHint)
	c.Header("Vary", colorSchemeHint+", Cookie")

	files, generation, err := s.docs.Get(c.Request.Context())
	if err != nil {
		s.serveError(c, err)
		return
	}

	state := stateFromQuery(c)
	tracker := trackerFor(c)
	key := pageKey{
		generation: generation,
		state:      state,
		preference: tracker.Preference(),
		applied:    tracker.Effective(),
	}

	if body, ok := s.pages.Get(key); ok {
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
		return
	}

	data := pageData{
		View:        catalog.Render(files, state, catalog.RenderOptions{DateLayout: s.config.DateLayout}),
		Preference:  tracker.Preference(),
		Applied:     tracker.Effective(),
		Preferences: theme.Preferences,
		SortOptions: catalog.SortOptions,
		PageSizes:   catalog.PageSizes,
	}

	var buf bytes.Buffer
	if err := s.tpl.ExecuteTemplate(&buf, "index.html.tmpl", data); err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	s.pages.Add(key, buf.Bytes())
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) document(c *gin.Context) {
	files, _, err := s.docs.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if files == nil {
		files = []models.FileMetadata{}
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) serveError(c *gin.Context, loadErr error) {
	tracker := trackerFor(c)

	var buf bytes.Buffer
	err := s.tpl.ExecuteTemplate(&buf, "error.html.tmpl", map[string]any{
		"Error":   loadErr.Error(),
		"Applied": tracker.Effective(),
	})
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", buf.Bytes())
}

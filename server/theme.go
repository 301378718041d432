package server

import (
	"net/http"
	"strings"
	"time"

	"filedex/theme"

	"github.com/gin-gonic/gin"
)

const (
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
	themeCookieAge  = 365 * 24 * time.Hour
)

// cookieStore keeps the theme preference in a cookie
type cookieStore struct {
	c *gin.Context
}

func (s cookieStore) Load() (string, bool) {
	v, err := s.c.Cookie(theme.StorageKey)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s cookieStore) Save(value string) error {
	http.SetCookie(s.c.Writer, &http.Cookie{
		Name:     theme.StorageKey,
		Value:    value,
		Path:     "/",
		MaxAge:   int(themeCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// prefersDark reads the OS color scheme from the client hint
func prefersDark(c *gin.Context) bool {
	return strings.EqualFold(strings.Trim(c.GetHeader(colorSchemeHint), `"`), "dark")
}

func trackerFor(c *gin.Context) *theme.Tracker {
	return theme.NewTracker(cookieStore{c: c}, prefersDark(c))
}

// setTheme stores the submitted preference and goes back to the catalog
func (s *Server) setTheme(c *gin.Context) {
	tracker := trackerFor(c)
	if _, err := tracker.Select(theme.Parse(c.PostForm("theme"))); err != nil {
		c.String(http.StatusInternalServerError, "failed to store theme")
		return
	}

	c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return")))
}

// safeReturn only allows local absolute paths as redirect targets
func safeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return "/"
	}
	return target
}

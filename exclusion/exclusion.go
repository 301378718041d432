package exclusion

import (
	"path"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultPatterns are the operational files of the site itself that never
// belong in a listing
var DefaultPatterns = []string{
	// site assets
	"index.html",
	"style.css",
	"script.js",
	// generator artefacts
	"files_metadata.json",
	"generate_metadata.js",
	"playlists.py",
	// manifests and lockfiles
	"package.json",
	"package-lock.json",
	"Gemfile",
	"Gemfile.lock",
	"requirements.txt",
	"go.mod",
	"go.sum",
	// ci and config
	".gitlab-ci.yml",
	".gitlab-ci.yaml",
	".gitignore",
	"_config.yml",
	"README.md",
	".filedex.yaml",
	".env",
}

// Predicate reports whether a file name must be left out of a listing
type Predicate interface {
	Excluded(name string) bool
}

// Matcher excludes names matching a set of gitignore-style patterns
type Matcher struct {
	patterns []string
	ignore   *gitignore.GitIgnore
}

// New compiles patterns into a Matcher
func New(patterns ...string) *Matcher {
	lines := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p != "" {
			lines = append(lines, p)
		}
	}

	return &Matcher{
		patterns: lines,
		ignore:   gitignore.CompileIgnoreLines(lines...),
	}
}

// Default returns a Matcher over DefaultPatterns followed by extra
func Default(extra ...string) *Matcher {
	patterns := make([]string, 0, len(DefaultPatterns)+len(extra))
	patterns = append(patterns, DefaultPatterns...)
	patterns = append(patterns, extra...)
	return New(patterns...)
}

// Excluded implements Predicate. Only the base name is matched.
func (m *Matcher) Excluded(name string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	return m.ignore.MatchesPath(path.Base(name))
}

// Patterns returns the compiled patterns in order
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// Func adapts a plain function to Predicate
type Func func(name string) bool

// Excluded implements Predicate
func (f Func) Excluded(name string) bool {
	return f(name)
}

package models

import (
	"bytes"
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TimestampLayout is the ISO-8601 layout used for lastModified values
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DefaultFileType is used for names without an extension
const DefaultFileType = "file"

// FileMetadata describes one listed file
type FileMetadata struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Size         Size      `json:"size"`
	LastModified Timestamp `json:"lastModified"`
	DownloadURL  string    `json:"download_url"`
	FileType     string    `json:"file_type"`
}

// Size is a byte count that may be unknown.
// Anything other than a non-negative JSON number decodes as unknown.
type Size struct {
	Bytes int64
	Known bool
}

// NewSize returns a known size
func NewSize(n int64) Size {
	return Size{Bytes: n, Known: n >= 0}
}

// MarshalJSON implements json.Marshaler
func (s Size) MarshalJSON() ([]byte, error) {
	if !s.Known {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, s.Bytes, 10), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Size) UnmarshalJSON(data []byte) error {
	*s = Size{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || data[0] == '{' || data[0] == '[' {
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= math.MaxInt64 {
		return nil
	}

	*s = Size{Bytes: int64(v), Known: true}
	return nil
}

// Timestamp is the raw lastModified value of a record. JSON strings are kept
// as is. Any other JSON value is kept as its literal text, which does not
// parse as a time, so a single odd record never fails the document.
type Timestamp string

// NewTimestamp formats t with FormatTimestamp
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(FormatTimestamp(t))
}

// UnmarshalJSON implements json.Unmarshaler
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = ""
		return nil
	}
	if data[0] != '"' {
		*ts = Timestamp(data)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*ts = Timestamp(data)
		return nil
	}
	*ts = Timestamp(s)
	return nil
}

// Time parses the timestamp with ParseTimestamp
func (ts Timestamp) Time() (time.Time, error) {
	return ParseTimestamp(string(ts))
}

// FileType derives the lowercase extension of name without its dot,
// or DefaultFileType when name has none. Leading dots do not start an
// extension, so ".gitignore" has none.
func FileType(name string) string {
	base := strings.TrimLeft(path.Base(name), ".")
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(base), "."))
	if ext == "" {
		return DefaultFileType
	}
	return ext
}

// FormatTimestamp formats t as an UTC ISO-8601 string with millisecond precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp as written by FormatTimestamp
// or any RFC 3339 variant
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}

package clients

import (
	"context"
	"testing"
	"time"

	"filedex/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalListFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("site/assets", 0o755))
	require.NoError(t, afero.WriteFile(fs, "site/Report.PDF", make([]byte, 1536), 0o644))
	require.NoError(t, afero.WriteFile(fs, "site/LICENSE", []byte("mit"), 0o644))

	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, fs.Chtimes("site/Report.PDF", mtime, mtime))

	lc := NewLocalClient(fs, LocalConfig{
		Dir:    "site",
		Owner:  "octo",
		Repo:   "octo.github.io",
		Branch: "main",
	})

	files, err := lc.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)

	// afero.ReadDir sorts by name
	assert.Equal(t, "LICENSE", files[0].Name)
	assert.Equal(t, "file", files[0].FileType)
	assert.Equal(t, int64(3), files[0].Size.Bytes)

	assert.Equal(t, "Report.PDF", files[1].Name)
	assert.Equal(t, "Report.PDF", files[1].Path)
	assert.Equal(t, "pdf", files[1].FileType)
	assert.Equal(t, int64(1536), files[1].Size.Bytes)
	assert.Equal(t, models.Timestamp("2024-01-02T03:04:05.000Z"), files[1].LastModified)
	assert.Equal(t, "https://raw.githubusercontent.com/octo/octo.github.io/main/Report.PDF", files[1].DownloadURL)
}

func TestLocalListFilesMissingDir(t *testing.T) {
	lc := NewLocalClient(afero.NewMemMapFs(), LocalConfig{Dir: "nope"})

	_, err := lc.ListFiles(context.Background())
	assert.Error(t, err)
}

func TestLocalDownloadURL(t *testing.T) {
	lc := NewLocalClient(afero.NewMemMapFs(), LocalConfig{
		Host:   "gitlab.example.com/",
		Owner:  "team",
		Repo:   "files",
		Branch: "release",
	})

	assert.Equal(t, "https://gitlab.example.com/team/files/release/my%20file.txt", lc.DownloadURL("my file.txt"))
}

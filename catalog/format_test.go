package catalog

import (
	"testing"

	"filedex/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(models.NewSize(0)))
	assert.Equal(t, "512.00 B", FormatBytes(models.NewSize(512)))
	assert.Equal(t, "1.50 KB", FormatBytes(models.NewSize(1536)))
	assert.Equal(t, "1.00 MB", FormatBytes(models.NewSize(1<<20)))
	assert.Equal(t, "2.00 GB", FormatBytes(models.NewSize(2<<30)))
	assert.Equal(t, "2048.00 GB", FormatBytes(models.NewSize(2<<40)))
	assert.Equal(t, UnknownSize, FormatBytes(models.Size{}))
	assert.Equal(t, UnknownSize, FormatBytes(models.Size{Bytes: -1, Known: true}))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "02/01/2024 03:04:05", FormatDate("2024-01-02T03:04:05.000Z", DefaultDateLayout))
	assert.Equal(t, UnknownDate, FormatDate("", DefaultDateLayout))
	assert.Equal(t, UnknownDate, FormatDate("   ", DefaultDateLayout))
	assert.Equal(t, InvalidDate, FormatDate("last tuesday", DefaultDateLayout))
	assert.Equal(t, InvalidDate, FormatDate("1700000000000", DefaultDateLayout))
}

func TestFormatDateUsesUTC(t *testing.T) {
	assert.Equal(t, "01/01/2024 08:00:00", FormatDate("2024-01-01T10:00:00+02:00", DefaultDateLayout))
	assert.Equal(t, "31/12/2023 23:30:00", FormatDate("2024-01-01T01:30:00+02:00", DefaultDateLayout))
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "📄", Icon("Manual.PDF"))
	assert.Equal(t, "🎬", Icon("clip.mkv"))
	assert.Equal(t, DefaultIcon, Icon("README"))
	assert.Equal(t, DefaultIcon, Icon("data.parquet"))
}

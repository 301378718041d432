package catalog

import "filedex/models"

// DefaultIcon is shown for extensions missing from the icon table
const DefaultIcon = "📁"

var icons = map[string]string{
	"pdf":  "📄",
	"doc":  "📝",
	"docx": "📝",
	"xls":  "📊",
	"xlsx": "📊",
	"ppt":  "📊",
	"pptx": "📊",
	"txt":  "📑",
	"zip":  "🗜️",
	"rar":  "🗜️",
	"7z":   "🗜️",
	"exe":  "⚙️",
	"msi":  "⚙️",
	"jpg":  "🖼️",
	"jpeg": "🖼️",
	"png":  "🖼️",
	"gif":  "🖼️",
	"svg":  "🖼️",
	"mp3":  "🎵",
	"wav":  "🎵",
	"mp4":  "🎬",
	"avi":  "🎬",
	"mkv":  "🎬",
	"m3u":  "📺",
	"gz":   "🗜️",
}

// Icon returns the display glyph for name's extension
func Icon(name string) string {
	if icon, ok := icons[models.FileType(name)]; ok {
		return icon
	}
	return DefaultIcon
}

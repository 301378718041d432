package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"filedex/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the comparator used to order files
type SortMode string

const (
	SortName         SortMode = "name"
	SortNameDesc     SortMode = "nameDesc"
	SortDate         SortMode = "date"
	SortDateOldest   SortMode = "dateOldest"
	SortSize         SortMode = "size"
	SortSizeSmallest SortMode = "sizeSmallest"
	SortType         SortMode = "type"
	SortTypeDesc     SortMode = "typeDesc"
)

// SortOption describes a sort mode for a select control
type SortOption struct {
	Mode  SortMode
	Label string
}

// SortOptions lists every mode in display order
var SortOptions = []SortOption{
	{SortName, "Name (A-Z)"},
	{SortNameDesc, "Name (Z-A)"},
	{SortDate, "Newest first"},
	{SortDateOldest, "Oldest first"},
	{SortSize, "Largest first"},
	{SortSizeSmallest, "Smallest first"},
	{SortType, "Type (A-Z)"},
	{SortTypeDesc, "Type (Z-A)"},
}

type compareFunc func(a, b models.FileMetadata) int

// ParseSortMode returns the mode named s, or SortName if s is unknown
func ParseSortMode(s string) SortMode {
	for _, opt := range SortOptions {
		if string(opt.Mode) == s {
			return opt.Mode
		}
	}
	return SortName
}

// Sort returns a copy of files ordered by mode. Files comparing equal keep
// their relative order.
func Sort(files []models.FileMetadata, mode SortMode) []models.FileMetadata {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, comparator(ParseSortMode(string(mode))))
	return sorted
}

func comparator(mode SortMode) compareFunc {
	switch mode {
	case SortNameDesc:
		return reverse(compareName())
	case SortDate:
		return reverse(compareDate)
	case SortDateOldest:
		return compareDate
	case SortSize:
		return reverse(compareSize)
	case SortSizeSmallest:
		return compareSize
	case SortType:
		return compareType
	case SortTypeDesc:
		return reverse(compareType)
	default:
		return compareName()
	}
}

// compareName orders names the way a reader expects rather than by byte
// value. A collator is not safe for concurrent use, so each sort gets its own.
func compareName() compareFunc {
	col := collate.New(language.Und, collate.IgnoreCase)
	return func(a, b models.FileMetadata) int {
		return col.CompareString(a.Name, b.Name)
	}
}

func compareDate(a, b models.FileMetadata) int {
	return modTime(a).Compare(modTime(b))
}

func compareSize(a, b models.FileMetadata) int {
	return cmp.Compare(sizeOf(a), sizeOf(b))
}

func compareType(a, b models.FileMetadata) int {
	return strings.Compare(typeOf(a), typeOf(b))
}

func reverse(fn compareFunc) compareFunc {
	return func(a, b models.FileMetadata) int {
		return fn(b, a)
	}
}

func modTime(f models.FileMetadata) time.Time {
	t, err := f.LastModified.Time()
	if err != nil {
		return time.Time{}
	}
	return t
}

func sizeOf(f models.FileMetadata) int64 {
	if !f.Size.Known {
		return 0
	}
	return f.Size.Bytes
}

func typeOf(f models.FileMetadata) string {
	if f.FileType != "" {
		return f.FileType
	}
	return models.FileType(f.Name)
}

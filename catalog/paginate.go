package catalog

import (
	"strconv"

	"filedex/models"
)

// MaxPageButtons bounds the numbered buttons around the current page
const MaxPageButtons = 5

// ControlKind identifies a pagination control
type ControlKind int

const (
	ControlPrev ControlKind = iota
	ControlNext
	ControlPage
	ControlFirst
	ControlLast
	ControlEllipsis
)

// Control is one element of the pagination bar
type Control struct {
	Kind     ControlKind
	Page     int
	Label    string
	Active   bool
	Disabled bool
}

// Ellipsis reports whether c marks skipped pages
func (c Control) Ellipsis() bool {
	return c.Kind == ControlEllipsis
}

// Pagination is the ordered list of controls of the pagination bar
type Pagination struct {
	Controls []Control
}

// Numbered returns the page numbers of the numbered window
func (p Pagination) Numbered() []int {
	var pages []int
	for _, c := range p.Controls {
		if c.Kind == ControlPage {
			pages = append(pages, c.Page)
		}
	}
	return pages
}

// TotalPages returns ceil(n / pageSize)
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the window of files shown on the 1-based page
func Paginate(files []models.FileMetadata, page, pageSize int) []models.FileMetadata {
	if page < 1 || pageSize < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(files) {
		return nil
	}
	end := min(start+pageSize, len(files))
	return files[start:end]
}

// BuildPagination lays out the controls for page out of total pages. A
// single page needs no controls.
func BuildPagination(page, total int) Pagination {
	if total <= 1 {
		return Pagination{}
	}
	page = clamp(page, 1, total)

	const half = MaxPageButtons / 2

	start := max(1, page-half)
	end := min(total, page+half)
	if page <= half+1 {
		end = min(MaxPageButtons, total)
	} else if page >= total-half {
		start = max(total-MaxPageButtons+1, 1)
	}

	controls := []Control{{
		Kind:     ControlPrev,
		Page:     page - 1,
		Label:    "«",
		Disabled: page == 1,
	}}

	if start > 1 {
		controls = append(controls, Control{Kind: ControlFirst, Page: 1, Label: "1"})
		if start > 2 {
			controls = append(controls, Control{Kind: ControlEllipsis, Label: "..."})
		}
	}

	for i := start; i <= end; i++ {
		controls = append(controls, Control{
			Kind:   ControlPage,
			Page:   i,
			Label:  strconv.Itoa(i),
			Active: i == page,
		})
	}

	if end < total {
		if end < total-1 {
			controls = append(controls, Control{Kind: ControlEllipsis, Label: "..."})
		}
		controls = append(controls, Control{Kind: ControlLast, Page: total, Label: strconv.Itoa(total)})
	}

	controls = append(controls, Control{
		Kind:     ControlNext,
		Page:     page + 1,
		Label:    "»",
		Disabled: page == total,
	})

	return Pagination{Controls: controls}
}

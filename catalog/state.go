package catalog

import (
	"strings"

	"filedex/models"
)

// DefaultPageSize is the number of files shown per page
const DefaultPageSize = 15

// PageSizes are the page sizes offered to the user
var PageSizes = []int{10, 15, 20, 50, 100}

// ViewState is everything a render depends on besides the file list.
// It is a value; transitions return a modified copy.
type ViewState struct {
	Search   string
	Sort     SortMode
	Page     int
	PageSize int
}

// DefaultViewState is the state of a freshly loaded catalog
func DefaultViewState() ViewState {
	return ViewState{Sort: SortName, Page: 1, PageSize: DefaultPageSize}
}

// WithSearch changes the search term and returns to the first page
func (s ViewState) WithSearch(term string) ViewState {
	s.Search = term
	s.Page = 1
	return s
}

// WithPageSize changes the page size and returns to the first page
func (s ViewState) WithPageSize(size int) ViewState {
	if size < 1 {
		size = DefaultPageSize
	}
	s.PageSize = size
	s.Page = 1
	return s
}

// WithSort changes the sort mode, keeping the current page
func (s ViewState) WithSort(mode SortMode) ViewState {
	s.Sort = ParseSortMode(string(mode))
	return s
}

// WithPage navigates directly to page
func (s ViewState) WithPage(page int) ViewState {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// Item is a file prepared for display
type Item struct {
	models.FileMetadata
	Icon string
	Size string
	Date string
}

// View is the result of rendering a file list for a ViewState
type View struct {
	State         ViewState
	Items         []Item
	TotalFiles    int
	TotalFiltered int
	TotalPages    int
	Pagination    Pagination
	// FirstItem and LastItem are 1-based positions of the visible window
	FirstItem int
	LastItem  int
}

// Empty reports whether no file matched
func (v View) Empty() bool {
	return v.TotalFiltered == 0
}

// Filter keeps files whose name contains term, ignoring case.
// An empty term keeps every file.
func Filter(files []models.FileMetadata, term string) []models.FileMetadata {
	if term == "" {
		return files
	}

	term = strings.ToLower(term)
	filtered := make([]models.FileMetadata, 0, len(files))
	for _, file := range files {
		if strings.Contains(strings.ToLower(file.Name), term) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// Render filters, sorts and paginates files for state. The page is clamped
// to the available range. files is not modified.
func Render(files []models.FileMetadata, state ViewState, opts RenderOptions) View {
	if state.PageSize < 1 {
		state.PageSize = DefaultPageSize
	}
	state.Sort = ParseSortMode(string(state.Sort))

	sorted := Sort(Filter(files, state.Search), state.Sort)

	total := TotalPages(len(sorted), state.PageSize)
	state.Page = clamp(state.Page, 1, max(total, 1))

	visible := Paginate(sorted, state.Page, state.PageSize)
	items := make([]Item, 0, len(visible))
	for _, file := range visible {
		items = append(items, Item{
			FileMetadata: file,
			Icon:         Icon(file.Name),
			Size:         FormatBytes(file.Size),
			Date:         FormatDate(file.LastModified, opts.dateLayout()),
		})
	}

	view := View{
		State:         state,
		Items:         items,
		TotalFiles:    len(files),
		TotalFiltered: len(sorted),
		TotalPages:    total,
		Pagination:    BuildPagination(state.Page, total),
	}
	if len(items) > 0 {
		view.FirstItem = (state.Page-1)*state.PageSize + 1
		view.LastItem = view.FirstItem + len(items) - 1
	}
	return view
}

// RenderOptions tune the presentation of rendered items
type RenderOptions struct {
	DateLayout string
}

func (o RenderOptions) dateLayout() string {
	if o.DateLayout == "" {
		return DefaultDateLayout
	}
	return o.DateLayout
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

package pagination

// PageMeta describes how far an incremental load has progressed.
//
//nolint:revive // PageMeta reads better than Meta at call sites outside the package.
type PageMeta struct {
	PagesLoaded int  `json:"pages_loaded" yaml:"pages_loaded"`
	NextPage    int  `json:"next_page"    yaml:"next_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	ShownItems  int  `json:"shown_items"  yaml:"shown_items"`
	HasMore     bool `json:"has_more"     yaml:"has_more"`
}

// NewPageMeta builds metadata from the next page cursor and item counts.
// nextPage is the page that would be requested next, so pages loaded is
// nextPage-1.
func NewPageMeta(nextPage, pageSize, total, shown int, hasMore bool) PageMeta {
	loaded := nextPage - 1
	if loaded < 0 {
		loaded = 0
	}
	return PageMeta{
		PagesLoaded: loaded,
		NextPage:    nextPage,
		PageSize:    pageSize,
		TotalItems:  total,
		ShownItems:  shown,
		HasMore:     hasMore,
	}
}

package pagination

// PageSize is the fixed number of rows per dashboard page.
const PageSize = 10

// Params holds list pagination inputs from controllers.
type Params struct {
	Search string
	Page   int
}

// TotalPages returns how many pages the filtered row count spans.
// Zero rows yield zero pages; the list renders its empty state instead.
func TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + PageSize - 1) / PageSize)
}

// ClampPage bounds the requested page to [1, max(totalPages, 1)]. A narrowed
// filter can shrink totalPages below the page the client was on; clamping
// keeps the request on the last populated page instead of past the end, and
// an empty result always reports page 1.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Offset converts a 1-based page into a row offset.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

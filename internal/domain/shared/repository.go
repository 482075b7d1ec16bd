package shared

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "name",
		OrderDir: "asc",
		Filters:  make(map[string]any),
	}
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

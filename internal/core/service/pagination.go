package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// page normalises skip/limit pairs coming from query strings.
func page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	return skip, limit
}

package stats

// PageSizes are the selectable page sizes.
var PageSizes = []int{25, 50, 100}

func validPageSize(n int) bool {
	for _, size := range PageSizes {
		if n == size {
			return true
		}
	}
	return false
}

// Pagination describes the slice of a result set being shown.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	PageSize    int `json:"page_size"`
	TotalCount  int `json:"total_count"`
}

// Paginate clamps page and size and returns the half-open index range of the
// page within total items.
func Paginate(total, page, pageSize, defaultSize int) (Pagination, int, int) {
	if !validPageSize(pageSize) {
		pageSize = defaultSize
		if !validPageSize(pageSize) {
			pageSize = PageSizes[0]
		}
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalCount:  total,
	}, start, end
}

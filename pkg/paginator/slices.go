package paginator

// PaginateSlice returns the requested page of slice along with its
// pagination metadata. The input slice is not modified.
func PaginateSlice[T any](slice []T, query PaginateQuery) ([]T, Paginator) {
	query.Adjust()

	total := int64(len(slice))

	start := query.Offset()
	end := start + query.Limit
	if end > total {
		end = total
	}

	if start >= total {
		return []T{}, Paginator{
			Total:       total,
			Count:       0,
			PerPage:     query.Limit,
			CurrentPage: query.Page,
		}
	}

	page := slice[start:end]

	return page, Paginator{
		Total:       total,
		Count:       int64(len(page)),
		PerPage:     query.Limit,
		CurrentPage: query.Page,
	}
}

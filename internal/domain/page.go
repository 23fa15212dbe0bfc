package domain

const DefaultPageSize = 10

// PageLimit applies the default page size and caps it at maxSize.
func PageLimit(limit, maxSize int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if maxSize > 0 && limit > maxSize {
		return maxSize
	}
	return limit
}

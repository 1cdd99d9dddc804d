package trivia

// DefaultPageSize is the number of questions per listing page.
const DefaultPageSize = 10

// Paginate returns the half-open window [(page-1)*size, page*size) of items,
// clipped to its bounds. Pages before 1 or past the end yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 || page-1 >= (len(items)+size-1)/size {
		return []T{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

package models

// Sort orders a page by one property, named as it appears in JSON.
type Sort struct {
	Property   string
	Descending bool
}

// Pageable selects one zero-based page of a result set.
type Pageable struct {
	Page int
	Size int
	Sort []Sort
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a larger result set together with its totals.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

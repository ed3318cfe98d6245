package rest

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/lucas/ecommerce/models"
)

// Paging bounds the page size a client may request.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// DefaultPaging mirrors the usual defaults of page size 20 capped at 1000.
var DefaultPaging = Paging{DefaultSize: 20, MaxSize: 1000}

// Pageable reads page, size and sort from the query string.
// Invalid numbers fall back to defaults rather than failing the request.
func (p Paging) Pageable(r *http.Request) models.Pageable {
	q := r.URL.Query()

	page := 0
	if pStr := q.Get("page"); pStr != "" {
		if n, err := strconv.Atoi(pStr); err == nil && n > 0 {
			page = n
		}
	}

	size := p.DefaultSize
	if sStr := q.Get("size"); sStr != "" {
		if n, err := strconv.Atoi(sStr); err == nil && n > 0 {
			size = n
		}
	}
	if size > p.MaxSize {
		size = p.MaxSize
	}
	// page*size must not overflow the offset.
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}

	return models.Pageable{
		Page: page,
		Size: size,
		Sort: parseSort(q["sort"]),
	}
}

// parseSort accepts "prop", "prop,desc" and "a,b,asc" forms.
func parseSort(values []string) []models.Sort {
	var sorts []models.Sort
	for _, v := range values {
		parts := strings.Split(v, ",")
		desc := false
		if n := len(parts); n > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[n-1])) {
			case "desc":
				desc = true
				parts = parts[:n-1]
			case "asc":
				parts = parts[:n-1]
			}
		}
		for _, prop := range parts {
			prop = strings.TrimSpace(prop)
			if prop == "" {
				continue
			}
			sorts = append(sorts, models.Sort{Property: prop, Descending: desc})
		}
	}
	return sorts
}

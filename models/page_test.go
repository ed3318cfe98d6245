package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_TotalPages(t *testing.T) {
	testCases := []struct {
		name     string
		size     int
		total    int64
		expected int
	}{
		{name: "Empty result", size: 20, total: 0, expected: 0},
		{name: "Exact fit", size: 2, total: 4, expected: 2},
		{name: "Partial last page", size: 2, total: 5, expected: 3},
		{name: "Single page", size: 20, total: 6, expected: 1},
		{name: "Zero size", size: 0, total: 6, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := Page[Product]{Size: tc.size, TotalElements: tc.total}
			assert.Equal(t, tc.expected, page.TotalPages())
		})
	}
}

func TestPageable_Offset(t *testing.T) {
	assert.Equal(t, 0, Pageable{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, Pageable{Page: 2, Size: 20}.Offset())
}

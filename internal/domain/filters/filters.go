package filters

import (
	"math"
	"strconv"
)

const LastPage = "last"

type Filters struct {
	Page     int
	PageSize int
}

func (f *Filters) Limit() int {
	return f.PageSize
}

// Offset saturates at math.MaxInt for pages too far out to address, so an
// absurd page reads past the end instead of wrapping to a negative offset.
func (f *Filters) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PageSize
}

// ParsePage accepts a positive page number or the literal "last". An empty
// value means the first page. For "last" the returned page is 0 and
// isLast is true; the caller resolves it once the record count is known.
func ParsePage(raw string) (page int, isLast bool, ok bool) {
	if raw == "" {
		return 1, false, true
	}
	if raw == LastPage {
		return 0, true, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false, false
	}
	return page, false, true
}

type Metadata struct {
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	FirstPage    int  `json:"first_page"`
	LastPage     int  `json:"last_page"`
	TotalRecords int  `json:"total_records"`
	IsPaginated  bool `json:"is_paginated"`
	PageIsFirst  bool `json:"page_is_first"`
	PageIsLast   bool `json:"page_is_last"`
}

// NumPages returns the number of pages for totalRecords. An empty set still
// has one (empty) page.
func NumPages(totalRecords, pageSize int) int {
	if totalRecords == 0 || pageSize <= 0 {
		return 1
	}
	return (totalRecords + pageSize - 1) / pageSize
}

func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	lastPage := NumPages(totalRecords, pageSize)
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     lastPage,
		TotalRecords: totalRecords,
		IsPaginated:  lastPage > 1,
		PageIsFirst:  page == 1,
		PageIsLast:   page == lastPage,
	}
}

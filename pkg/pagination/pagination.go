package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Pagination is the page metadata returned with list responses
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for page-based pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps the parameters into their valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset calculates the offset for SQL queries
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a page of items with its metadata
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}

// CursorDirection represents the direction of cursor navigation
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the decoded keyset position
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CursorParams represents input parameters for keyset pagination
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"` // base64 encoded Cursor
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// Validate clamps the limit and defaults the direction
func (c *CursorParams) Validate() {
	if c.Limit < 1 {
		c.Limit = defaultPerPage
	}
	if c.Limit > maxPerPage {
		c.Limit = maxPerPage
	}
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor returns nil when no cursor was given
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}
	decoded, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}
	var cursor Cursor
	if err := json.Unmarshal(decoded, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor data: %w", err)
	}
	return &cursor, nil
}

// EncodeCursor creates a base64 encoded cursor
func EncodeCursor(id string, createdAt time.Time) string {
	data, _ := json.Marshal(Cursor{ID: id, CreatedAt: createdAt})
	return base64.URLEncoding.EncodeToString(data)
}

// CursorPagination is the cursor metadata returned with list responses
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult represents a cursor page of items
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// NewCursorPage trims items fetched with limit+1 down to limit and builds
// the cursors from the first and last kept item.
func NewCursorPage[T any](items []T, params *CursorParams, key func(T) (string, time.Time)) *CursorPaginatedResult[T] {
	hasMore := len(items) > params.Limit
	if hasMore {
		items = items[:params.Limit]
	}
	if items == nil {
		items = []T{}
	}

	page := &CursorPagination{
		Limit:   params.Limit,
		HasNext: hasMore,
		HasPrev: params.Cursor != "",
	}
	if len(items) > 0 {
		id, at := key(items[len(items)-1])
		next := EncodeCursor(id, at)
		page.NextCursor = &next

		id, at = key(items[0])
		prev := EncodeCursor(id, at)
		page.PrevCursor = &prev
	}
	return &CursorPaginatedResult[T]{Items: items, Pagination: page}
}

// ListParams accepts both page-based and cursor-based query parameters
type ListParams struct {
	Page      int             `form:"page"`
	PerPage   int             `form:"per_page"`
	Cursor    string          `form:"cursor"`
	Direction CursorDirection `form:"direction"`
	Limit     int             `form:"limit"`
}

// IsCursorBased reports whether the caller asked for keyset pagination
func (l *ListParams) IsCursorBased() bool {
	return l.Cursor != "" || l.Limit > 0
}

// PageParams returns validated page-based params
func (l *ListParams) PageParams() *PaginationParams {
	p := &PaginationParams{Page: l.Page, PerPage: l.PerPage}
	p.Validate()
	return p
}

// CursorParams returns validated cursor params
func (l *ListParams) CursorParams() *CursorParams {
	c := &CursorParams{Cursor: l.Cursor, Direction: l.Direction, Limit: l.Limit}
	c.Validate()
	return c
}

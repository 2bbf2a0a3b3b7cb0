// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// --- Envelope ---

// Response is the success envelope of every JSON endpoint.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// NewResponse builds a success envelope.
func NewResponse(status int, message string, data any) Response {
	return Response{StatusCode: status, Data: data, Message: message, Success: true}
}

// --- Pagination ---

// Pagination describes one page of a filtered list.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasPrevPage bool  `json:"hasPrevPage"`
	HasNextPage bool  `json:"hasNextPage"`
	PrevPage    *int  `json:"prevPage"`
	NextPage    *int  `json:"nextPage"`
}

// NewPagination computes page links. A page past the end has no next page
// and points back to the previous one.
func NewPagination(page, limit int, total int64) *Pagination {
	p := &Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if page > 1 {
		prev := page - 1
		p.PrevPage = &prev
		p.HasPrevPage = true
	}
	if page < p.TotalPages {
		next := page + 1
		p.NextPage = &next
		p.HasNextPage = true
	}
	return p
}

// PaginationOf builds pagination from a repository result.
func PaginationOf[T any](res domain.ListResult[T]) *Pagination {
	return NewPagination(res.Page, res.Limit, res.Total)
}

// --- List query ---

// ListQueryRequest holds the query parameters shared by every entry list.
// Module field filters are read separately from the descriptor.
type ListQueryRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1"`
	Search    string `form:"search" binding:"max=100"`
	StartDate string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `form:"endDate" binding:"omitempty,isodate"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,sortorder"`
}

// ToListQuery converts to the domain query.
func (r ListQueryRequest) ToListQuery(filters map[string]string) domain.ListQuery {
	return domain.ListQuery{
		Page:      r.Page,
		Limit:     r.Limit,
		Search:    r.Search,
		Filters:   filters,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
	}
}

// DateRangeRequest holds optional summary bounds.
type DateRangeRequest struct {
	StartDate string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `form:"endDate" binding:"omitempty,isodate"`
}

// ToDateRange parses the bounds.
func (r DateRangeRequest) ToDateRange() (types.DateRange, error) {
	return domain.ParseDateRange(r.StartDate, r.EndDate)
}

// --- Bulk delete ---

// BulkDeleteRequest lists entry ids to delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=500,dive,uuid"`
}

// ParseIDs converts ids, rejecting malformed ones.
func (r BulkDeleteRequest) ParseIDs() ([]id.ID, error) {
	ids, err := id.ParseAll(r.IDs)
	if err != nil {
		return nil, apperror.NewFieldValidation("ids", "ids must be UUIDs")
	}
	return ids, nil
}

// DeletedCountResponse reports how many rows a bulk delete removed.
type DeletedCountResponse struct {
	DeletedCount int `json:"deletedCount"`
}

// --- Field helpers ---

// parseDate parses a required YYYY-MM-DD field.
func parseDate(field, value string) (time.Time, error) {
	d, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, apperror.NewFieldValidation(field, field+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// applyDate re-parses date when present.
func applyDate(dst *time.Time, value *string) error {
	if value == nil {
		return nil
	}
	d, err := parseDate("date", *value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func applyInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyMeasure(dst *types.Measure, v *types.Measure) {
	if v != nil {
		*dst = *v
	}
}

package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
	"ricemill/internal/infrastructure/export"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/middleware"
	"ricemill/internal/metadata"
	"ricemill/pkg/logger"
)

// EntryService defines what EntryHandler needs from a module service.
// *domain.EntryService satisfies it.
type EntryService[T entity.Entry] interface {
	Descriptor() *domain.Descriptor
	Create(ctx context.Context, millID id.ID, entry T) (T, error)
	GetByID(ctx context.Context, millID, entryID id.ID) (T, error)
	List(ctx context.Context, millID id.ID, q domain.ListQuery) (domain.ListResult[T], error)
	Export(ctx context.Context, millID id.ID, q domain.ListQuery) ([]T, error)
	Summary(ctx context.Context, millID id.ID, rng types.DateRange) (domain.Summary, error)
	Update(ctx context.Context, millID, entryID id.ID, apply func(entry T) error) (T, error)
	Delete(ctx context.Context, millID, entryID id.ID) error
	BulkDelete(ctx context.Context, millID id.ID, ids []id.ID) (int, error)
}

// CreateRequest is a create body that maps to a new entry.
type CreateRequest[T entity.Entry] interface {
	ToEntity() (T, error)
}

// UpdateRequest is a partial update body.
type UpdateRequest[T entity.Entry] interface {
	ApplyTo(entry T) error
}

// EntryHandler serves the uniform CRUD, summary and export routes of one module.
type EntryHandler[T entity.Entry, C CreateRequest[T], U UpdateRequest[T]] struct {
	*BaseHandler
	service EntryService[T]
	desc    *domain.Descriptor
	columns []metadata.FieldDef
	now     func() time.Time
}

// NewEntryHandler creates a handler for service.
func NewEntryHandler[T entity.Entry, C CreateRequest[T], U UpdateRequest[T]](
	base *BaseHandler,
	service EntryService[T],
) *EntryHandler[T, C, U] {
	var zero T
	return &EntryHandler[T, C, U]{
		BaseHandler: base,
		service:     service,
		desc:        service.Descriptor(),
		columns:     export.Columns(metadata.Inspect(zero)),
		now:         time.Now,
	}
}

// Resource returns the module URL segment.
func (h *EntryHandler[T, C, U]) Resource() string {
	return h.desc.Resource
}

// List handles GET /mills/:millId/<resource>
func (h *EntryHandler[T, C, U]) List(c *gin.Context) {
	q, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	res, err := h.service.List(c.Request.Context(), h.millID(c), q)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, h.message("entries retrieved"), res.Items, dto.PaginationOf(res))
}

// Summary handles GET /mills/:millId/<resource>/summary
func (h *EntryHandler[T, C, U]) Summary(c *gin.Context) {
	var req dto.DateRangeRequest
	if !h.BindQuery(c, &req) {
		return
	}
	rng, err := req.ToDateRange()
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), h.millID(c), rng)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.message("summary retrieved"), summary)
}

// Export handles GET /mills/:millId/<resource>/export and streams an xlsx workbook.
func (h *EntryHandler[T, C, U]) Export(c *gin.Context) {
	q, ok := h.bindListQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	items, err := h.service.Export(ctx, h.millID(c), q)
	if err != nil {
		h.Error(c, err)
		return
	}

	rows := make([]any, len(items))
	for i, item := range items {
		rows[i] = item
	}
	f, err := export.Workbook(h.desc.DisplayName, h.columns, rows)
	if err != nil {
		h.Error(c, fmt.Errorf("build %s workbook: %w", h.desc.Resource, err))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn(ctx, "failed to close workbook", "error", err)
		}
	}()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(h.desc.Resource, h.now())))
	c.Header("Content-Type", export.ContentTypeXLSX)
	if err := f.Write(c.Writer); err != nil {
		// Headers are already sent; nothing useful can reach the client.
		logger.Error(ctx, "failed to write workbook", "resource", h.desc.Resource, "error", err)
	}
}

// Get handles GET /mills/:millId/<resource>/:id
func (h *EntryHandler[T, C, U]) Get(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), h.millID(c), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.message("entry retrieved"), entry)
}

// Create handles POST /mills/:millId/<resource>
func (h *EntryHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if !h.BindJSON(c, &req) {
		return
	}
	entry, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), h.millID(c), entry)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, h.message("entry created"), created)
}

// Update handles PUT /mills/:millId/<resource>/:id
func (h *EntryHandler[T, C, U]) Update(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req U
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), h.millID(c), entryID, req.ApplyTo)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.message("entry updated"), updated)
}

// Delete handles DELETE /mills/:millId/<resource>/:id
func (h *EntryHandler[T, C, U]) Delete(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.millID(c), entryID); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.message("entry deleted"), nil)
}

// BulkDelete handles DELETE /mills/:millId/<resource>/bulk
func (h *EntryHandler[T, C, U]) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ids, err := req.ParseIDs()
	if err != nil {
		h.Error(c, err)
		return
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), h.millID(c), ids)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fmt.Sprintf("%d %s entries deleted", deleted, strings.ToLower(h.desc.DisplayName)),
		dto.DeletedCountResponse{DeletedCount: deleted})
}

func (h *EntryHandler[T, C, U]) bindListQuery(c *gin.Context) (domain.ListQuery, bool) {
	var req dto.ListQueryRequest
	if !h.BindQuery(c, &req) {
		return domain.ListQuery{}, false
	}
	filters := make(map[string]string)
	for _, param := range h.desc.FilterParams() {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			filters[param] = v
		}
	}
	return req.ToListQuery(filters), true
}

// millID is set by middleware.MillScope on every module route.
func (h *EntryHandler[T, C, U]) millID(c *gin.Context) id.ID {
	return middleware.MillFrom(c).ID
}

func (h *EntryHandler[T, C, U]) message(action string) string {
	return h.desc.DisplayName + " " + action + " successfully"
}

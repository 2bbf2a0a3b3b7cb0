package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
	"ricemill/internal/core/security"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/middleware"
)

// MillService is implemented by mills.Service.
type MillService interface {
	Create(ctx context.Context, m *mill.Mill) (*mill.Mill, error)
	List(ctx context.Context, visible []string) ([]*mill.Mill, error)
	Update(ctx context.Context, millID id.ID, apply func(m *mill.Mill)) (*mill.Mill, error)
	SetStatus(ctx context.Context, millID id.ID, status mill.Status) (*mill.Mill, error)
}

// MillsHandler serves the mill registry.
type MillsHandler struct {
	*BaseHandler
	service MillService
}

func NewMillsHandler(base *BaseHandler, service MillService) *MillsHandler {
	return &MillsHandler{BaseHandler: base, service: service}
}

// List handles GET /mills. Staff users only see their assigned mills.
func (h *MillsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	visible := security.GetScope(ctx).VisibleMillIDs()

	list, err := h.service.List(ctx, visible)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Mills retrieved successfully", list)
}

// Get handles GET /mills/:millId; the mill is resolved by MillScope.
func (h *MillsHandler) Get(c *gin.Context) {
	h.OK(c, "Mill retrieved successfully", middleware.MillFrom(c))
}

// Create handles POST /mills
func (h *MillsHandler) Create(c *gin.Context) {
	var req dto.CreateMillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Create(c.Request.Context(), req.ToMill())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, "Mill created successfully", m)
}

// Update handles PUT /mills/:millId
func (h *MillsHandler) Update(c *gin.Context) {
	millID, ok := h.ParseID(c, middleware.ParamMillID)
	if !ok {
		return
	}
	var req dto.UpdateMillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Update(c.Request.Context(), millID, req.ApplyTo)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Mill updated successfully", m)
}

// SetStatus handles PATCH /mills/:millId/status
func (h *MillsHandler) SetStatus(c *gin.Context) {
	millID, ok := h.ParseID(c, middleware.ParamMillID)
	if !ok {
		return
	}
	var req dto.MillStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.service.SetStatus(c.Request.Context(), millID, mill.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Mill status updated successfully", m)
}

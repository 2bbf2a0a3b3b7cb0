// Package handlers provides HTTP request handlers.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"ricemill/internal/core/apperror"
	appctx "ricemill/internal/core/context"
	"ricemill/internal/core/id"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/middleware"
)

const contentTypeJSON = "application/json; charset=utf-8"

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, dto.BindingError(err, "invalid request body"))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, dto.BindingError(err, "invalid query parameters"))
		return false
	}
	return true
}

// ParseID parses a UUID path parameter.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(param))
	if err != nil {
		h.Error(c, apperror.NewFieldValidation(param, param+" must be a UUID"))
		return id.ID{}, false
	}
	return parsed, true
}

// Error registers error on Gin context and aborts request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// GetUser returns the authenticated user or nil.
func (h *BaseHandler) GetUser(c *gin.Context) *appctx.UserContext {
	return appctx.GetUser(c.Request.Context())
}

// OK sends 200 with the success envelope.
func (h *BaseHandler) OK(c *gin.Context, message string, data any) {
	h.write(c, dto.NewResponse(http.StatusOK, message, data))
}

// Created sends 201 with the success envelope.
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	h.write(c, dto.NewResponse(http.StatusCreated, message, data))
}

// Page sends 200 with data and pagination.
func (h *BaseHandler) Page(c *gin.Context, message string, data any, p *dto.Pagination) {
	resp := dto.NewResponse(http.StatusOK, message, data)
	resp.Pagination = p
	h.write(c, resp)
}

// write renders resp and stores it for idempotent replay.
func (h *BaseHandler) write(c *gin.Context, resp dto.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	middleware.CompleteIdempotency(c, resp.StatusCode, contentTypeJSON, body)
	c.Data(resp.StatusCode, contentTypeJSON, body)
}

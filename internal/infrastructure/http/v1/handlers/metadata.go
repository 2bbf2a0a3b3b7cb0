package handlers

import (
	"github.com/gin-gonic/gin"

	"ricemill/internal/core/apperror"
	"ricemill/internal/metadata"
)

type MetadataHandler struct {
	*BaseHandler
	registry *metadata.Registry
}

func NewMetadataHandler(base *BaseHandler, registry *metadata.Registry) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler: base,
		registry:    registry,
	}
}

// ListModules returns every entry module with its fields, filters and sort keys.
// GET /api/meta/modules
func (h *MetadataHandler) ListModules(c *gin.Context) {
	h.OK(c, "Modules retrieved successfully", h.registry.List())
}

// GetModule returns one module by resource path.
// GET /api/meta/modules/:resource
func (h *MetadataHandler) GetModule(c *gin.Context) {
	resource := c.Param("resource")
	def, ok := h.registry.Get(resource)
	if !ok {
		h.Error(c, apperror.NewNotFound("Module", resource))
		return
	}
	h.OK(c, "Module retrieved successfully", def)
}

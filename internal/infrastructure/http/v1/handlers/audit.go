package handlers

import (
	"github.com/gin-gonic/gin"

	"ricemill/internal/domain/audit"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/middleware"
)

// AuditHandler exposes the per-mill change log to admins.
type AuditHandler struct {
	*BaseHandler
	log audit.Logger
}

func NewAuditHandler(base *BaseHandler, log audit.Logger) *AuditHandler {
	return &AuditHandler{BaseHandler: base, log: log}
}

// History handles GET /mills/:millId/audit
func (h *AuditHandler) History(c *gin.Context) {
	var req dto.AuditHistoryRequest
	if !h.BindQuery(c, &req) {
		return
	}
	filter, err := req.ToFilter(middleware.MillFrom(c).ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	records, err := h.log.History(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Audit history retrieved successfully", records)
}

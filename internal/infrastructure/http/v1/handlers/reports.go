package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain/reports"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/middleware"
)

// ReportService is implemented by reports.Service.
type ReportService interface {
	GetStockBalance(ctx context.Context, millID id.ID, asOf *time.Time) (*reports.StockBalanceReport, error)
	GetStockTurnover(ctx context.Context, millID id.ID, rng types.DateRange) (*reports.StockTurnoverReport, error)
}

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service ReportService
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service ReportService) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetStockBalance handles GET /mills/:millId/reports/stock-balance
func (h *ReportsHandler) GetStockBalance(c *gin.Context) {
	var req dto.StockBalanceRequest
	if !h.BindQuery(c, &req) {
		return
	}
	asOf, err := req.ParseAsOf()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetStockBalance(c.Request.Context(), middleware.MillFrom(c).ID, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Stock balance report generated successfully", dto.FromStockBalanceReport(report))
}

// GetStockTurnover handles GET /mills/:millId/reports/stock-turnover
func (h *ReportsHandler) GetStockTurnover(c *gin.Context) {
	var req dto.StockTurnoverReportRequest
	if !h.BindQuery(c, &req) {
		return
	}
	rng, err := req.ToDateRange()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetStockTurnover(c.Request.Context(), middleware.MillFrom(c).ID, rng)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Stock turnover report generated successfully", dto.FromStockTurnoverReport(report))
}

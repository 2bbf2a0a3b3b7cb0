package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/domain"
	"ricemill/internal/domain/registers/stock"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/middleware"
)

// StockService is the ledger API used over HTTP.
type StockService interface {
	List(ctx context.Context, millID id.ID, q stock.ListQuery) (domain.ListResult[*entity.StockTransaction], error)
	Balance(ctx context.Context, millID id.ID, asOf *time.Time) ([]entity.StockBalance, error)
	CreateManual(ctx context.Context, millID id.ID, in stock.ManualInput) (*entity.StockTransaction, error)
	DeleteManual(ctx context.Context, millID, txnID id.ID) error
}

// StockHandler handles HTTP requests for the stock ledger.
type StockHandler struct {
	*BaseHandler
	service StockService
}

// NewStockHandler creates a new stock ledger handler.
func NewStockHandler(base *BaseHandler, service StockService) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /mills/:millId/stock-transactions
func (h *StockHandler) List(c *gin.Context) {
	var req dto.StockListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	res, err := h.service.List(c.Request.Context(), middleware.MillFrom(c).ID, req.ToListQuery())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, "Stock transactions retrieved successfully", res.Items, dto.PaginationOf(res))
}

// Balance handles GET /mills/:millId/stock-transactions/balance
func (h *StockHandler) Balance(c *gin.Context) {
	var req dto.StockBalanceRequest
	if !h.BindQuery(c, &req) {
		return
	}
	asOf, err := req.ParseAsOf()
	if err != nil {
		h.Error(c, err)
		return
	}

	balances, err := h.service.Balance(c.Request.Context(), middleware.MillFrom(c).ID, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Stock balance retrieved successfully", balances)
}

// Create handles POST /mills/:millId/stock-transactions (manual adjustment).
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateManualStockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	txn, err := h.service.CreateManual(c.Request.Context(), middleware.MillFrom(c).ID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, "Stock transaction created successfully", txn)
}

// Delete handles DELETE /mills/:millId/stock-transactions/:id
func (h *StockHandler) Delete(c *gin.Context) {
	txnID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteManual(c.Request.Context(), middleware.MillFrom(c).ID, txnID); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, "Stock transaction deleted successfully", nil)
}

package dto

import (
	"strings"
	"time"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain/registers/stock"
)

// StockListRequest holds stock transaction list parameters.
type StockListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1"`
	Commodity string `form:"commodity"`
	Type      string `form:"type"`
	RefModel  string `form:"refModel" binding:"max=100"`
	RefID     string `form:"refId"`
	StartDate string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `form:"endDate" binding:"omitempty,isodate"`
}

// ToListQuery converts to the ledger query; the service validates values.
func (r StockListRequest) ToListQuery() stock.ListQuery {
	return stock.ListQuery{
		Page:      r.Page,
		Limit:     r.Limit,
		Commodity: r.Commodity,
		Type:      r.Type,
		RefModel:  r.RefModel,
		RefID:     r.RefID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// CreateManualStockRequest is a hand-entered ledger adjustment.
type CreateManualStockRequest struct {
	Date      string        `json:"date" binding:"required,isodate"`
	Commodity string        `json:"commodity" binding:"required"`
	Type      string        `json:"type" binding:"required"`
	Quantity  types.Measure `json:"quantity" binding:"required,gt=0,measure"`
	Remarks   string        `json:"remarks" binding:"max=1000"`
}

// ToInput converts to the ledger input. Commodity and type are upper-cased;
// the service rejects unknown values.
func (r CreateManualStockRequest) ToInput() (stock.ManualInput, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return stock.ManualInput{}, err
	}
	return stock.ManualInput{
		Date:      date,
		Commodity: entity.Commodity(strings.ToUpper(strings.TrimSpace(r.Commodity))),
		Type:      entity.TransactionType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Quantity:  r.Quantity,
		Remarks:   r.Remarks,
	}, nil
}

// StockBalanceRequest holds the optional as-of date.
type StockBalanceRequest struct {
	AsOf string `form:"asOf" binding:"omitempty,isodate"`
}

// ParseAsOf returns nil when no date was given.
func (r StockBalanceRequest) ParseAsOf() (*time.Time, error) {
	if r.AsOf == "" {
		return nil, nil
	}
	t, err := parseDate("asOf", r.AsOf)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

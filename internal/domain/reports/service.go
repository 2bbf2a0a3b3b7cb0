package reports

import (
	"context"
	"fmt"
	"time"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain/registers/stock"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetStockBalance generates the stock balance report. asOf defaults to today.
func (s *Service) GetStockBalance(ctx context.Context, millID id.ID, asOf *time.Time) (*StockBalanceReport, error) {
	date := types.TruncateDate(s.now())
	if asOf != nil {
		date = types.TruncateDate(*asOf)
	}

	rows, err := s.repo.StockBalances(ctx, millID, date)
	if err != nil {
		return nil, fmt.Errorf("get stock balance report: %w", err)
	}

	return &StockBalanceReport{
		AsOfDate: date,
		Items:    stock.FillBalances(rows),
	}, nil
}

// GetStockTurnover generates the stock turnover report for a period.
func (s *Service) GetStockTurnover(ctx context.Context, millID id.ID, rng types.DateRange) (*StockTurnoverReport, error) {
	if rng.Start == nil || rng.End == nil {
		return nil, apperror.NewValidation("startDate and endDate are required")
	}
	if err := rng.Validate(); err != nil {
		return nil, apperror.NewFieldValidation("startDate", err.Error())
	}

	rows, err := s.repo.StockTurnover(ctx, millID, *rng.Start, *rng.End)
	if err != nil {
		return nil, fmt.Errorf("get stock turnover report: %w", err)
	}

	return &StockTurnoverReport{
		FromDate: *rng.Start,
		ToDate:   *rng.End,
		Items:    buildTurnover(rows),
	}, nil
}

func buildTurnover(rows []TurnoverRow) []StockTurnoverItem {
	byCommodity := make(map[entity.Commodity]TurnoverRow, len(rows))
	for _, r := range rows {
		byCommodity[r.Commodity] = r
	}

	items := make([]StockTurnoverItem, 0, len(entity.Commodities))
	for _, c := range entity.Commodities {
		r, ok := byCommodity[c]
		if !ok {
			r = TurnoverRow{Commodity: c, Opening: types.Zero(), Credit: types.Zero(), Debit: types.Zero()}
		}
		opening := types.Round2(r.Opening)
		credit := types.Round2(r.Credit)
		debit := types.Round2(r.Debit)
		items = append(items, StockTurnoverItem{
			Commodity:      c,
			OpeningBalance: opening,
			Credit:         credit,
			Debit:          debit,
			ClosingBalance: opening.Add(credit).Sub(debit),
		})
	}
	return items
}

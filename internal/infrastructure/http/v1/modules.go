package v1

import (
	"ricemill/internal/domain/entries/daily_milling"
	"ricemill/internal/domain/entries/daily_production"
	"ricemill/internal/domain/entries/financial_payment"
	"ricemill/internal/domain/entries/other_purchase"
	"ricemill/internal/domain/entries/private_gunny_outward"
	"ricemill/internal/domain/entries/private_rice_outward"
	"ricemill/internal/domain/entries/rice_inward"
	"ricemill/internal/domain/entries/rice_purchase"
	"ricemill/internal/domain/entries/silky_kodha_outward"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/handlers"
)

// ModuleServices holds one service per entry module.
type ModuleServices struct {
	RiceInward          handlers.EntryService[*rice_inward.RiceInward]
	RicePurchase        handlers.EntryService[*rice_purchase.RicePurchase]
	SilkyKodhaOutward   handlers.EntryService[*silky_kodha_outward.SilkyKodhaOutward]
	PrivateRiceOutward  handlers.EntryService[*private_rice_outward.PrivateRiceOutward]
	PrivateGunnyOutward handlers.EntryService[*private_gunny_outward.PrivateGunnyOutward]
	DailyMilling        handlers.EntryService[*daily_milling.DailyMilling]
	DailyProduction     handlers.EntryService[*daily_production.DailyProduction]
	FinancialPayment    handlers.EntryService[*financial_payment.FinancialPayment]
	OtherPurchase       handlers.EntryService[*other_purchase.OtherPurchase]
}

// EntryHandlers builds the route handler of every module.
func EntryHandlers(base *handlers.BaseHandler, s ModuleServices) []EntryRouteHandler {
	return []EntryRouteHandler{
		handlers.NewEntryHandler[*rice_inward.RiceInward, dto.CreateRiceInwardRequest, dto.UpdateRiceInwardRequest](base, s.RiceInward),
		handlers.NewEntryHandler[*rice_purchase.RicePurchase, dto.CreateRicePurchaseRequest, dto.UpdateRicePurchaseRequest](base, s.RicePurchase),
		handlers.NewEntryHandler[*silky_kodha_outward.SilkyKodhaOutward, dto.CreateSilkyKodhaOutwardRequest, dto.UpdateSilkyKodhaOutwardRequest](base, s.SilkyKodhaOutward),
		handlers.NewEntryHandler[*private_rice_outward.PrivateRiceOutward, dto.CreatePrivateRiceOutwardRequest, dto.UpdatePrivateRiceOutwardRequest](base, s.PrivateRiceOutward),
		handlers.NewEntryHandler[*private_gunny_outward.PrivateGunnyOutward, dto.CreatePrivateGunnyOutwardRequest, dto.UpdatePrivateGunnyOutwardRequest](base, s.PrivateGunnyOutward),
		handlers.NewEntryHandler[*daily_milling.DailyMilling, dto.CreateDailyMillingRequest, dto.UpdateDailyMillingRequest](base, s.DailyMilling),
		handlers.NewEntryHandler[*daily_production.DailyProduction, dto.CreateDailyProductionRequest, dto.UpdateDailyProductionRequest](base, s.DailyProduction),
		handlers.NewEntryHandler[*financial_payment.FinancialPayment, dto.CreateFinancialPaymentRequest, dto.UpdateFinancialPaymentRequest](base, s.FinancialPayment),
		handlers.NewEntryHandler[*other_purchase.OtherPurchase, dto.CreateOtherPurchaseRequest, dto.UpdateOtherPurchaseRequest](base, s.OtherPurchase),
	}
}

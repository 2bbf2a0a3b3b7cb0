package main

import (
	"ricemill/internal/domain"
	"ricemill/internal/domain/entries/daily_milling"
	"ricemill/internal/domain/entries/daily_production"
	"ricemill/internal/domain/entries/financial_payment"
	"ricemill/internal/domain/entries/other_purchase"
	"ricemill/internal/domain/entries/private_gunny_outward"
	"ricemill/internal/domain/entries/private_rice_outward"
	"ricemill/internal/domain/entries/rice_inward"
	"ricemill/internal/domain/entries/rice_purchase"
	"ricemill/internal/domain/entries/silky_kodha_outward"
	v1 "ricemill/internal/infrastructure/http/v1"
	"ricemill/internal/infrastructure/storage/postgres"
	"ricemill/internal/infrastructure/storage/postgres/entry_repo"
)

// moduleServices builds the nine entry services on shared deps.
func moduleServices(txm *postgres.TxManager, deps domain.EntryDeps) v1.ModuleServices {
	return v1.ModuleServices{
		RiceInward:          rice_inward.NewService(entry_repo.NewRiceInwardRepo(txm), deps),
		RicePurchase:        rice_purchase.NewService(entry_repo.NewRicePurchaseRepo(txm), deps),
		SilkyKodhaOutward:   silky_kodha_outward.NewService(entry_repo.NewSilkyKodhaOutwardRepo(txm), deps),
		PrivateRiceOutward:  private_rice_outward.NewService(entry_repo.NewPrivateRiceOutwardRepo(txm), deps),
		PrivateGunnyOutward: private_gunny_outward.NewService(entry_repo.NewPrivateGunnyOutwardRepo(txm), deps),
		DailyMilling:        daily_milling.NewService(entry_repo.NewDailyMillingRepo(txm), deps),
		DailyProduction:     daily_production.NewService(entry_repo.NewDailyProductionRepo(txm), deps),
		FinancialPayment:    financial_payment.NewService(entry_repo.NewFinancialPaymentRepo(txm), deps),
		OtherPurchase:       other_purchase.NewService(entry_repo.NewOtherPurchaseRepo(txm), deps),
	}
}

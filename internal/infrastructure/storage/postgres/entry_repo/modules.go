package entry_repo

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
	"ricemill/internal/infrastructure/storage/postgres"
)

var (
	_ domain.EntryRepository[*rice_inward.RiceInward]                    = (*Repo[*rice_inward.RiceInward])(nil)
	_ domain.EntryRepository[*rice_purchase.RicePurchase]                = (*Repo[*rice_purchase.RicePurchase])(nil)
	_ domain.EntryRepository[*private_gunny_outward.PrivateGunnyOutward] = (*Repo[*private_gunny_outward.PrivateGunnyOutward])(nil)
)

func NewRiceInwardRepo(txm *postgres.TxManager) *Repo[*rice_inward.RiceInward] {
	return New(txm, rice_inward.Descriptor, func() *rice_inward.RiceInward { return &rice_inward.RiceInward{} })
}

func NewRicePurchaseRepo(txm *postgres.TxManager) *Repo[*rice_purchase.RicePurchase] {
	return New(txm, rice_purchase.Descriptor, func() *rice_purchase.RicePurchase { return &rice_purchase.RicePurchase{} })
}

func NewSilkyKodhaOutwardRepo(txm *postgres.TxManager) *Repo[*silky_kodha_outward.SilkyKodhaOutward] {
	return New(txm, silky_kodha_outward.Descriptor, func() *silky_kodha_outward.SilkyKodhaOutward {
		return &silky_kodha_outward.SilkyKodhaOutward{}
	})
}

func NewPrivateRiceOutwardRepo(txm *postgres.TxManager) *Repo[*private_rice_outward.PrivateRiceOutward] {
	return New(txm, private_rice_outward.Descriptor, func() *private_rice_outward.PrivateRiceOutward {
		return &private_rice_outward.PrivateRiceOutward{}
	})
}

func NewPrivateGunnyOutwardRepo(txm *postgres.TxManager) *Repo[*private_gunny_outward.PrivateGunnyOutward] {
	return New(txm, private_gunny_outward.Descriptor, func() *private_gunny_outward.PrivateGunnyOutward {
		return &private_gunny_outward.PrivateGunnyOutward{}
	})
}

func NewDailyMillingRepo(txm *postgres.TxManager) *Repo[*daily_milling.DailyMilling] {
	return New(txm, daily_milling.Descriptor, func() *daily_milling.DailyMilling { return &daily_milling.DailyMilling{} })
}

func NewDailyProductionRepo(txm *postgres.TxManager) *Repo[*daily_production.DailyProduction] {
	return New(txm, daily_production.Descriptor, func() *daily_production.DailyProduction {
		return &daily_production.DailyProduction{}
	})
}

func NewFinancialPaymentRepo(txm *postgres.TxManager) *Repo[*financial_payment.FinancialPayment] {
	return New(txm, financial_payment.Descriptor, func() *financial_payment.FinancialPayment {
		return &financial_payment.FinancialPayment{}
	})
}

func NewOtherPurchaseRepo(txm *postgres.TxManager) *Repo[*other_purchase.OtherPurchase] {
	return New(txm, other_purchase.Descriptor, func() *other_purchase.OtherPurchase { return &other_purchase.OtherPurchase{} })
}

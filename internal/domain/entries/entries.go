// Package entries lists the daily operational entry modules of a mill.
package entries

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
)

// Descriptors returns every module descriptor in menu order.
func Descriptors() []*domain.Descriptor {
	return []*domain.Descriptor{
		rice_inward.Descriptor,
		rice_purchase.Descriptor,
		silky_kodha_outward.Descriptor,
		private_rice_outward.Descriptor,
		private_gunny_outward.Descriptor,
		daily_milling.Descriptor,
		daily_production.Descriptor,
		financial_payment.Descriptor,
		other_purchase.Descriptor,
	}
}

// Samples maps each resource to a zero entry, used for field inspection.
func Samples() map[string]any {
	return map[string]any{
		rice_inward.Descriptor.Resource:           &rice_inward.RiceInward{},
		rice_purchase.Descriptor.Resource:         &rice_purchase.RicePurchase{},
		silky_kodha_outward.Descriptor.Resource:   &silky_kodha_outward.SilkyKodhaOutward{},
		private_rice_outward.Descriptor.Resource:  &private_rice_outward.PrivateRiceOutward{},
		private_gunny_outward.Descriptor.Resource: &private_gunny_outward.PrivateGunnyOutward{},
		daily_milling.Descriptor.Resource:         &daily_milling.DailyMilling{},
		daily_production.Descriptor.Resource:      &daily_production.DailyProduction{},
		financial_payment.Descriptor.Resource:     &financial_payment.FinancialPayment{},
		other_purchase.Descriptor.Resource:        &other_purchase.OtherPurchase{},
	}
}

package dto

import (
	"ricemill/internal/domain/entries/private_gunny_outward"
)

// CreatePrivateGunnyOutwardRequest records a gunny bag dispatch.
type CreatePrivateGunnyOutwardRequest struct {
	Date                    string `json:"date" binding:"required,isodate"`
	GunnyPurchaseDealNumber string `json:"gunnyPurchaseDealNumber" binding:"max=50"`
	PartyName               string `json:"partyName" binding:"max=200"`
	TruckNumber             string `json:"truckNumber" binding:"max=50"`
	NewGunnyQty             int    `json:"newGunnyQty" binding:"count"`
	OldGunnyQty             int    `json:"oldGunnyQty" binding:"count"`
	PlasticGunnyQty         int    `json:"plasticGunnyQty" binding:"count"`
	Remarks                 string `json:"remarks" binding:"max=1000"`
}

func (r CreatePrivateGunnyOutwardRequest) ToEntity() (*private_gunny_outward.PrivateGunnyOutward, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &private_gunny_outward.PrivateGunnyOutward{
		GunnyPurchaseDealNumber: r.GunnyPurchaseDealNumber,
		PartyName:               r.PartyName,
		TruckNumber:             r.TruckNumber,
		NewGunnyQty:             r.NewGunnyQty,
		OldGunnyQty:             r.OldGunnyQty,
		PlasticGunnyQty:         r.PlasticGunnyQty,
		Remarks:                 r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdatePrivateGunnyOutwardRequest is a partial update; nil fields are left unchanged.
type UpdatePrivateGunnyOutwardRequest struct {
	Date                    *string `json:"date" binding:"omitempty,isodate"`
	GunnyPurchaseDealNumber *string `json:"gunnyPurchaseDealNumber" binding:"omitempty,max=50"`
	PartyName               *string `json:"partyName" binding:"omitempty,max=200"`
	TruckNumber             *string `json:"truckNumber" binding:"omitempty,max=50"`
	NewGunnyQty             *int    `json:"newGunnyQty" binding:"omitempty,count"`
	OldGunnyQty             *int    `json:"oldGunnyQty" binding:"omitempty,count"`
	PlasticGunnyQty         *int    `json:"plasticGunnyQty" binding:"omitempty,count"`
	Remarks                 *string `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdatePrivateGunnyOutwardRequest) ApplyTo(p *private_gunny_outward.PrivateGunnyOutward) error {
	if err := applyDate(&p.Date, r.Date); err != nil {
		return err
	}
	applyString(&p.GunnyPurchaseDealNumber, r.GunnyPurchaseDealNumber)
	applyString(&p.PartyName, r.PartyName)
	applyString(&p.TruckNumber, r.TruckNumber)
	applyInt(&p.NewGunnyQty, r.NewGunnyQty)
	applyInt(&p.OldGunnyQty, r.OldGunnyQty)
	applyInt(&p.PlasticGunnyQty, r.PlasticGunnyQty)
	applyString(&p.Remarks, r.Remarks)
	return nil
}

package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/private_rice_outward"
)

// CreatePrivateRiceOutwardRequest records a private rice dispatch.
type CreatePrivateRiceOutwardRequest struct {
	Date         string        `json:"date" binding:"required,isodate"`
	DealNumber   string        `json:"dealNumber" binding:"max=50"`
	PartyName    string        `json:"partyName" binding:"max=200"`
	BrokerName   string        `json:"brokerName" binding:"max=200"`
	LotNumber    string        `json:"lotNumber" binding:"max=50"`
	RiceType     string        `json:"riceType" binding:"max=100"`
	TruckNumber  string        `json:"truckNumber" binding:"max=50"`
	RSTNumber    string        `json:"rstNumber" binding:"max=50"`
	RiceQty      types.Measure `json:"riceQty" binding:"omitempty,measure"`
	GunnyNew     int           `json:"gunnyNew" binding:"count"`
	GunnyOld     int           `json:"gunnyOld" binding:"count"`
	GunnyPlastic int           `json:"gunnyPlastic" binding:"count"`
	NetWeight    types.Measure `json:"netWeight" binding:"omitempty,measure"`
	Remarks      string        `json:"remarks" binding:"max=1000"`
}

func (r CreatePrivateRiceOutwardRequest) ToEntity() (*private_rice_outward.PrivateRiceOutward, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &private_rice_outward.PrivateRiceOutward{
		DealNumber:   r.DealNumber,
		PartyName:    r.PartyName,
		BrokerName:   r.BrokerName,
		LotNumber:    r.LotNumber,
		RiceType:     r.RiceType,
		TruckNumber:  r.TruckNumber,
		RSTNumber:    r.RSTNumber,
		RiceQty:      r.RiceQty,
		GunnyNew:     r.GunnyNew,
		GunnyOld:     r.GunnyOld,
		GunnyPlastic: r.GunnyPlastic,
		NetWeight:    r.NetWeight,
		Remarks:      r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdatePrivateRiceOutwardRequest is a partial update; nil fields are left unchanged.
type UpdatePrivateRiceOutwardRequest struct {
	Date         *string        `json:"date" binding:"omitempty,isodate"`
	DealNumber   *string        `json:"dealNumber" binding:"omitempty,max=50"`
	PartyName    *string        `json:"partyName" binding:"omitempty,max=200"`
	BrokerName   *string        `json:"brokerName" binding:"omitempty,max=200"`
	LotNumber    *string        `json:"lotNumber" binding:"omitempty,max=50"`
	RiceType     *string        `json:"riceType" binding:"omitempty,max=100"`
	TruckNumber  *string        `json:"truckNumber" binding:"omitempty,max=50"`
	RSTNumber    *string        `json:"rstNumber" binding:"omitempty,max=50"`
	RiceQty      *types.Measure `json:"riceQty" binding:"omitempty,measure"`
	GunnyNew     *int           `json:"gunnyNew" binding:"omitempty,count"`
	GunnyOld     *int           `json:"gunnyOld" binding:"omitempty,count"`
	GunnyPlastic *int           `json:"gunnyPlastic" binding:"omitempty,count"`
	NetWeight    *types.Measure `json:"netWeight" binding:"omitempty,measure"`
	Remarks      *string        `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdatePrivateRiceOutwardRequest) ApplyTo(p *private_rice_outward.PrivateRiceOutward) error {
	if err := applyDate(&p.Date, r.Date); err != nil {
		return err
	}
	applyString(&p.DealNumber, r.DealNumber)
	applyString(&p.PartyName, r.PartyName)
	applyString(&p.BrokerName, r.BrokerName)
	applyString(&p.LotNumber, r.LotNumber)
	applyString(&p.RiceType, r.RiceType)
	applyString(&p.TruckNumber, r.TruckNumber)
	applyString(&p.RSTNumber, r.RSTNumber)
	applyMeasure(&p.RiceQty, r.RiceQty)
	applyInt(&p.GunnyNew, r.GunnyNew)
	applyInt(&p.GunnyOld, r.GunnyOld)
	applyInt(&p.GunnyPlastic, r.GunnyPlastic)
	applyMeasure(&p.NetWeight, r.NetWeight)
	applyString(&p.Remarks, r.Remarks)
	return nil
}

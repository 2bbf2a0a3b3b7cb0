package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/rice_inward"
)

// CreateRiceInwardRequest represents a request to record a truck of rice received.
type CreateRiceInwardRequest struct {
	Date         string        `json:"date" binding:"required,isodate"`
	RSTNumber    string        `json:"rstNumber" binding:"max=50"`
	TruckNumber  string        `json:"truckNumber" binding:"max=50"`
	PartyName    string        `json:"partyName" binding:"max=200"`
	BrokerName   string        `json:"brokerName" binding:"max=200"`
	DealNumber   string        `json:"dealNumber" binding:"max=50"`
	LotNumber    string        `json:"lotNumber" binding:"max=50"`
	RiceType     string        `json:"riceType" binding:"max=100"`
	GunnyNew     int           `json:"gunnyNew" binding:"count"`
	GunnyOld     int           `json:"gunnyOld" binding:"count"`
	GunnyPlastic int           `json:"gunnyPlastic" binding:"count"`
	GrossWeight  types.Measure `json:"grossWeight" binding:"omitempty,measure"`
	TareWeight   types.Measure `json:"tareWeight" binding:"omitempty,measure"`
	NetWeight    types.Measure `json:"netWeight" binding:"omitempty,measure"`
	Remarks      string        `json:"remarks" binding:"max=1000"`
}

// ToEntity converts request to domain entity.
func (r CreateRiceInwardRequest) ToEntity() (*rice_inward.RiceInward, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &rice_inward.RiceInward{
		RSTNumber:    r.RSTNumber,
		TruckNumber:  r.TruckNumber,
		PartyName:    r.PartyName,
		BrokerName:   r.BrokerName,
		DealNumber:   r.DealNumber,
		LotNumber:    r.LotNumber,
		RiceType:     r.RiceType,
		GunnyNew:     r.GunnyNew,
		GunnyOld:     r.GunnyOld,
		GunnyPlastic: r.GunnyPlastic,
		GrossWeight:  r.GrossWeight,
		TareWeight:   r.TareWeight,
		NetWeight:    r.NetWeight,
		Remarks:      r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdateRiceInwardRequest carries only the fields to change.
type UpdateRiceInwardRequest struct {
	Date         *string        `json:"date" binding:"omitempty,isodate"`
	RSTNumber    *string        `json:"rstNumber" binding:"omitempty,max=50"`
	TruckNumber  *string        `json:"truckNumber" binding:"omitempty,max=50"`
	PartyName    *string        `json:"partyName" binding:"omitempty,max=200"`
	BrokerName   *string        `json:"brokerName" binding:"omitempty,max=200"`
	DealNumber   *string        `json:"dealNumber" binding:"omitempty,max=50"`
	LotNumber    *string        `json:"lotNumber" binding:"omitempty,max=50"`
	RiceType     *string        `json:"riceType" binding:"omitempty,max=100"`
	GunnyNew     *int           `json:"gunnyNew" binding:"omitempty,count"`
	GunnyOld     *int           `json:"gunnyOld" binding:"omitempty,count"`
	GunnyPlastic *int           `json:"gunnyPlastic" binding:"omitempty,count"`
	GrossWeight  *types.Measure `json:"grossWeight" binding:"omitempty,measure"`
	TareWeight   *types.Measure `json:"tareWeight" binding:"omitempty,measure"`
	NetWeight    *types.Measure `json:"netWeight" binding:"omitempty,measure"`
	Remarks      *string        `json:"remarks" binding:"omitempty,max=1000"`
}

// ApplyTo applies the present fields to e.
// A weight change without netWeight lets net be re-derived from gross and tare.
func (r UpdateRiceInwardRequest) ApplyTo(e *rice_inward.RiceInward) error {
	if err := applyDate(&e.Date, r.Date); err != nil {
		return err
	}
	applyString(&e.RSTNumber, r.RSTNumber)
	applyString(&e.TruckNumber, r.TruckNumber)
	applyString(&e.PartyName, r.PartyName)
	applyString(&e.BrokerName, r.BrokerName)
	applyString(&e.DealNumber, r.DealNumber)
	applyString(&e.LotNumber, r.LotNumber)
	applyString(&e.RiceType, r.RiceType)
	applyInt(&e.GunnyNew, r.GunnyNew)
	applyInt(&e.GunnyOld, r.GunnyOld)
	applyInt(&e.GunnyPlastic, r.GunnyPlastic)
	if (r.GrossWeight != nil || r.TareWeight != nil) && r.NetWeight == nil {
		e.NetWeight = types.Zero()
	}
	applyMeasure(&e.GrossWeight, r.GrossWeight)
	applyMeasure(&e.TareWeight, r.TareWeight)
	applyMeasure(&e.NetWeight, r.NetWeight)
	applyString(&e.Remarks, r.Remarks)
	return nil
}

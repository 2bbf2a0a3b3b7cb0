package dto

import (
	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/domain/audit"
)

// AuditHistoryRequest filters the change log of one mill.
type AuditHistoryRequest struct {
	EntityType string `form:"entityType" binding:"max=100"`
	EntityID   string `form:"entityId"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ToFilter builds the audit filter for millID.
func (r AuditHistoryRequest) ToFilter(millID id.ID) (audit.Filter, error) {
	f := audit.Filter{MillID: millID, EntityType: r.EntityType, Limit: r.Limit}
	if r.EntityID != "" {
		entityID, err := id.Parse(r.EntityID)
		if err != nil {
			return f, apperror.NewFieldValidation("entityId", "entityId must be a UUID")
		}
		f.EntityID = &entityID
	}
	return f, nil
}

package dto

import (
	"github.com/aarondl/null/v8"

	"supplier-hub/internal/entities"
)

type CreateNonConformityDTO struct {
	SupplierID   string      `json:"supplierId" validate:"required"`
	Type         null.String `json:"type" validate:"omitempty,oneof=quality delivery documentation communication other"`
	Severity     null.String `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Description  string      `json:"description" validate:"required"`
	ReportedDate null.Time   `json:"reportedDate"`
	Impact       string      `json:"impact"`
}

func (d CreateNonConformityDTO) ToEntity() entities.NonConformity {
	nc := entities.NonConformity{
		SupplierID:  d.SupplierID,
		Type:        entities.NonConformityType(d.Type.String),
		Severity:    entities.Severity(d.Severity.String),
		Description: d.Description,
		Impact:      d.Impact,
	}
	if d.ReportedDate.Valid {
		nc.ReportedDate = d.ReportedDate.Time
	}
	return nc
}

// UpdateNonConformityDTO накладывается на текущую версию записи:
// отсутствующие поля не меняются.
type UpdateNonConformityDTO struct {
	Status             string      `json:"status" validate:"required,oneof=open in_progress resolved escalated"`
	Severity           null.String `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Description        null.String `json:"description"`
	ResolutionDeadline null.Time   `json:"resolutionDeadline"`
	ResolutionDate     null.Time   `json:"resolutionDate"`
	Resolution         null.String `json:"resolution"`
	EscalationReason   null.String `json:"escalationReason"`
	Impact             null.String `json:"impact"`
}

func (d UpdateNonConformityDTO) Apply(nc entities.NonConformity) entities.NonConformity {
	nc.Status = entities.NonConformityStatus(d.Status)
	if d.Severity.Valid {
		nc.Severity = entities.Severity(d.Severity.String)
	}
	if d.Description.Valid {
		nc.Description = d.Description.String
	}
	if d.ResolutionDeadline.Valid {
		nc.ResolutionDeadline = d.ResolutionDeadline.Time
	}
	if d.ResolutionDate.Valid {
		nc.ResolutionDate = d.ResolutionDate.Ptr()
	}
	if d.Resolution.Valid {
		nc.Resolution = d.Resolution.Ptr()
	}
	if d.EscalationReason.Valid {
		nc.EscalationReason = d.EscalationReason.Ptr()
	}
	if d.Impact.Valid {
		nc.Impact = d.Impact.String
	}
	return nc
}

type NonConformityQueryDTO struct {
	SupplierID string `query:"supplierId"`
	Status     string `query:"status" validate:"omitempty,oneof=open in_progress resolved escalated"`
	Severity   string `query:"severity" validate:"omitempty,oneof=low medium high critical"`
	Since      string `query:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

package entities

import (
	"time"

	"supplier-hub/pkg/types"
)

type SupplierStatus string

const (
	SupplierStatusActive             SupplierStatus = "active"
	SupplierStatusInactive           SupplierStatus = "inactive"
	SupplierStatusBlocked            SupplierStatus = "blocked"
	SupplierStatusTemporarilyBlocked SupplierStatus = "temporarily_blocked"
)

func (s SupplierStatus) Valid() bool {
	switch s {
	case SupplierStatusActive, SupplierStatusInactive, SupplierStatusBlocked, SupplierStatusTemporarilyBlocked:
		return true
	}
	return false
}

// Supplier - поставщик в том виде, в котором он живет в кеше.
// NonConformities и Documents не хранятся в таблице suppliers:
// стор собирает их из отдельных коллекций при чтении.
type Supplier struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	LegalName      string            `json:"legalName"`
	DocumentNumber string            `json:"documentNumber"`
	Category       string            `json:"category"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Whatsapp       *string           `json:"whatsapp,omitempty"`
	Address        *string           `json:"address,omitempty"`
	LocationURL    *string           `json:"locationUrl,omitempty"`
	AverageRating  float64           `json:"averageRating"`
	LastEvaluation *time.Time        `json:"lastEvaluation"`
	Status         SupplierStatus    `json:"status"`
	CustomFields   map[string]string `json:"customFields"`
	GoogleSheetID  string            `json:"googleSheetId,omitempty"`

	Metrics         SupplierMetrics  `json:"metrics"`
	NonConformities []NonConformity  `json:"nonConformities"`
	Recommendations []Recommendation `json:"recommendations"`
	Documents       []Document       `json:"documents"`

	types.BaseEntity
}

// ApplySupplierDefaults заполняет поля, которых нет в удаленной схеме.
func ApplySupplierDefaults(s *Supplier, now time.Time) {
	s.Metrics = NewSupplierMetrics(now)
	if s.NonConformities == nil {
		s.NonConformities = []NonConformity{}
	}
	if s.Recommendations == nil {
		s.Recommendations = []Recommendation{}
	}
	if s.Documents == nil {
		s.Documents = []Document{}
	}
	if s.CustomFields == nil {
		s.CustomFields = map[string]string{}
	}
	if s.Status == "" {
		s.Status = SupplierStatusActive
	}
}

package dto

import (
	"strings"

	"github.com/aarondl/null/v8"

	"supplier-hub/internal/entities"
)

// SupplierDTO - тело создания и полной замены поставщика.
type SupplierDTO struct {
	Name           string            `json:"name" validate:"required,max=255"`
	LegalName      string            `json:"legalName" validate:"omitempty,max=255"`
	DocumentNumber string            `json:"documentNumber" validate:"omitempty,document_number"`
	Category       string            `json:"category" validate:"omitempty,max=100"`
	Email          string            `json:"email" validate:"omitempty,email"`
	Phone          string            `json:"phone" validate:"omitempty,phone_intl"`
	Whatsapp       null.String       `json:"whatsapp" validate:"omitempty,phone_intl"`
	Address        null.String       `json:"address"`
	LocationURL    null.String       `json:"locationUrl" validate:"omitempty,url"`
	AverageRating  null.Float64      `json:"averageRating" validate:"omitempty,min=0,max=5"`
	LastEvaluation null.Time         `json:"lastEvaluation"`
	Status         string            `json:"status" validate:"omitempty,oneof=active inactive blocked temporarily_blocked"`
	CustomFields   map[string]string `json:"customFields"`

	Recommendations []entities.Recommendation `json:"recommendations"`
}

type SupplierBatchDTO struct {
	Suppliers []SupplierDTO `json:"suppliers" validate:"required,min=1,dive"`
}

func (d SupplierDTO) ToEntity() entities.Supplier {
	s := entities.Supplier{
		Name:            strings.TrimSpace(d.Name),
		LegalName:       d.LegalName,
		DocumentNumber:  d.DocumentNumber,
		Category:        d.Category,
		Email:           strings.ToLower(d.Email),
		Phone:           d.Phone,
		Whatsapp:        d.Whatsapp.Ptr(),
		Address:         d.Address.Ptr(),
		LocationURL:     d.LocationURL.Ptr(),
		AverageRating:   d.AverageRating.Float64,
		LastEvaluation:  d.LastEvaluation.Ptr(),
		Status:          entities.SupplierStatus(d.Status),
		CustomFields:    d.CustomFields,
		Recommendations: d.Recommendations,
	}
	return s
}

func (d SupplierBatchDTO) ToEntities() []entities.Supplier {
	out := make([]entities.Supplier, 0, len(d.Suppliers))
	for _, s := range d.Suppliers {
		out = append(out, s.ToEntity())
	}
	return out
}

type LinkSheetDTO struct {
	URL string `json:"url" validate:"required,url"`
}

type ColumnMappingsDTO struct {
	Mappings map[string]string `json:"mappings" validate:"required"`
}

// QueryDTO - прямой запрос к удаленной коллекции по одному полю.
type QueryDTO struct {
	Field string `query:"field" validate:"required"`
	Value string `query:"value"`
}

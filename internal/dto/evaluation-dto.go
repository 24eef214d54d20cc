package dto

import (
	"github.com/aarondl/null/v8"

	"supplier-hub/internal/entities"
)

type RatingsDTO struct {
	Quality       float64 `json:"quality" validate:"rating"`
	Price         float64 `json:"price" validate:"rating"`
	Delivery      float64 `json:"delivery" validate:"rating"`
	Communication float64 `json:"communication" validate:"rating"`
}

// EvaluationDTO: overall не принимается, он всегда пересчитывается.
type EvaluationDTO struct {
	SupplierID          string      `json:"supplierId" validate:"required"`
	Evaluator           string      `json:"evaluator" validate:"required,max=255"`
	Date                null.Time   `json:"date"`
	Ratings             RatingsDTO  `json:"ratings"`
	Comments            string      `json:"comments"`
	Type                null.String `json:"type" validate:"omitempty,oneof=positive negative"`
	PurchaseOrderNumber string      `json:"purchaseOrderNumber" validate:"omitempty,max=100"`
}

func (d EvaluationDTO) ToEntity() entities.Evaluation {
	e := entities.Evaluation{
		SupplierID: d.SupplierID,
		Evaluator:  d.Evaluator,
		Ratings: entities.Ratings{
			Quality:       d.Ratings.Quality,
			Price:         d.Ratings.Price,
			Delivery:      d.Ratings.Delivery,
			Communication: d.Ratings.Communication,
		},
		Comments:            d.Comments,
		Type:                entities.EvaluationType(d.Type.String),
		PurchaseOrderNumber: d.PurchaseOrderNumber,
	}
	if d.Date.Valid {
		e.Date = d.Date.Time
	}
	return e
}

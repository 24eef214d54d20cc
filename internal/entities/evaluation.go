package entities

import (
	"time"

	"supplier-hub/pkg/types"
)

type EvaluationType string

const (
	EvaluationPositive EvaluationType = "positive"
	EvaluationNegative EvaluationType = "negative"
)

func (t EvaluationType) Valid() bool {
	return t == EvaluationPositive || t == EvaluationNegative
}

type Ratings struct {
	Quality       float64 `json:"quality"`
	Price         float64 `json:"price"`
	Delivery      float64 `json:"delivery"`
	Communication float64 `json:"communication"`
	Overall       float64 `json:"overall"`
}

// WithOverall возвращает копию с Overall, равным среднему четырех оценок.
func (r Ratings) WithOverall() Ratings {
	r.Overall = (r.Quality + r.Price + r.Delivery + r.Communication) / 4
	return r
}

type Evaluation struct {
	ID                  string         `json:"id"`
	SupplierID          string         `json:"supplierId"`
	Evaluator           string         `json:"evaluator"`
	Date                time.Time      `json:"date"`
	Ratings             Ratings        `json:"ratings"`
	Comments            string         `json:"comments"`
	Attachments         []Document     `json:"attachments"`
	Type                EvaluationType `json:"type"`
	PurchaseOrderNumber string         `json:"purchaseOrderNumber"`

	types.BaseEntity
}

func ApplyEvaluationDefaults(e *Evaluation) {
	if e.Attachments == nil {
		e.Attachments = []Document{}
	}
}

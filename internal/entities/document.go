package entities

import (
	"time"

	"supplier-hub/pkg/types"
)

// Document может быть привязан к поставщику, оценке и несоответствию одновременно.
type Document struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	URL             string    `json:"url"`
	Type            string    `json:"type"`
	Size            int64     `json:"size"`
	UploadedBy      string    `json:"uploadedBy"`
	UploadedAt      time.Time `json:"uploadedAt"`
	SupplierID      *string   `json:"supplierId,omitempty"`
	EvaluationID    *string   `json:"evaluationId,omitempty"`
	NonConformityID *string   `json:"nonConformityId,omitempty"`

	types.BaseEntity
}

type RecommendationType string

const (
	RecommendationImprovement    RecommendationType = "improvement"
	RecommendationWarning        RecommendationType = "warning"
	RecommendationActionRequired RecommendationType = "action_required"
	RecommendationRecognition    RecommendationType = "recognition"
)

// Recommendation существует только в памяти: удаленной таблицы для нее нет.
type Recommendation struct {
	ID          string             `json:"id"`
	SupplierID  string             `json:"supplierId"`
	Type        RecommendationType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    string             `json:"priority"`
	CreatedAt   time.Time          `json:"createdAt"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	Status      string             `json:"status"`
	AIGenerated bool               `json:"aiGenerated"`
}

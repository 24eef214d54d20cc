package entities

import (
	"time"

	"supplier-hub/pkg/types"
)

// NonConformityGracePeriod - срок на устранение по умолчанию.
const NonConformityGracePeriod = 7 * 24 * time.Hour

const DefaultNonConformityImpact = "Pending assessment"

type NonConformityType string

const (
	NonConformityQuality       NonConformityType = "quality"
	NonConformityDelivery      NonConformityType = "delivery"
	NonConformityDocumentation NonConformityType = "documentation"
	NonConformityCommunication NonConformityType = "communication"
	NonConformityOther         NonConformityType = "other"
)

func (t NonConformityType) Valid() bool {
	switch t {
	case NonConformityQuality, NonConformityDelivery, NonConformityDocumentation, NonConformityCommunication, NonConformityOther:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type NonConformityStatus string

const (
	NonConformityOpen       NonConformityStatus = "open"
	NonConformityInProgress NonConformityStatus = "in_progress"
	NonConformityResolved   NonConformityStatus = "resolved"
	NonConformityEscalated  NonConformityStatus = "escalated"
)

var nonConformityTransitions = map[NonConformityStatus][]NonConformityStatus{
	NonConformityOpen:       {NonConformityInProgress, NonConformityResolved, NonConformityEscalated},
	NonConformityInProgress: {NonConformityResolved, NonConformityEscalated},
	NonConformityEscalated:  {NonConformityInProgress, NonConformityResolved},
	NonConformityResolved:   {},
}

func (s NonConformityStatus) Valid() bool {
	_, ok := nonConformityTransitions[s]
	return ok
}

// CanTransitionTo: повтор того же статуса разрешен, resolved - конечный.
func (s NonConformityStatus) CanTransitionTo(next NonConformityStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range nonConformityTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type NonConformity struct {
	ID                 string              `json:"id"`
	SupplierID         string              `json:"supplierId"`
	Type               NonConformityType   `json:"type"`
	Severity           Severity            `json:"severity"`
	Description        string              `json:"description"`
	ReportedDate       time.Time           `json:"reportedDate"`
	Status             NonConformityStatus `json:"status"`
	ResolutionDeadline time.Time           `json:"resolutionDeadline"`
	ResolutionDate     *time.Time          `json:"resolutionDate,omitempty"`
	Resolution         *string             `json:"resolution,omitempty"`
	EscalationReason   *string             `json:"escalationReason,omitempty"`
	Impact             string              `json:"impact"`
	Attachments        []Document          `json:"attachments"`

	types.BaseEntity
}

func ApplyNonConformityDefaults(nc *NonConformity) {
	if nc.Attachments == nil {
		nc.Attachments = []Document{}
	}
}

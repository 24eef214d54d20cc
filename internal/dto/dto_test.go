package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-hub/internal/entities"
)

func TestSupplierDTO_ToEntity_OptionalFields(t *testing.T) {
	var d SupplierDTO
	require.NoError(t, json.Unmarshal([]byte(`{"name":" Acme ","email":"A@Acme.com","whatsapp":null}`), &d))

	s := d.ToEntity()
	assert.Equal(t, "Acme", s.Name)
	assert.Equal(t, "a@acme.com", s.Email)
	assert.Nil(t, s.Whatsapp)
	assert.Nil(t, s.Address)
	assert.Nil(t, s.LastEvaluation)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme","address":"Rua A 10"}`), &d))
	s = d.ToEntity()
	require.NotNil(t, s.Address)
	assert.Equal(t, "Rua A 10", *s.Address)
}

func TestUpdateNonConformityDTO_Apply(t *testing.T) {
	current := entities.NonConformity{
		ID:          "nc1",
		Status:      entities.NonConformityOpen,
		Severity:    entities.SeverityHigh,
		Description: "lote avariado",
		Impact:      "parada de linha",
	}

	var d UpdateNonConformityDTO
	require.NoError(t, json.Unmarshal([]byte(`{"status":"escalated","escalationReason":"sem resposta"}`), &d))
	got := d.Apply(current)

	assert.Equal(t, entities.NonConformityEscalated, got.Status)
	require.NotNil(t, got.EscalationReason)
	assert.Equal(t, "sem resposta", *got.EscalationReason)
	assert.Equal(t, entities.SeverityHigh, got.Severity)
	assert.Equal(t, "lote avariado", got.Description)
	assert.Equal(t, "parada de linha", got.Impact)
	assert.Nil(t, got.ResolutionDate)
}

func TestEvaluationDTO_ToEntity(t *testing.T) {
	var d EvaluationDTO
	require.NoError(t, json.Unmarshal([]byte(`{
		"supplierId":"s1","evaluator":"maria","date":"2026-03-01T10:00:00Z",
		"ratings":{"quality":4,"price":3,"delivery":5,"communication":4}
	}`), &d))

	e := d.ToEntity()
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), e.Date)
	assert.Equal(t, 5.0, e.Ratings.Delivery)
	assert.Zero(t, e.Ratings.Overall)
	assert.Empty(t, e.Type)
}

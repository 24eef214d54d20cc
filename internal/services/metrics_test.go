package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplier-hub/internal/entities"
	"supplier-hub/pkg/types"
)

func eval(supplierID string, date time.Time, q, d float64, typ entities.EvaluationType) entities.Evaluation {
	return entities.Evaluation{
		SupplierID: supplierID,
		Date:       date,
		Ratings:    entities.Ratings{Quality: q, Delivery: d, Price: 3, Communication: 3}.WithOverall(),
		Type:       typ,
	}
}

func TestComputeMetrics(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	evals := []entities.Evaluation{
		eval("s1", feb, 5, 5, entities.EvaluationPositive),
		eval("s1", jan, 4, 2, entities.EvaluationPositive),
		eval("s1", jan, 3, 4, entities.EvaluationPositive),
		eval("s1", feb, 2, 1, entities.EvaluationNegative),
		eval("s2", jan, 1, 1, entities.EvaluationNegative),
	}
	ncs := []entities.NonConformity{
		{SupplierID: "s1", ReportedDate: jan},
		{SupplierID: "s2", ReportedDate: jan},
	}

	m := ComputeMetrics("s1", evals, ncs, testNow)

	assert.Equal(t, 4, m.TotalEvaluations)
	assert.Equal(t, 3, m.PositiveEvaluations)
	assert.Equal(t, 1, m.NegativeEvaluations)
	assert.InDelta(t, 3.5, m.QualityScore, 1e-9)
	assert.InDelta(t, 50.0, m.DeliveryRate, 1e-9)
	assert.InDelta(t, 25.0, m.NonConformityRate, 1e-9)
	assert.InDelta(t, 50.0, m.NPSScore, 1e-9)
	assert.Equal(t, testNow, m.LastUpdated)

	require.Len(t, m.HistoricalData, 2)
	assert.Equal(t, time.January, m.HistoricalData[0].Date.Month())
	assert.Equal(t, 2, m.HistoricalData[0].PositiveEvaluations)
	assert.InDelta(t, 50.0, m.HistoricalData[0].NonConformityRate, 1e-9)
	assert.Equal(t, time.February, m.HistoricalData[1].Date.Month())
	assert.InDelta(t, 0.0, m.HistoricalData[1].NPSScore, 1e-9)
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics("s1", nil, nil, testNow)

	assert.Equal(t, 0, m.TotalEvaluations)
	assert.Zero(t, m.NPSScore)
	assert.Zero(t, m.NonConformityRate)
	assert.NotNil(t, m.HistoricalData)
	assert.Empty(t, m.HistoricalData)
}

func TestComputeMetrics_NonConformitiesWithoutEvaluations(t *testing.T) {
	ncs := []entities.NonConformity{{SupplierID: "s1", ReportedDate: testNow}, {SupplierID: "s1", ReportedDate: testNow}}

	m := ComputeMetrics("s1", nil, ncs, testNow)

	assert.InDelta(t, 200.0, m.NonConformityRate, 1e-9)
	require.Len(t, m.HistoricalData, 1)
}

func TestBuildDashboard(t *testing.T) {
	suppliers := []entities.Supplier{
		{ID: "s1", Name: "Acme", Category: "raw-materials", Status: entities.SupplierStatusActive, AverageRating: 4.5},
		{ID: "s2", Name: "Beta", Category: "logistics", Status: entities.SupplierStatusBlocked, AverageRating: 1.2},
		{ID: "s3", Name: "Gama", Category: "raw-materials", Status: entities.SupplierStatusTemporarilyBlocked},
	}
	evals := []entities.Evaluation{eval("s1", testNow, 4, 4, entities.EvaluationPositive)}
	ncs := []entities.NonConformity{
		{SupplierID: "s2", Status: entities.NonConformityOpen},
		{SupplierID: "s2", Status: entities.NonConformityResolved},
		{SupplierID: "s3", Status: entities.NonConformityEscalated},
	}

	d := BuildDashboard(suppliers, evals, ncs, testNow)

	assert.Equal(t, 3, d.TotalSuppliers)
	assert.Equal(t, 1, d.TotalEvaluations)
	assert.Equal(t, 2, d.OpenNonConformities)
	require.Len(t, d.CriticalSuppliers, 2)
	assert.Equal(t, "s2", d.CriticalSuppliers[0].ID)
	assert.Equal(t, []types.DashboardRating{{Name: "Acme", Rating: 4.5}, {Name: "Beta", Rating: 1.2}, {Name: "Gama", Rating: 0}}, d.AverageRatings)
	assert.Equal(t, []types.DashboardChartData{
		{Label: "logistics", Value: 1},
		{Label: "raw-materials", Value: 2},
	}, d.SuppliersByCategory)
	assert.Equal(t, []types.DashboardChartData{
		{Label: "escalated", Value: 1},
		{Label: "open", Value: 1},
		{Label: "resolved", Value: 1},
	}, d.NonConformityStatus)
	assert.InDelta(t, 100.0/3, d.Averages.DeliveryRate, 1e-9)
}

func TestStore_SupplierMetricsAndDashboard(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	sup := addAcme(t, store)
	_, err := store.AddEvaluation(ctx, entities.Evaluation{SupplierID: sup.ID, Ratings: entities.Ratings{Quality: 4, Price: 3, Delivery: 5, Communication: 4}})
	require.NoError(t, err)

	m, ok := store.SupplierMetrics(sup.ID)
	require.True(t, ok)
	assert.Equal(t, 1, m.TotalEvaluations)
	assert.InDelta(t, 100.0, m.NPSScore, 1e-9)

	// встроенные метрики не пересчитываются
	cached, _ := store.Supplier(sup.ID)
	assert.Equal(t, 0, cached.Metrics.TotalEvaluations)

	_, ok = store.SupplierMetrics("missing")
	assert.False(t, ok)

	d := store.Dashboard()
	assert.Equal(t, 1, d.TotalSuppliers)
	assert.Equal(t, 1, d.TotalEvaluations)
}

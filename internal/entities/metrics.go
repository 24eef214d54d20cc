package entities

import "time"

type SupplierMetrics struct {
	DeliveryRate        float64         `json:"deliveryRate"`
	NonConformityRate   float64         `json:"nonConformityRate"`
	NPSScore            float64         `json:"npsScore"`
	ResponseTime        float64         `json:"responseTime"`
	QualityScore        float64         `json:"qualityScore"`
	PositiveEvaluations int             `json:"positiveEvaluations"`
	NegativeEvaluations int             `json:"negativeEvaluations"`
	TotalEvaluations    int             `json:"totalEvaluations"`
	LastUpdated         time.Time       `json:"lastUpdated"`
	HistoricalData      []MetricHistory `json:"historicalData"`
}

type MetricHistory struct {
	Date                time.Time `json:"date"`
	DeliveryRate        float64   `json:"deliveryRate"`
	NonConformityRate   float64   `json:"nonConformityRate"`
	NPSScore            float64   `json:"npsScore"`
	QualityScore        float64   `json:"qualityScore"`
	PositiveEvaluations int       `json:"positiveEvaluations"`
	NegativeEvaluations int       `json:"negativeEvaluations"`
}

// NewSupplierMetrics - нулевые метрики. Метрики не хранятся в БД.
func NewSupplierMetrics(now time.Time) SupplierMetrics {
	return SupplierMetrics{
		LastUpdated:    now,
		HistoricalData: []MetricHistory{},
	}
}

package types

// Сводка по поставщикам для главной страницы
type SupplierDashboard struct {
	TotalSuppliers      int                    `json:"total_suppliers"`
	TotalEvaluations    int                    `json:"total_evaluations"`
	OpenNonConformities int                    `json:"open_non_conformities"`
	CriticalSuppliers   []DashboardSupplierRef `json:"critical_suppliers"`
	AverageRatings      []DashboardRating      `json:"average_ratings"`
	StatusCounts        []DashboardChartData   `json:"status_counts"`
	NonConformityStatus []DashboardChartData   `json:"non_conformity_status"`
	SuppliersByCategory []DashboardChartData   `json:"suppliers_by_category"`
	Averages            DashboardAverages      `json:"averages"`
}

type DashboardSupplierRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type DashboardRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// Средние по выбранным поставщикам
type DashboardAverages struct {
	DeliveryRate      float64 `json:"delivery_rate"`
	NonConformityRate float64 `json:"non_conformity_rate"`
	NPSScore          float64 `json:"nps_score"`
	QualityScore      float64 `json:"quality_score"`
}

type DashboardChartData struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

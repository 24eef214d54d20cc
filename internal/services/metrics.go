package services

import (
	"sort"
	"time"

	"supplier-hub/internal/entities"
	"supplier-hub/pkg/types"
)

// ComputeMetrics считает метрики поставщика по истории оценок и несоответствий.
// Результат отдается рядом с сущностью и не подменяет встроенные Metrics.
func ComputeMetrics(supplierID string, evals []entities.Evaluation, ncs []entities.NonConformity, now time.Time) entities.SupplierMetrics {
	own := make([]entities.Evaluation, 0, len(evals))
	for _, e := range evals {
		if e.SupplierID == supplierID {
			own = append(own, e)
		}
	}
	ownNC := 0
	for _, nc := range ncs {
		if nc.SupplierID == supplierID {
			ownNC++
		}
	}

	m := entities.NewSupplierMetrics(now)
	fillMetrics(&m, own, ownNC)

	byMonth := map[time.Time][]entities.Evaluation{}
	for _, e := range own {
		month := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[month] = append(byMonth[month], e)
	}
	ncByMonth := map[time.Time]int{}
	for _, nc := range ncs {
		if nc.SupplierID != supplierID {
			continue
		}
		month := time.Date(nc.ReportedDate.Year(), nc.ReportedDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		ncByMonth[month]++
		if _, ok := byMonth[month]; !ok {
			byMonth[month] = nil
		}
	}

	for month, items := range byMonth {
		var point entities.SupplierMetrics
		fillMetrics(&point, items, ncByMonth[month])
		m.HistoricalData = append(m.HistoricalData, entities.MetricHistory{
			Date:                month,
			DeliveryRate:        point.DeliveryRate,
			NonConformityRate:   point.NonConformityRate,
			NPSScore:            point.NPSScore,
			QualityScore:        point.QualityScore,
			PositiveEvaluations: point.PositiveEvaluations,
			NegativeEvaluations: point.NegativeEvaluations,
		})
	}
	sort.Slice(m.HistoricalData, func(i, j int) bool {
		return m.HistoricalData[i].Date.Before(m.HistoricalData[j].Date)
	})
	return m
}

func fillMetrics(m *entities.SupplierMetrics, evals []entities.Evaluation, ncCount int) {
	total := len(evals)
	m.TotalEvaluations = total

	var quality float64
	delivered := 0
	for _, e := range evals {
		quality += e.Ratings.Quality
		if e.Ratings.Delivery >= PositiveThreshold {
			delivered++
		}
		if e.Type == entities.EvaluationPositive {
			m.PositiveEvaluations++
		} else {
			m.NegativeEvaluations++
		}
	}

	m.NonConformityRate = float64(ncCount) / float64(max(total, 1)) * 100
	if total == 0 {
		return
	}
	m.QualityScore = quality / float64(total)
	m.DeliveryRate = float64(delivered) / float64(total) * 100
	m.NPSScore = float64(m.PositiveEvaluations-m.NegativeEvaluations) / float64(total) * 100
}

// BuildDashboard собирает сводку по кешу. Вложенные коллекции поставщиков
// должны быть уже спроецированы.
func BuildDashboard(suppliers []entities.Supplier, evals []entities.Evaluation, ncs []entities.NonConformity, now time.Time) types.SupplierDashboard {
	d := types.SupplierDashboard{
		TotalSuppliers:      len(suppliers),
		TotalEvaluations:    len(evals),
		CriticalSuppliers:   []types.DashboardSupplierRef{},
		AverageRatings:      make([]types.DashboardRating, 0, len(suppliers)),
		StatusCounts:        []types.DashboardChartData{},
		NonConformityStatus: []types.DashboardChartData{},
		SuppliersByCategory: []types.DashboardChartData{},
	}

	statuses := map[string]int64{}
	categories := map[string]int64{}
	for _, s := range suppliers {
		d.AverageRatings = append(d.AverageRatings, types.DashboardRating{Name: s.Name, Rating: s.AverageRating})
		statuses[string(s.Status)]++
		categories[s.Category]++
		if s.Status == entities.SupplierStatusBlocked || s.Status == entities.SupplierStatusTemporarilyBlocked {
			d.CriticalSuppliers = append(d.CriticalSuppliers, types.DashboardSupplierRef{
				ID: s.ID, Name: s.Name, Status: string(s.Status),
			})
		}

		m := ComputeMetrics(s.ID, evals, ncs, now)
		d.Averages.DeliveryRate += m.DeliveryRate
		d.Averages.NonConformityRate += m.NonConformityRate
		d.Averages.NPSScore += m.NPSScore
		d.Averages.QualityScore += m.QualityScore
	}
	if n := float64(len(suppliers)); n > 0 {
		d.Averages.DeliveryRate /= n
		d.Averages.NonConformityRate /= n
		d.Averages.NPSScore /= n
		d.Averages.QualityScore /= n
	}

	ncStatuses := map[string]int64{}
	for _, nc := range ncs {
		ncStatuses[string(nc.Status)]++
		if nc.Status != entities.NonConformityResolved {
			d.OpenNonConformities++
		}
	}

	d.StatusCounts = chartData(statuses)
	d.NonConformityStatus = chartData(ncStatuses)
	d.SuppliersByCategory = chartData(categories)
	return d
}

func chartData(counts map[string]int64) []types.DashboardChartData {
	out := make([]types.DashboardChartData, 0, len(counts))
	for label, v := range counts {
		out = append(out, types.DashboardChartData{Label: label, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// SupplierMetrics - производные метрики поставщика из кеша.
func (s *Store) SupplierMetrics(id string) (entities.SupplierMetrics, bool) {
	st := s.snapshotState()
	found := false
	for _, sup := range st.suppliers {
		if sup.ID == id {
			found = true
			break
		}
	}
	if !found {
		return entities.SupplierMetrics{}, false
	}
	return ComputeMetrics(id, st.evaluations, st.nonConformities, s.now()), true
}

func (s *Store) Dashboard() types.SupplierDashboard {
	st := s.snapshotState()
	return BuildDashboard(newView(st).suppliers(), st.evaluations, st.nonConformities, s.now())
}

package services

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"supplier-hub/internal/entities"
)

const (
	reportSuppliersSheet       = "Поставщики"
	reportNonConformitiesSheet = "Несоответствия"
)

var supplierReportHeaders = []string{
	"Поставщик", "Юр. название", "Документ", "Категория", "Email", "Телефон", "Статус",
	"Средняя оценка", "Оценок", "Положительных", "Качество", "Доставка, %", "Несоответствия, %", "NPS",
}

var nonConformityReportHeaders = []string{
	"Поставщик", "Тип", "Критичность", "Статус", "Описание", "Дата", "Срок", "Решено",
}

// WriteSuppliersReport пишет XLSX-отчет по снимку стора.
func WriteSuppliersReport(w io.Writer, snap Snapshot, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSuppliersSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(reportNonConformitiesSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeHeader(f, reportSuppliersSheet, supplierReportHeaders, bold); err != nil {
		return err
	}
	if err := writeHeader(f, reportNonConformitiesSheet, nonConformityReportHeaders, bold); err != nil {
		return err
	}

	var ncs []entities.NonConformity
	for i, s := range snap.Suppliers {
		m := ComputeMetrics(s.ID, snap.Evaluations, s.NonConformities, now)
		row := []interface{}{
			s.Name, s.LegalName, s.DocumentNumber, s.Category, s.Email, s.Phone, string(s.Status),
			round2(s.AverageRating), m.TotalEvaluations, m.PositiveEvaluations,
			round2(m.QualityScore), round2(m.DeliveryRate), round2(m.NonConformityRate), round2(m.NPSScore),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reportSuppliersSheet, cell, &row); err != nil {
			return err
		}
		ncs = append(ncs, s.NonConformities...)
	}

	names := make(map[string]string, len(snap.Suppliers))
	for _, s := range snap.Suppliers {
		names[s.ID] = s.Name
	}
	for i, nc := range ncs {
		resolved := ""
		if nc.ResolutionDate != nil {
			resolved = nc.ResolutionDate.Format("02.01.2006")
		}
		row := []interface{}{
			names[nc.SupplierID], string(nc.Type), string(nc.Severity), string(nc.Status), nc.Description,
			nc.ReportedDate.Format("02.01.2006"), nc.ResolutionDeadline.Format("02.01.2006"), resolved,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reportNonConformitiesSheet, cell, &row); err != nil {
			return err
		}
	}

	f.SetColWidth(reportSuppliersSheet, "A", "B", 30)
	f.SetColWidth(reportSuppliersSheet, "C", "F", 20)
	f.SetColWidth(reportNonConformitiesSheet, "A", "A", 30)
	f.SetColWidth(reportNonConformitiesSheet, "E", "E", 50)

	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ReportFileName - имя файла отчета на дату.
func ReportFileName(now time.Time) string {
	return fmt.Sprintf("suppliers_%s.xlsx", now.Format("2006-01-02"))
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	apperrors "supplier-hub/pkg/errors"
)

// Поля, которые обязательно должны быть сопоставлены с колонками файла.
var RequiredImportFields = []string{"name", "email", "category"}

const previewRows = 5

type ImportPreview struct {
	Columns  []string            `json:"columns"`
	Rows     []map[string]string `json:"rows"`
	Mappings map[string]string   `json:"mappings"`
}

type ImportResult struct {
	Rows      int                 `json:"rows"`
	Skipped   int                 `json:"skipped"`
	Suppliers []entities.Supplier `json:"suppliers"`
}

type SupplierImporter struct {
	store  *Store
	logger *zap.Logger
}

func NewSupplierImporter(store *Store, logger *zap.Logger) *SupplierImporter {
	return &SupplierImporter{store: store, logger: logger}
}

// Preview читает шапку и первые строки и подставляет сохраненные сопоставления.
func (i *SupplierImporter) Preview(r io.Reader, fileName string) (ImportPreview, error) {
	header, rows, err := ReadTable(r, fileName)
	if err != nil {
		return ImportPreview{}, err
	}

	saved := i.store.ColumnMappings()
	mappings := make(map[string]string)
	for _, col := range header {
		if target, ok := saved[col]; ok {
			mappings[col] = target
		}
	}

	preview := ImportPreview{Columns: header, Rows: []map[string]string{}, Mappings: mappings}
	for _, row := range rows {
		if len(preview.Rows) == previewRows {
			break
		}
		preview.Rows = append(preview.Rows, rowMap(header, row))
	}
	return preview, nil
}

// Import превращает строки файла в поставщиков и создает их одним пакетом.
// Пустые mappings означают сохраненные в сторе сопоставления; непустые
// дописываются к сохраненным.
func (i *SupplierImporter) Import(ctx context.Context, r io.Reader, fileName string, mappings map[string]string) (ImportResult, error) {
	header, rows, err := ReadTable(r, fileName)
	if err != nil {
		return ImportResult{}, err
	}

	if len(mappings) == 0 {
		mappings = i.store.ColumnMappings()
	} else {
		merged := i.store.ColumnMappings()
		for col, target := range mappings {
			merged[col] = target
		}
		i.store.SetColumnMappings(merged)
	}

	if err := validateImportMappings(header, mappings); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Rows: len(rows)}
	batch := make([]entities.Supplier, 0, len(rows))
	for _, row := range rows {
		values := rowMap(header, row)
		if isBlankRow(values) {
			result.Skipped++
			continue
		}
		batch = append(batch, supplierFromRow(values, mappings))
	}

	created, err := i.store.AddSuppliers(ctx, batch)
	if err != nil {
		i.logger.Warn("импорт поставщиков отклонен", zap.String("file", fileName), zap.Error(err))
		return ImportResult{}, err
	}
	result.Suppliers = created

	i.logger.Info("импорт поставщиков завершен",
		zap.String("file", fileName),
		zap.Int("rows", result.Rows),
		zap.Int("created", len(created)),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func validateImportMappings(header []string, mappings map[string]string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	mapped := make(map[string]bool)
	for col, target := range mappings {
		if present[col] && target != "" {
			mapped[target] = true
		}
	}
	var missing []string
	for _, f := range RequiredImportFields {
		if !mapped[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("mappings", "не сопоставлены обязательные поля: %s", strings.Join(missing, ", "))
	}
	return nil
}

func supplierFromRow(values map[string]string, mappings map[string]string) entities.Supplier {
	s := entities.Supplier{CustomFields: map[string]string{}}
	for col, target := range mappings {
		v, ok := values[col]
		if !ok || target == "" {
			continue
		}
		switch target {
		case "name":
			s.Name = v
		case "legalName":
			s.LegalName = v
		case "documentNumber":
			s.DocumentNumber = v
		case "category":
			s.Category = v
		case "email":
			s.Email = v
		case "phone":
			s.Phone = v
		case "whatsapp":
			s.Whatsapp = optional(v)
		case "address":
			s.Address = optional(v)
		case "locationUrl":
			s.LocationURL = optional(v)
		case "status":
			s.Status = entities.SupplierStatus(strings.ToLower(v))
		default:
			if v != "" {
				s.CustomFields[target] = v
			}
		}
	}
	return s
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func rowMap(header, row []string) map[string]string {
	m := make(map[string]string, len(header))
	for idx, col := range header {
		if idx < len(row) {
			m[col] = strings.TrimSpace(row[idx])
		} else {
			m[col] = ""
		}
	}
	return m
}

func isBlankRow(values map[string]string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadTable читает CSV или XLSX (первый лист). Первая строка - шапка.
func ReadTable(r io.Reader, fileName string) (header []string, rows [][]string, err error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, nil, apperrors.NewValidationError("file", "поддерживаются только .csv и .xlsx")
	}
	if err != nil {
		return nil, nil, apperrors.NewValidationError("file", "не удалось прочитать файл: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil, apperrors.NewValidationError("file", "файл пуст")
	}

	header = make([]string, len(rows[0]))
	for idx, col := range rows[0] {
		header[idx] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}
	return header, rows[1:], nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	// выгрузки из таблиц часто разделены точкой с запятой
	if first, _, _ := bytes.Cut(data, []byte("\n")); bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		reader.Comma = ';'
	}
	return reader.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("в книге нет листов")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("лист %s: %w", sheets[0], err)
	}
	return rows, nil
}

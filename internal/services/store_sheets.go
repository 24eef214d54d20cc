package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/events"
	"supplier-hub/internal/integrations"
	"supplier-hub/internal/integrations/dto"
	apperrors "supplier-hub/pkg/errors"
)

// SetColumnMappings заменяет сопоставление колонок импорта целиком.
// Только локальное состояние, удаленно не сохраняется.
func (s *Store) SetColumnMappings(mappings map[string]string) {
	next := copyMap(mappings)
	s.mutate(func(st *storeState) {
		st.columnMappings = next
	})
}

// SpreadsheetID достает идентификатор таблицы из ссылки вида
// https://docs.google.com/spreadsheets/d/<id>/edit. Без сегмента /d/
// берется предпоследний сегмент пути.
func SpreadsheetID(rawURL string) string {
	path := strings.TrimSpace(rawURL)
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.Path
	}
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "d" && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return ""
}

// LinkGoogleSheet читает таблицу через активного провайдера и сохраняет
// ее идентификатор у поставщика.
func (s *Store) LinkGoogleSheet(ctx context.Context, id, sheetURL string) (snap *dto.SheetSnapshot, err error) {
	defer s.observe("linkGoogleSheet", time.Now(), &err)

	spreadsheetID := SpreadsheetID(sheetURL)
	if spreadsheetID == "" {
		return nil, apperrors.NewValidationError("url", "не удалось определить идентификатор таблицы")
	}
	if s.sheets == nil {
		return nil, apperrors.NewHttpError(501, "интеграция с таблицами не настроена", nil, nil)
	}

	current, ok := s.Supplier(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("suppliers", id)
	}

	provider, err := s.sheets.GetActive()
	if err != nil {
		return nil, err
	}
	snap, err = integrations.FetchSnapshot(ctx, provider, spreadsheetID)
	if err != nil {
		return nil, err
	}

	current.GoogleSheetID = spreadsheetID
	var updated entities.Supplier
	err = s.withGuard(ctx, "suppliers", id, func() error {
		var err error
		updated, err = s.repos.Suppliers.Update(ctx, id, current)
		return err
	})
	if err != nil {
		return nil, err
	}
	updated.Recommendations = current.Recommendations

	s.mutate(func(st *storeState) {
		st.suppliers = replaceOrAppend(st.suppliers, updated, supplierID)
	})
	s.logger.Info("таблица привязана к поставщику",
		zap.String("supplierId", id),
		zap.String("spreadsheetId", spreadsheetID),
		zap.Int("employees", len(snap.Employees)))
	s.publish(ctx, entitySupplier, events.ActionLinked, id, snap)
	return snap, nil
}

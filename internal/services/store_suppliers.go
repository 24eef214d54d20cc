package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/events"
	apperrors "supplier-hub/pkg/errors"
)

const entitySupplier = "supplier"

func validateSupplier(s *entities.Supplier) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return apperrors.NewValidationError("name", "обязательное поле")
	}
	if s.Status == "" {
		s.Status = entities.SupplierStatusActive
	}
	if !s.Status.Valid() {
		return apperrors.NewValidationError("status", "неизвестный статус %q", s.Status)
	}
	return nil
}

// AddSupplier создает поставщика удаленно и добавляет в кеш ответ сервера,
// поэтому id в кеше всегда серверный.
func (s *Store) AddSupplier(ctx context.Context, data entities.Supplier) (created entities.Supplier, err error) {
	defer s.observe("addSupplier", time.Now(), &err)

	if err := validateSupplier(&data); err != nil {
		return entities.Supplier{}, err
	}

	created, err = s.repos.Suppliers.Create(ctx, data)
	if err != nil {
		return entities.Supplier{}, err
	}
	created.Recommendations = orEmpty(data.Recommendations)

	s.mutate(func(st *storeState) {
		st.suppliers = appendCopy(st.suppliers, created)
	})
	s.logger.Info("поставщик добавлен", zap.String("id", created.ID), zap.String("name", created.Name))
	s.publish(ctx, entitySupplier, events.ActionCreated, created.ID, created)

	return s.projectSupplier(created), nil
}

// AddSuppliers создает пакет в одной удаленной транзакции. Любая ошибка
// откатывает весь пакет, кеш при этом не меняется.
func (s *Store) AddSuppliers(ctx context.Context, batch []entities.Supplier) (created []entities.Supplier, err error) {
	defer s.observe("addSuppliers", time.Now(), &err)

	if len(batch) == 0 {
		return []entities.Supplier{}, nil
	}

	prepared := make([]entities.Supplier, len(batch))
	copy(prepared, batch)
	for i := range prepared {
		if err := validateSupplier(&prepared[i]); err != nil {
			return nil, fmt.Errorf("поставщик #%d: %w", i+1, err)
		}
	}

	created, err = s.repos.Suppliers.CreateBatch(ctx, prepared)
	if err != nil {
		s.logger.Warn("пакет поставщиков отклонен", zap.Int("size", len(batch)), zap.Error(err))
		return nil, err
	}

	s.mutate(func(st *storeState) {
		st.suppliers = appendCopy(st.suppliers, created...)
	})
	s.logger.Info("пакет поставщиков добавлен", zap.Int("count", len(created)))
	for _, c := range created {
		s.publish(ctx, entitySupplier, events.ActionCreated, c.ID, c)
	}
	return created, nil
}

// UpdateSupplier полностью заменяет запись в кеше ответом сервера.
// Вложенные коллекции не затрагиваются: они проецируются из своих коллекций.
func (s *Store) UpdateSupplier(ctx context.Context, data entities.Supplier) (updated entities.Supplier, err error) {
	defer s.observe("updateSupplier", time.Now(), &err)

	if data.ID == "" {
		return entities.Supplier{}, apperrors.NewValidationError("id", "обязательное поле")
	}
	if err := validateSupplier(&data); err != nil {
		return entities.Supplier{}, err
	}

	err = s.withGuard(ctx, "suppliers", data.ID, func() error {
		var err error
		updated, err = s.repos.Suppliers.Update(ctx, data.ID, data)
		return err
	})
	if err != nil {
		return entities.Supplier{}, err
	}
	// рекомендации живут только в памяти, сервер их не возвращает
	updated.Recommendations = orEmpty(data.Recommendations)

	s.mutate(func(st *storeState) {
		st.suppliers = replaceOrAppend(st.suppliers, updated, supplierID)
	})
	s.logger.Info("поставщик обновлен", zap.String("id", updated.ID))
	s.publish(ctx, entitySupplier, events.ActionUpdated, updated.ID, updated)

	return s.projectSupplier(updated), nil
}

// DeleteSupplier удаляет поставщика и все, что от него зависит в кеше
// (удаленно это делают каскадные внешние ключи).
func (s *Store) DeleteSupplier(ctx context.Context, id string) (err error) {
	defer s.observe("deleteSupplier", time.Now(), &err)

	err = s.withGuard(ctx, "suppliers", id, func() error {
		return s.repos.Suppliers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.mutate(func(st *storeState) {
		evalIDs := map[string]bool{}
		ncIDs := map[string]bool{}
		for _, e := range st.evaluations {
			if e.SupplierID == id {
				evalIDs[e.ID] = true
			}
		}
		for _, nc := range st.nonConformities {
			if nc.SupplierID == id {
				ncIDs[nc.ID] = true
			}
		}

		st.suppliers = without(st.suppliers, func(sup entities.Supplier) bool { return sup.ID == id })
		st.evaluations = without(st.evaluations, func(e entities.Evaluation) bool { return evalIDs[e.ID] })
		st.nonConformities = without(st.nonConformities, func(nc entities.NonConformity) bool { return ncIDs[nc.ID] })
		st.documents = without(st.documents, func(d entities.Document) bool {
			return (d.SupplierID != nil && *d.SupplierID == id) ||
				(d.EvaluationID != nil && evalIDs[*d.EvaluationID]) ||
				(d.NonConformityID != nil && ncIDs[*d.NonConformityID])
		})
	})
	s.logger.Info("поставщик удален", zap.String("id", id))
	s.publish(ctx, entitySupplier, events.ActionDeleted, id, nil)
	return nil
}

// QuerySuppliers - запрос напрямую к удаленной коллекции, кеш не меняется.
func (s *Store) QuerySuppliers(ctx context.Context, field string, value any) (items []entities.Supplier, err error) {
	defer s.observe("querySuppliers", time.Now(), &err)
	return s.repos.Suppliers.ListByField(ctx, field, value)
}

func supplierID(s entities.Supplier) string { return s.ID }

package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/events"
	apperrors "supplier-hub/pkg/errors"
)

const entityNonConformity = "non_conformity"

// AddNonConformity создает запись в статусе open со сроком
// reportedDate + grace period. Если поставщик еще не загружен в кеш,
// запись все равно сохраняется и появится у него после загрузки.
func (s *Store) AddNonConformity(ctx context.Context, data entities.NonConformity) (created entities.NonConformity, err error) {
	defer s.observe("addNonConformity", time.Now(), &err)

	if data.SupplierID == "" {
		return entities.NonConformity{}, apperrors.NewValidationError("supplierId", "обязательное поле")
	}
	if data.Type == "" {
		data.Type = entities.NonConformityOther
	}
	if !data.Type.Valid() {
		return entities.NonConformity{}, apperrors.NewValidationError("type", "неизвестный тип %q", data.Type)
	}
	if data.Severity == "" {
		data.Severity = entities.SeverityMedium
	}
	if !data.Severity.Valid() {
		return entities.NonConformity{}, apperrors.NewValidationError("severity", "неизвестная критичность %q", data.Severity)
	}
	data.Status = entities.NonConformityOpen
	if data.ReportedDate.IsZero() {
		data.ReportedDate = s.now()
	}
	if data.ResolutionDeadline.IsZero() {
		data.ResolutionDeadline = data.ReportedDate.Add(s.gracePeriod)
	}
	if strings.TrimSpace(data.Impact) == "" {
		data.Impact = entities.DefaultNonConformityImpact
	}

	created, err = s.repos.NonConformities.Create(ctx, data)
	if err != nil {
		return entities.NonConformity{}, err
	}

	s.mutate(func(st *storeState) {
		st.nonConformities = appendCopy(st.nonConformities, created)
	})
	if _, ok := s.Supplier(created.SupplierID); !ok {
		s.logger.Warn("несоответствие создано для поставщика, которого нет в кеше",
			zap.String("id", created.ID),
			zap.String("supplierId", created.SupplierID))
	}
	s.logger.Info("несоответствие зарегистрировано",
		zap.String("id", created.ID),
		zap.String("severity", string(created.Severity)))
	s.publish(ctx, entityNonConformity, events.ActionCreated, created.ID, created)
	return created, nil
}

// UpdateNonConformity проверяет переход статуса относительно текущей версии.
// Переход в resolved проставляет дату решения, в escalated требует причину.
func (s *Store) UpdateNonConformity(ctx context.Context, data entities.NonConformity) (updated entities.NonConformity, err error) {
	defer s.observe("updateNonConformity", time.Now(), &err)

	if data.ID == "" {
		return entities.NonConformity{}, apperrors.NewValidationError("id", "обязательное поле")
	}
	if !data.Status.Valid() {
		return entities.NonConformity{}, apperrors.NewValidationError("status", "неизвестный статус %q", data.Status)
	}

	err = s.withGuard(ctx, "non_conformities", data.ID, func() error {
		current, err := s.currentNonConformity(ctx, data.ID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(data.Status) {
			return apperrors.NewValidationError("status", "переход %s -> %s запрещен", current.Status, data.Status)
		}
		switch data.Status {
		case entities.NonConformityResolved:
			if data.ResolutionDate == nil {
				now := s.now()
				data.ResolutionDate = &now
			}
		case entities.NonConformityEscalated:
			if data.EscalationReason == nil || strings.TrimSpace(*data.EscalationReason) == "" {
				return apperrors.NewValidationError("escalationReason", "обязательна при эскалации")
			}
		}

		updated, err = s.repos.NonConformities.Update(ctx, data.ID, data)
		return err
	})
	if err != nil {
		return entities.NonConformity{}, err
	}

	s.mutate(func(st *storeState) {
		st.nonConformities = replaceOrAppend(st.nonConformities, updated, nonConformityID)
	})
	s.logger.Info("несоответствие обновлено",
		zap.String("id", updated.ID),
		zap.String("status", string(updated.Status)))
	s.publish(ctx, entityNonConformity, events.ActionUpdated, updated.ID, updated)
	return updated, nil
}

// currentNonConformity берет запись из кеша, а если ее там нет, из удаленной коллекции.
func (s *Store) currentNonConformity(ctx context.Context, id string) (entities.NonConformity, error) {
	for _, nc := range s.snapshotState().nonConformities {
		if nc.ID == id {
			return nc, nil
		}
	}
	return s.repos.NonConformities.GetByID(ctx, id)
}

// FindNonConformity - запись из кеша с вложениями или, если ее там нет,
// из удаленной коллекции.
func (s *Store) FindNonConformity(ctx context.Context, id string) (entities.NonConformity, error) {
	if nc, ok := s.NonConformity(id); ok {
		return nc, nil
	}
	return s.repos.NonConformities.GetByID(ctx, id)
}

func (s *Store) QueryNonConformities(ctx context.Context, field string, value any) (items []entities.NonConformity, err error) {
	defer s.observe("queryNonConformities", time.Now(), &err)
	return s.repos.NonConformities.ListByField(ctx, field, value)
}

func nonConformityID(nc entities.NonConformity) string { return nc.ID }

package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/events"
	apperrors "supplier-hub/pkg/errors"
)

const entityEvaluation = "evaluation"

// PositiveThreshold - минимальная общая оценка положительного отзыва.
const PositiveThreshold = 3.0

// prepareEvaluation пересчитывает overall и выводит type, если он не задан.
func (s *Store) prepareEvaluation(e *entities.Evaluation) error {
	if e.SupplierID == "" {
		return apperrors.NewValidationError("supplierId", "обязательное поле")
	}
	e.Ratings = e.Ratings.WithOverall()
	if e.Type == "" {
		e.Type = entities.EvaluationNegative
		if e.Ratings.Overall >= PositiveThreshold {
			e.Type = entities.EvaluationPositive
		}
	}
	if !e.Type.Valid() {
		return apperrors.NewValidationError("type", "неизвестный тип %q", e.Type)
	}
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	return nil
}

func (s *Store) AddEvaluation(ctx context.Context, data entities.Evaluation) (created entities.Evaluation, err error) {
	defer s.observe("addEvaluation", time.Now(), &err)

	if err := s.prepareEvaluation(&data); err != nil {
		return entities.Evaluation{}, err
	}

	created, err = s.repos.Evaluations.Create(ctx, data)
	if err != nil {
		return entities.Evaluation{}, err
	}

	s.mutate(func(st *storeState) {
		st.evaluations = appendCopy(st.evaluations, created)
	})
	s.logger.Info("оценка добавлена",
		zap.String("id", created.ID),
		zap.String("supplierId", created.SupplierID),
		zap.Float64("overall", created.Ratings.Overall))
	s.publish(ctx, entityEvaluation, events.ActionCreated, created.ID, created)
	return created, nil
}

func (s *Store) UpdateEvaluation(ctx context.Context, data entities.Evaluation) (updated entities.Evaluation, err error) {
	defer s.observe("updateEvaluation", time.Now(), &err)

	if data.ID == "" {
		return entities.Evaluation{}, apperrors.NewValidationError("id", "обязательное поле")
	}
	if err := s.prepareEvaluation(&data); err != nil {
		return entities.Evaluation{}, err
	}

	err = s.withGuard(ctx, "evaluations", data.ID, func() error {
		var err error
		updated, err = s.repos.Evaluations.Update(ctx, data.ID, data)
		return err
	})
	if err != nil {
		return entities.Evaluation{}, err
	}

	s.mutate(func(st *storeState) {
		st.evaluations = replaceOrAppend(st.evaluations, updated, evaluationID)
	})
	s.logger.Info("оценка обновлена", zap.String("id", updated.ID))
	s.publish(ctx, entityEvaluation, events.ActionUpdated, updated.ID, updated)
	return updated, nil
}

func (s *Store) DeleteEvaluation(ctx context.Context, id string) (err error) {
	defer s.observe("deleteEvaluation", time.Now(), &err)

	err = s.withGuard(ctx, "evaluations", id, func() error {
		return s.repos.Evaluations.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.mutate(func(st *storeState) {
		st.evaluations = without(st.evaluations, func(e entities.Evaluation) bool { return e.ID == id })
		st.documents = without(st.documents, func(d entities.Document) bool {
			return d.EvaluationID != nil && *d.EvaluationID == id
		})
	})
	s.logger.Info("оценка удалена", zap.String("id", id))
	s.publish(ctx, entityEvaluation, events.ActionDeleted, id, nil)
	return nil
}

func (s *Store) QueryEvaluations(ctx context.Context, field string, value any) (items []entities.Evaluation, err error) {
	defer s.observe("queryEvaluations", time.Now(), &err)
	return s.repos.Evaluations.ListByField(ctx, field, value)
}

func evaluationID(e entities.Evaluation) string { return e.ID }

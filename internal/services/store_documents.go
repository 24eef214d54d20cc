package services

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/events"
	apperrors "supplier-hub/pkg/errors"
)

const entityDocument = "document"

// DocumentUpload - загружаемый файл и записи, к которым он относится.
type DocumentUpload struct {
	File            io.Reader
	FileName        string
	ContentType     string
	UploadedBy      string
	SupplierID      *string
	EvaluationID    *string
	NonConformityID *string
}

// AttachDocument сохраняет файл и создает запись документа.
// Если запись отклонена, сохраненный файл удаляется.
func (s *Store) AttachDocument(ctx context.Context, upload DocumentUpload) (created entities.Document, err error) {
	defer s.observe("attachDocument", time.Now(), &err)

	if s.files == nil || s.repos.Documents == nil {
		return entities.Document{}, apperrors.NewHttpError(501, "хранилище документов не настроено", nil, nil)
	}
	if upload.SupplierID == nil && upload.EvaluationID == nil && upload.NonConformityID == nil {
		return entities.Document{}, apperrors.NewValidationError("", "документ должен относиться хотя бы к одной записи")
	}
	if upload.FileName == "" {
		return entities.Document{}, apperrors.NewValidationError("name", "обязательное поле")
	}

	url, size, err := s.files.Save(upload.File, upload.FileName, documentFolder(upload))
	if err != nil {
		s.logger.Error("не удалось сохранить файл", zap.String("name", upload.FileName), zap.Error(err))
		return entities.Document{}, err
	}

	doc := entities.Document{
		Name:            upload.FileName,
		URL:             url,
		Type:            upload.ContentType,
		Size:            size,
		UploadedBy:      upload.UploadedBy,
		UploadedAt:      s.now(),
		SupplierID:      upload.SupplierID,
		EvaluationID:    upload.EvaluationID,
		NonConformityID: upload.NonConformityID,
	}
	created, err = s.repos.Documents.Create(ctx, doc)
	if err != nil {
		if rmErr := s.files.Delete(url); rmErr != nil {
			s.logger.Warn("не удалось удалить осиротевший файл", zap.String("url", url), zap.Error(rmErr))
		}
		return entities.Document{}, err
	}

	s.mutate(func(st *storeState) {
		st.documents = appendCopy(st.documents, created)
	})
	s.logger.Info("документ прикреплен", zap.String("id", created.ID), zap.Int64("size", created.Size))
	s.publish(ctx, entityDocument, events.ActionCreated, created.ID, created)
	return created, nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) (err error) {
	defer s.observe("deleteDocument", time.Now(), &err)

	if s.repos.Documents == nil {
		return apperrors.NewNotFoundError("documents", id)
	}

	var url string
	for _, d := range s.snapshotState().documents {
		if d.ID == id {
			url = d.URL
		}
	}

	if err := s.repos.Documents.Delete(ctx, id); err != nil {
		return err
	}
	if url != "" && s.files != nil {
		if err := s.files.Delete(url); err != nil {
			s.logger.Warn("не удалось удалить файл документа", zap.String("url", url), zap.Error(err))
		}
	}

	s.mutate(func(st *storeState) {
		st.documents = without(st.documents, func(d entities.Document) bool { return d.ID == id })
	})
	s.publish(ctx, entityDocument, events.ActionDeleted, id, nil)
	return nil
}

func documentFolder(u DocumentUpload) string {
	switch {
	case u.NonConformityID != nil:
		return "non_conformities"
	case u.EvaluationID != nil:
		return "evaluations"
	}
	return "suppliers"
}

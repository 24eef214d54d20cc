package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/services"
	apperrors "supplier-hub/pkg/errors"
	applogger "supplier-hub/pkg/logger"
	"supplier-hub/pkg/utils"
	"supplier-hub/pkg/validation"
)

type DocumentController struct {
	store     *services.Store
	maxSizeMB int64
	logger    *zap.Logger
}

func NewDocumentController(store *services.Store, maxSizeMB int64, logger *zap.Logger) *DocumentController {
	return &DocumentController{store: store, maxSizeMB: maxSizeMB, logger: logger}
}

// UploadDocument принимает multipart-форму: file и хотя бы одно из
// supplierId, evaluationId, nonConformityId.
func (c *DocumentController) UploadDocument(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil), logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil), logger)
	}
	defer src.Close()

	mimeType, err := validation.ValidateFile(fileHeader, src, c.maxSizeMB, validation.DocumentMimeTypes)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrBadRequest, nil), logger)
	}

	created, err := c.store.AttachDocument(reqCtx, services.DocumentUpload{
		File:            src,
		FileName:        fileHeader.Filename,
		ContentType:     mimeType,
		UploadedBy:      ctx.FormValue("uploadedBy"),
		SupplierID:      utils.NonEmptyPtr(ctx.FormValue("supplierId")),
		EvaluationID:    utils.NonEmptyPtr(ctx.FormValue("evaluationId")),
		NonConformityID: utils.NonEmptyPtr(ctx.FormValue("nonConformityId")),
	})
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, created, "Документ загружен", http.StatusCreated)
}

func (c *DocumentController) DeleteDocument(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	if err := c.store.DeleteDocument(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, nil, "Документ удален", http.StatusOK)
}

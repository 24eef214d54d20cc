package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/dto"
	"supplier-hub/internal/services"
	apperrors "supplier-hub/pkg/errors"
	applogger "supplier-hub/pkg/logger"
	"supplier-hub/pkg/utils"
	"supplier-hub/pkg/validation"
)

var importMimeTypes = []string{
	validation.XLSXMimeType,
	"text/plain; charset=utf-8",
	"text/csv",
}

type ImportController struct {
	store     *services.Store
	importer  *services.SupplierImporter
	maxSizeMB int64
	logger    *zap.Logger
}

func NewImportController(store *services.Store, importer *services.SupplierImporter, maxSizeMB int64, logger *zap.Logger) *ImportController {
	return &ImportController{store: store, importer: importer, maxSizeMB: maxSizeMB, logger: logger}
}

func (c *ImportController) GetColumnMappings(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.store.ColumnMappings(), "Успешно", http.StatusOK)
}

func (c *ImportController) SetColumnMappings(ctx echo.Context) error {
	logger := applogger.FromContext(ctx.Request().Context(), c.logger)

	var body dto.ColumnMappingsDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	c.store.SetColumnMappings(body.Mappings)
	return utils.SuccessResponse(ctx, c.store.ColumnMappings(), "Сопоставления сохранены", http.StatusOK)
}

// PreviewImport показывает колонки файла и первые строки.
func (c *ImportController) PreviewImport(ctx echo.Context) error {
	logger := applogger.FromContext(ctx.Request().Context(), c.logger)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil), logger)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil), logger)
	}
	defer src.Close()

	if _, err := validation.ValidateFile(fileHeader, src, c.maxSizeMB, importMimeTypes); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrBadRequest, nil), logger)
	}

	preview, err := c.importer.Preview(src, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, preview, "Успешно", http.StatusOK)
}

// ImportSuppliers: поле формы mappings (JSON-объект колонка -> поле)
// необязательно, без него используются сохраненные сопоставления.
func (c *ImportController) ImportSuppliers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var mappings map[string]string
	if raw := ctx.FormValue("mappings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mappings); err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат mappings", err, nil), logger)
		}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil), logger)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil), logger)
	}
	defer src.Close()

	if _, err := validation.ValidateFile(fileHeader, src, c.maxSizeMB, importMimeTypes); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrBadRequest, nil), logger)
	}

	result, err := c.importer.Import(reqCtx, src, fileHeader.Filename, mappings)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, result, "Импорт завершен", http.StatusCreated)
}

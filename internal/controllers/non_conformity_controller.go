package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/dto"
	"supplier-hub/internal/entities"
	"supplier-hub/internal/services"
	apperrors "supplier-hub/pkg/errors"
	applogger "supplier-hub/pkg/logger"
	"supplier-hub/pkg/utils"
)

type NonConformityController struct {
	store  *services.Store
	logger *zap.Logger
}

func NewNonConformityController(store *services.Store, logger *zap.Logger) *NonConformityController {
	return &NonConformityController{store: store, logger: logger}
}

func (c *NonConformityController) GetNonConformities(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	if ctx.QueryParam("field") != "" {
		var q dto.QueryDTO
		if err := ctx.Bind(&q); err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры запроса", err, nil), logger)
		}
		res, err := c.store.QueryNonConformities(reqCtx, q.Field, q.Value)
		if err != nil {
			return utils.ErrorResponse(ctx, err, logger)
		}
		return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
	}

	var q dto.NonConformityQueryDTO
	if err := ctx.Bind(&q); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры запроса", err, nil), logger)
	}
	if err := ctx.Validate(&q); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	filter := services.NonConformityFilter{
		SupplierID: q.SupplierID,
		Status:     entities.NonConformityStatus(q.Status),
		Severity:   entities.Severity(q.Severity),
	}
	if q.Since != "" {
		since, err := time.Parse(time.RFC3339, q.Since)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewValidationError("since", "ожидается дата в формате RFC3339"), logger)
		}
		filter.Since = &since
	}

	return utils.SuccessResponse(ctx, c.store.NonConformities(filter), "Успешно", http.StatusOK)
}

func (c *NonConformityController) FindNonConformity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	res, err := c.store.FindNonConformity(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
}

func (c *NonConformityController) CreateNonConformity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.CreateNonConformityDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	created, err := c.store.AddNonConformity(reqCtx, body.ToEntity())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, created, "Несоответствие зарегистрировано", http.StatusCreated)
}

// UpdateNonConformity накладывает тело на текущую версию записи
// и передает результат стору, который проверяет переход статуса.
func (c *NonConformityController) UpdateNonConformity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.UpdateNonConformityDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	current, err := c.store.FindNonConformity(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	updated, err := c.store.UpdateNonConformity(reqCtx, body.Apply(current))
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, updated, "Несоответствие обновлено", http.StatusOK)
}

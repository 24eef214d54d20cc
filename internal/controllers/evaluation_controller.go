package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/dto"
	"supplier-hub/internal/services"
	apperrors "supplier-hub/pkg/errors"
	applogger "supplier-hub/pkg/logger"
	"supplier-hub/pkg/utils"
)

type EvaluationController struct {
	store  *services.Store
	logger *zap.Logger
}

func NewEvaluationController(store *services.Store, logger *zap.Logger) *EvaluationController {
	return &EvaluationController{store: store, logger: logger}
}

func (c *EvaluationController) GetEvaluations(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	if ctx.QueryParam("field") != "" {
		var q dto.QueryDTO
		if err := ctx.Bind(&q); err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры запроса", err, nil), logger)
		}
		res, err := c.store.QueryEvaluations(reqCtx, q.Field, q.Value)
		if err != nil {
			return utils.ErrorResponse(ctx, err, logger)
		}
		return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
	}

	if supplierID := ctx.QueryParam("supplierId"); supplierID != "" {
		return utils.SuccessResponse(ctx, c.store.EvaluationsBySupplier(supplierID), "Успешно", http.StatusOK)
	}
	return utils.SuccessResponse(ctx, c.store.Evaluations(), "Успешно", http.StatusOK)
}

func (c *EvaluationController) FindEvaluation(ctx echo.Context) error {
	logger := applogger.FromContext(ctx.Request().Context(), c.logger)

	id := ctx.Param("id")
	res, ok := c.store.Evaluation(id)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("evaluations", id), logger)
	}
	return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
}

func (c *EvaluationController) CreateEvaluation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.EvaluationDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	created, err := c.store.AddEvaluation(reqCtx, body.ToEntity())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, created, "Оценка создана", http.StatusCreated)
}

func (c *EvaluationController) UpdateEvaluation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.EvaluationDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	evaluation := body.ToEntity()
	evaluation.ID = ctx.Param("id")

	updated, err := c.store.UpdateEvaluation(reqCtx, evaluation)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, updated, "Оценка обновлена", http.StatusOK)
}

func (c *EvaluationController) DeleteEvaluation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	if err := c.store.DeleteEvaluation(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, nil, "Оценка удалена", http.StatusOK)
}

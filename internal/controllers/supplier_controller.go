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

type SupplierController struct {
	store  *services.Store
	logger *zap.Logger
}

func NewSupplierController(store *services.Store, logger *zap.Logger) *SupplierController {
	return &SupplierController{
		store:  store,
		logger: logger,
	}
}

// GetSuppliers отдает поставщиков из кеша. С параметрами field/value
// запрос уходит напрямую в удаленную коллекцию.
func (c *SupplierController) GetSuppliers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	if ctx.QueryParam("field") != "" {
		var q dto.QueryDTO
		if err := ctx.Bind(&q); err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры запроса", err, nil), logger)
		}
		res, err := c.store.QuerySuppliers(reqCtx, q.Field, q.Value)
		if err != nil {
			return utils.ErrorResponse(ctx, err, logger)
		}
		return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
	}

	return utils.SuccessResponse(ctx, c.store.Suppliers(), "Успешно", http.StatusOK)
}

func (c *SupplierController) FindSupplier(ctx echo.Context) error {
	logger := applogger.FromContext(ctx.Request().Context(), c.logger)

	id := ctx.Param("id")
	res, ok := c.store.Supplier(id)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("suppliers", id), logger)
	}
	return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
}

func (c *SupplierController) CreateSupplier(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.SupplierDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	created, err := c.store.AddSupplier(reqCtx, body.ToEntity())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, created, "Поставщик создан", http.StatusCreated)
}

// CreateSuppliers создает пакет: либо все поставщики, либо ни одного.
func (c *SupplierController) CreateSuppliers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.SupplierBatchDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	created, err := c.store.AddSuppliers(reqCtx, body.ToEntities())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, created, "Поставщики созданы", http.StatusCreated)
}

func (c *SupplierController) UpdateSupplier(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.SupplierDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	supplier := body.ToEntity()
	supplier.ID = ctx.Param("id")
	if current, ok := c.store.Supplier(supplier.ID); ok {
		// привязка к таблице меняется только через /sheet
		supplier.GoogleSheetID = current.GoogleSheetID
	}

	updated, err := c.store.UpdateSupplier(reqCtx, supplier)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, updated, "Поставщик обновлен", http.StatusOK)
}

func (c *SupplierController) DeleteSupplier(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	if err := c.store.DeleteSupplier(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, nil, "Поставщик удален", http.StatusOK)
}

func (c *SupplierController) GetSupplierEvaluations(ctx echo.Context) error {
	logger := applogger.FromContext(ctx.Request().Context(), c.logger)

	id := ctx.Param("id")
	if _, ok := c.store.Supplier(id); !ok {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("suppliers", id), logger)
	}
	return utils.SuccessResponse(ctx, c.store.EvaluationsBySupplier(id), "Успешно", http.StatusOK)
}

// GetSupplierMetrics - метрики, посчитанные по оценкам и несоответствиям в кеше.
func (c *SupplierController) GetSupplierMetrics(ctx echo.Context) error {
	logger := applogger.FromContext(ctx.Request().Context(), c.logger)

	id := ctx.Param("id")
	res, ok := c.store.SupplierMetrics(id)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("suppliers", id), logger)
	}
	return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
}

func (c *SupplierController) LinkSheet(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	logger := applogger.FromContext(reqCtx, c.logger)

	var body dto.LinkSheetDTO
	if err := ctx.Bind(&body); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), logger)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	snap, err := c.store.LinkGoogleSheet(reqCtx, ctx.Param("id"), body.URL)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, snap, "Таблица привязана", http.StatusOK)
}

package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/services"
	applogger "supplier-hub/pkg/logger"
	"supplier-hub/pkg/utils"
	"supplier-hub/pkg/validation"
)

// ReportController - только чтение: снимок стора, дашборд и выгрузка.
type ReportController struct {
	store  *services.Store
	logger *zap.Logger
}

func NewReportController(store *services.Store, logger *zap.Logger) *ReportController {
	return &ReportController{store: store, logger: logger}
}

func (c *ReportController) GetSnapshot(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.store.Snapshot(), "Успешно", http.StatusOK)
}

const reloadTimeoutSeconds = 30

// Reload перечитывает все коллекции. При ошибке кеш остается прежним.
func (c *ReportController) Reload(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, reloadTimeoutSeconds)
	defer cancel()
	logger := applogger.FromContext(reqCtx, c.logger)

	if err := c.store.LoadInitialData(reqCtx); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, c.store.Snapshot(), "Данные перезагружены", http.StatusOK)
}

func (c *ReportController) GetDashboard(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.store.Dashboard(), "Успешно", http.StatusOK)
}

func (c *ReportController) ExportSuppliers(ctx echo.Context) error {
	logger := applogger.FromContext(ctx.Request().Context(), c.logger)

	now := time.Now()
	var buf bytes.Buffer
	if err := services.WriteSuppliersReport(&buf, c.store.Snapshot(), now); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+services.ReportFileName(now))
	return ctx.Blob(http.StatusOK, validation.XLSXMimeType, buf.Bytes())
}

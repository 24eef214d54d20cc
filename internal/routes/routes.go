package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/services"
	"supplier-hub/pkg/config"
	"supplier-hub/pkg/metrics"
	"supplier-hub/pkg/middleware"
)

// Dependencies - все, что нужно роутерам. Собирается в main.
type Dependencies struct {
	Store    *services.Store
	Importer *services.SupplierImporter
	Metrics  *metrics.Metrics
	Config   *config.Config
	Logger   *zap.Logger
}

func InitRouter(e *echo.Echo, deps Dependencies) {
	deps.Logger.Info("InitRouter: Начало создания маршрутов")

	e.Use(middleware.InjectLogger(deps.Logger))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "ok",
			"ready":  deps.Store.Ready(),
		})
	})

	api := e.Group("/api")

	maxSizeMB := int64(0)
	if deps.Config != nil {
		maxSizeMB = deps.Config.Upload.MaxSizeMB
	}

	runSupplierRouter(api, deps.Store, deps.Logger)
	runEvaluationRouter(api, deps.Store, deps.Logger)
	runNonConformityRouter(api, deps.Store, deps.Logger)
	runDocumentRouter(api, deps.Store, maxSizeMB, deps.Logger)
	runImportRouter(api, deps.Store, deps.Importer, maxSizeMB, deps.Logger)
	runReportRouter(api, deps.Store, deps.Logger)

	deps.Logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}

package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/controllers"
	"supplier-hub/internal/services"
)

func runReportRouter(group *echo.Group, store *services.Store, logger *zap.Logger) {
	reportController := controllers.NewReportController(store, logger)

	group.GET("/store", reportController.GetSnapshot)
	group.POST("/store/reload", reportController.Reload)
	group.GET("/dashboard", reportController.GetDashboard)
	group.GET("/report/suppliers", reportController.ExportSuppliers)
}

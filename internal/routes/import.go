package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/controllers"
	"supplier-hub/internal/services"
)

func runImportRouter(
	group *echo.Group,
	store *services.Store,
	importer *services.SupplierImporter,
	maxSizeMB int64,
	logger *zap.Logger,
) {
	importCtrl := controllers.NewImportController(store, importer, maxSizeMB, logger)

	group.GET("/column-mappings", importCtrl.GetColumnMappings)
	group.PUT("/column-mappings", importCtrl.SetColumnMappings)

	group.POST("/import/suppliers/preview", importCtrl.PreviewImport)
	group.POST("/import/suppliers", importCtrl.ImportSuppliers)
}

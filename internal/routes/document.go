package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/controllers"
	"supplier-hub/internal/services"
)

func runDocumentRouter(group *echo.Group, store *services.Store, maxSizeMB int64, logger *zap.Logger) {
	documentCtrl := controllers.NewDocumentController(store, maxSizeMB, logger)

	group.POST("/documents", documentCtrl.UploadDocument)
	group.DELETE("/documents/:id", documentCtrl.DeleteDocument)
}

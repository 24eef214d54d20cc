package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/controllers"
	"supplier-hub/internal/services"
)

// Удаления несоответствий нет: запись закрывается переходом в resolved.
func runNonConformityRouter(group *echo.Group, store *services.Store, logger *zap.Logger) {
	ncCtrl := controllers.NewNonConformityController(store, logger)

	ncs := group.Group("/non-conformities")

	ncs.GET("", ncCtrl.GetNonConformities)
	ncs.GET("/:id", ncCtrl.FindNonConformity)
	ncs.POST("", ncCtrl.CreateNonConformity)
	ncs.PUT("/:id", ncCtrl.UpdateNonConformity)
}

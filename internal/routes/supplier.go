package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/controllers"
	"supplier-hub/internal/services"
)

func runSupplierRouter(group *echo.Group, store *services.Store, logger *zap.Logger) {
	supplierCtrl := controllers.NewSupplierController(store, logger)

	suppliers := group.Group("/suppliers")

	suppliers.GET("", supplierCtrl.GetSuppliers)
	suppliers.GET("/:id", supplierCtrl.FindSupplier)
	suppliers.GET("/:id/evaluations", supplierCtrl.GetSupplierEvaluations)
	suppliers.GET("/:id/metrics", supplierCtrl.GetSupplierMetrics)

	suppliers.POST("", supplierCtrl.CreateSupplier)
	suppliers.POST("/batch", supplierCtrl.CreateSuppliers)
	suppliers.PUT("/:id", supplierCtrl.UpdateSupplier)
	suppliers.DELETE("/:id", supplierCtrl.DeleteSupplier)
	suppliers.POST("/:id/sheet", supplierCtrl.LinkSheet)
}

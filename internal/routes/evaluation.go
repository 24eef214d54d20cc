package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supplier-hub/internal/controllers"
	"supplier-hub/internal/services"
)

func runEvaluationRouter(group *echo.Group, store *services.Store, logger *zap.Logger) {
	evaluationCtrl := controllers.NewEvaluationController(store, logger)

	evaluations := group.Group("/evaluations")

	evaluations.GET("", evaluationCtrl.GetEvaluations)
	evaluations.GET("/:id", evaluationCtrl.FindEvaluation)
	evaluations.POST("", evaluationCtrl.CreateEvaluation)
	evaluations.PUT("/:id", evaluationCtrl.UpdateEvaluation)
	evaluations.DELETE("/:id", evaluationCtrl.DeleteEvaluation)
}

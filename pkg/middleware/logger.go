package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	applogger "supplier-hub/pkg/logger"
)

const HeaderRequestID = "X-Request-Id"

// InjectLogger кладет в контекст запроса логгер с id запроса, методом и путем.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := req.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			l := logger.With(
				zap.String("requestId", requestID),
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
			)
			c.SetRequest(req.WithContext(applogger.WithLogger(req.Context(), l)))
			return next(c)
		}
	}
}

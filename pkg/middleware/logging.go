package middleware

import (
	"time"

	"fks-execution/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogger puts a request scoped logger into the request context and logs one line per
// request once the handler returns.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			reqLog := log.With(
				logger.StringField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				logger.StringField("method", req.Method),
				logger.StringField("path", req.URL.Path),
			)
			c.SetRequest(req.WithContext(logger.NewContext(req.Context(), reqLog)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			reqLog.Info("Request handled",
				logger.IntField("status", c.Response().Status),
				logger.StringField("remote_ip", c.RealIP()),
				logger.DurationField("latency", time.Since(start)),
			)
			return nil
		}
	}
}

package middleware

import (
	"net/http"

	"fks-execution/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a 500 so one failing request does not take the
// listener down with it.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				req := c.Request()
				log.ErrorContext(req.Context(), "[panic] handler panicked",
					logger.PanicField(r),
					logger.StringField("method", req.Method),
					logger.StringField("path", req.URL.Path),
					logger.StackField(),
				)

				if c.Response().Committed {
					return
				}
				err = c.JSON(http.StatusInternalServerError, Response{
					Status:  http.StatusInternalServerError,
					Message: http.StatusText(http.StatusInternalServerError),
				})
			}()
			return next(c)
		}
	}
}

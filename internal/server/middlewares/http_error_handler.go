package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/resourcekit/internal/apierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns a middleware that formats rendered errors.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch cause := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if cause.Internal != nil {
				log.WithError(cause.Internal).Warn("echo error")
			}
			_ = c.JSON(cause.Code, echo.Map{
				"error": echo.Map{
					"message": fmt.Sprint(cause.Message),
				},
			})
		case *apierror.Error:
			status := apierror.StatusCode(cause)
			if status < 500 {
				_ = c.JSON(status, cause)
				return
			}

			internal(log, err, c)
		default:
			internal(log, err, c)
		}
	}
}

func internal(log logrus.FieldLogger, err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	log.WithError(err).WithField("id", id).Error("unexpected error")

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": echo.Map{
			"message": fmt.Sprintf("Unexpected error (id: %s)", id),
		},
	})
}

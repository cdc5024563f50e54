package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gopkg.in/go-playground/validator.v9"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/config"
	"github.com/mover-dashboard/dispatch/pkg/logger"
	"github.com/mover-dashboard/dispatch/pkg/validations"
)

func NewHttpServer(conf config.AppConfig, log logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	v := validator.New()
	validations.Register(v)

	e.Validator = &CustomValidator{Validator: v}
	e.HTTPErrorHandler = NewHttpErrorHandler(log)

	// setup middlewares
	e.Use(middleware.Recover())
	e.Use(RequestLogger(log))
	if conf.Env != config.EnvTest {
		e.Use(middleware.RateLimiterWithConfig(RatelimiterConfig()))
	}

	return e
}

type CustomValidator struct {
	Validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.Validator.Struct(i)
}

// RequestLogger writes one entry per request.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []logger.Field{
				logger.String("method", v.Method),
				logger.String("uri", v.URI),
				logger.Int("status", v.Status),
				logger.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, logger.Err(v.Error))
			}

			if v.Status >= http.StatusInternalServerError {
				log.Error("request", fields...)
			} else {
				log.Info("request", fields...)
			}
			return nil
		},
	})
}

func NewHttpErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {

		if c.Response().Committed {
			return
		}

		var appErr *dispatch.Error
		if errors.As(err, &appErr) {
			httpCode := dispatch.ErrCodeToHTTPStatus(appErr)
			message := dispatch.DefaultErrorMessage

			if httpCode < 500 {
				message = dispatch.ErrorMessage(appErr)
			} else {
				log.Error("request failed", logger.String("uri", c.Request().RequestURI), logger.Err(err))
			}

			_ = c.JSON(httpCode, message)
			return
		}

		var echoError *echo.HTTPError
		if errors.As(err, &echoError) {
			_ = c.JSON(echoError.Code, echoError.Message)
			return
		}

		log.Error("request failed", logger.String("uri", c.Request().RequestURI), logger.Err(err))

		_ = c.JSON(
			http.StatusInternalServerError,
			http.StatusText(http.StatusInternalServerError),
		)
	}
}

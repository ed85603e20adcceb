// Package server builds the echo instance: middleware, error rendering and
// the route table.
package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/padraicbc/racedb/errs"
	"github.com/padraicbc/racedb/handlers"
)

// New returns an echo instance serving every route on h.
func New(h *handlers.Handler, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := statusOf(v.Status, v.Error)
			fields := []zap.Field{
				zap.Int("status", status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Duration("latency", v.Latency),
			}
			switch {
			case status >= 500:
				logger.Error("http request", append(fields, zap.Error(v.Error))...)
			case status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
	}))

	Routes(e, h)
	return e
}

// Routes registers the API. Static segments (filter, details, group,
// sorted, search, update_position) win over the {id} routes in echo's router.
func Routes(e *echo.Echo, h *handlers.Handler) {
	e.POST("/stables", h.CreateStable)
	e.GET("/stables/:id", h.GetStable)

	e.POST("/pilots", h.CreatePilot)
	e.GET("/pilots/details", h.PilotDetails)
	e.GET("/pilots/search", h.SearchPilots)
	e.GET("/pilots/:id", h.GetPilot)

	e.POST("/stages", h.CreateStage)
	e.GET("/stages/group", h.GroupStages)
	e.GET("/stages/:id", h.GetStage)

	e.POST("/results", h.CreateResult)
	e.GET("/results/filter", h.FilterResults)
	e.GET("/results/sorted", h.SortedResults)
	e.PUT("/results/update_position", h.UpdateResultPosition)
	e.GET("/results/:id", h.GetResult)

	e.POST("/generate_sample_data", h.GenerateSampleData)
}

// errorHandler renders every handler error as an errs.HTTPError body.
// Errors that are not already HTTP errors are logged and reported as 500.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			httpErr *errs.HTTPError
			echoErr *echo.HTTPError
			body    *errs.HTTPError
		)
		switch {
		case errors.As(err, &httpErr):
			body = httpErr
		case errors.As(err, &echoErr):
			body = &errs.HTTPError{
				Code:    errs.CodeFromStatus(echoErr.Code),
				Message: messageOf(echoErr),
				Status:  echoErr.Code,
			}
		default:
			logger.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
			body = errs.NewInternalServerError()
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(body.Status)
		} else {
			werr = c.JSON(body.Status, body)
		}
		if werr != nil {
			logger.Error("write error response", zap.Error(werr))
		}
	}
}

func messageOf(e *echo.HTTPError) string {
	if msg, ok := e.Message.(string); ok {
		return msg
	}
	return http.StatusText(e.Code)
}

// statusOf returns the status the error handler will write for err, since
// the request logger runs before the response is committed.
func statusOf(status int, err error) int {
	if err == nil {
		return status
	}
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	return http.StatusInternalServerError
}

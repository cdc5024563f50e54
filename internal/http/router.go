package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mover-dashboard/dispatch/internal/http/controller"
)

type Router struct {
	Controllers Controllers
}

type Controllers struct {
	BoardController controller.BoardController
	JobController   controller.JobController
	TruckController controller.TruckController
}

func NewRouter(cs Controllers) *Router {
	return &Router{
		Controllers: cs,
	}
}

func (r Router) SetupRoutes(e *echo.Echo) {

	e.GET("/ping", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "pong")
	})

	// board methods
	e.GET("/board", r.Controllers.BoardController.Get)
	e.GET("/queues", r.Controllers.BoardController.Queues)
	e.GET("/summary", r.Controllers.BoardController.Summary)
	e.POST("/drops", r.Controllers.BoardController.Drop)
	e.POST("/undo", r.Controllers.BoardController.Undo)
	e.POST("/reset", r.Controllers.BoardController.Reset)
	e.POST("/refresh", r.Controllers.BoardController.Refresh)

	// job methods
	e.POST("/jobs", r.Controllers.JobController.Create)
	e.PUT("/jobs/:job_id", r.Controllers.JobController.Update)
	e.DELETE("/jobs/:job_id", r.Controllers.JobController.Delete)
	e.PATCH("/jobs/:job_id/mute", r.Controllers.JobController.ToggleMute)
	e.GET("/selection", r.Controllers.JobController.Selected)
	e.PUT("/selection/:job_id", r.Controllers.JobController.Select)
	e.DELETE("/selection", r.Controllers.JobController.ClearSelection)

	// truck methods
	e.PATCH("/trucks/:truck_id/mute", r.Controllers.TruckController.ToggleMute)
	e.PUT("/trucks/:truck_id/contact", r.Controllers.TruckController.SetContact)
	e.PATCH("/trucks/:truck_id/status", r.Controllers.TruckController.UpdateStatus)
}

func RatelimiterConfig() middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: 20, Burst: 40, ExpiresIn: time.Minute},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, nil)
		},
	}
}

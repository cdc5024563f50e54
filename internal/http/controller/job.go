package controller

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mover-dashboard/dispatch/internal/usecase/dashboard"
)

type JobController struct {
	uc *dashboard.DashboardUseCase
}

func NewJobController(uc *dashboard.DashboardUseCase) JobController {
	return JobController{
		uc: uc,
	}
}

func jobID(ctx echo.Context) (string, error) {
	id := strings.TrimSpace(ctx.Param("job_id"))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, ":job_id must not be empty")
	}
	return id, nil
}

// ================================
// ========== POST /jobs ==========
// ================================

func (c *JobController) Create(ctx echo.Context) error {

	job, err := c.uc.AddJob(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, job)
}

// ==========================================
// ========== PUT /jobs/{job_id} ==========
// ==========================================

func (c *JobController) Update(ctx echo.Context) error {

	id, err := jobID(ctx)
	if err != nil {
		return err
	}

	var req dashboard.JobDTO
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	job, err := c.uc.UpdateJob(ctx.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, job)
}

func (c *JobController) Delete(ctx echo.Context) error {

	id, err := jobID(ctx)
	if err != nil {
		return err
	}

	if err := c.uc.DeleteJob(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *JobController) ToggleMute(ctx echo.Context) error {

	id, err := jobID(ctx)
	if err != nil {
		return err
	}

	res, err := c.uc.ToggleJobMute(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}

// ====================================
// ========== /selection ==========
// ====================================

func (c *JobController) Selected(ctx echo.Context) error {

	job, ok := c.uc.Selected()
	if !ok {
		return ctx.NoContent(http.StatusNoContent)
	}

	return ctx.JSON(http.StatusOK, job)
}

func (c *JobController) Select(ctx echo.Context) error {

	id, err := jobID(ctx)
	if err != nil {
		return err
	}

	job, err := c.uc.SelectJob(id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, job)
}

func (c *JobController) ClearSelection(ctx echo.Context) error {
	c.uc.ClearSelection()
	return ctx.NoContent(http.StatusNoContent)
}

package controller

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mover-dashboard/dispatch/internal/usecase/dashboard"
)

type TruckController struct {
	uc *dashboard.DashboardUseCase
}

func NewTruckController(uc *dashboard.DashboardUseCase) TruckController {
	return TruckController{
		uc: uc,
	}
}

func truckID(ctx echo.Context) (string, error) {
	id := strings.TrimSpace(ctx.Param("truck_id"))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, ":truck_id must not be empty")
	}
	return id, nil
}

func (c *TruckController) ToggleMute(ctx echo.Context) error {

	id, err := truckID(ctx)
	if err != nil {
		return err
	}

	res, err := c.uc.ToggleTruckMute(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}

// ===================================================
// ========== PUT /trucks/{truck_id}/contact ==========
// ===================================================

func (c *TruckController) SetContact(ctx echo.Context) error {

	id, err := truckID(ctx)
	if err != nil {
		return err
	}

	var req dashboard.ContactDTO
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := c.uc.SetPointOfContact(ctx.Request().Context(), id, req); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ====================================================
// ========== PATCH /trucks/{truck_id}/status ==========
// ====================================================

func (c *TruckController) UpdateStatus(ctx echo.Context) error {

	id, err := truckID(ctx)
	if err != nil {
		return err
	}

	var req dashboard.TruckStatusDTO
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := c.uc.UpdateTruckStatus(ctx.Request().Context(), id, req); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

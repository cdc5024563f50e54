package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mover-dashboard/dispatch/internal/usecase/dashboard"
)

type BoardController struct {
	uc *dashboard.DashboardUseCase
}

func NewBoardController(uc *dashboard.DashboardUseCase) BoardController {
	return BoardController{
		uc: uc,
	}
}

// ================================
// ========== GET /board ==========
// ================================

func (c *BoardController) Get(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.uc.Board())
}

func (c *BoardController) Queues(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.uc.Queues())
}

func (c *BoardController) Summary(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.uc.Summary())
}

// =================================
// ========== POST /drops ==========
// =================================

type DropRequest struct {
	Item struct {
		Type          string `json:"type" validate:"required"`
		ID            string `json:"id" validate:"required"`
		SourceTruckID string `json:"sourceTruckId"`
	} `json:"item"`
	Target struct {
		Kind    string `json:"kind" validate:"required"`
		TruckID string `json:"truckId"`
	} `json:"target"`
}

func (c *BoardController) Drop(ctx echo.Context) error {

	var req DropRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := c.uc.Drop(ctx.Request().Context(), dashboard.DropDTO{
		ItemType:      req.Item.Type,
		ItemID:        req.Item.ID,
		SourceTruckID: req.Item.SourceTruckID,
		TargetKind:    req.Target.Kind,
		TargetTruckID: req.Target.TruckID,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}

// =================================

func (c *BoardController) Undo(ctx echo.Context) error {

	res, err := c.uc.Undo(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}

func (c *BoardController) Reset(ctx echo.Context) error {

	if err := c.uc.Reset(ctx.Request().Context()); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.uc.Board())
}

func (c *BoardController) Refresh(ctx echo.Context) error {

	if err := c.uc.Refresh(ctx.Request().Context()); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.uc.Board())
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racedb/validation"
)

// CreateStage inserts a new stage.
func (h *Handler) CreateStage(c echo.Context) error {
	var req createStageRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	stage := req.model()
	if err := h.store.CreateStage(c.Request().Context(), stage); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stage)
}

// GetStage returns one stage by id.
func (h *Handler) GetStage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	stage, err := h.store.GetStage(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Stage")
	}
	return c.JSON(http.StatusOK, stage)
}

// GroupStages returns the number of stages held at each location.
func (h *Handler) GroupStages(c echo.Context) error {
	rows, err := h.store.GroupStagesByLocation(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

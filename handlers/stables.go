package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racedb/validation"
)

// CreateStable inserts a new stable.
func (h *Handler) CreateStable(c echo.Context) error {
	var req createStableRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	stable := req.model()
	if err := h.store.CreateStable(c.Request().Context(), stable); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stable)
}

// GetStable returns one stable by id.
func (h *Handler) GetStable(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	stable, err := h.store.GetStable(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Stable")
	}
	return c.JSON(http.StatusOK, stable)
}

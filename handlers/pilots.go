package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racedb/validation"
)

// CreatePilot inserts a new pilot. stable_id is not checked against stables.
func (h *Handler) CreatePilot(c echo.Context) error {
	var req createPilotRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	pilot := req.model()
	if err := h.store.CreatePilot(c.Request().Context(), pilot); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pilot)
}

// GetPilot returns one pilot by id.
func (h *Handler) GetPilot(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	pilot, err := h.store.GetPilot(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Pilot")
	}
	return c.JSON(http.StatusOK, pilot)
}

// PilotDetails returns every pilot joined with its stable.
func (h *Handler) PilotDetails(c echo.Context) error {
	rows, err := h.store.PilotsWithStables(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// SearchPilots returns pilots whose notes contain the query param. An empty
// query matches every pilot with notes.
func (h *Handler) SearchPilots(c echo.Context) error {
	query, err := validation.QueryString(c, "query")
	if err != nil {
		return err
	}

	pilots, err := h.store.SearchPilots(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pilots)
}

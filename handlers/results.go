package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racedb/db"
	"github.com/padraicbc/racedb/errs"
	"github.com/padraicbc/racedb/validation"
)

// CreateResult inserts a new result. Pilot and stage ids are stored as given.
func (h *Handler) CreateResult(c echo.Context) error {
	var req createResultRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	result := req.model()
	if err := h.store.CreateResult(c.Request().Context(), result); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// GetResult returns one result by id.
func (h *Handler) GetResult(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.store.GetResult(c.Request().Context(), id)
	if err != nil {
		return lookupError(err, "Result")
	}
	return c.JSON(http.StatusOK, result)
}

// FilterResults returns results placed at or above position with at least
// pit_stops stops.
func (h *Handler) FilterResults(c echo.Context) error {
	var position, pitStops int
	bindErrs := echo.QueryParamsBinder(c).
		FailFast(false).
		MustInt("position", &position).
		MustInt("pit_stops", &pitStops).
		BindErrors()
	if err := validation.Params(bindErrs...); err != nil {
		return err
	}

	results, err := h.store.FilterResults(c.Request().Context(), position, pitStops)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// UpdateResultPosition sets a new position on one result.
func (h *Handler) UpdateResultPosition(c echo.Context) error {
	var (
		id       int64
		position int
	)
	bindErrs := echo.QueryParamsBinder(c).
		FailFast(false).
		MustInt64("result_id", &id).
		MustInt("new_position", &position).
		BindErrors()
	if err := validation.Params(bindErrs...); err != nil {
		return err
	}

	result, err := h.store.UpdateResultPosition(c.Request().Context(), id, position)
	if err != nil {
		return lookupError(err, "Result")
	}
	return c.JSON(http.StatusOK, result)
}

// SortedResults returns all results ordered by the order_by column.
func (h *Handler) SortedResults(c echo.Context) error {
	column, err := validation.QueryString(c, "order_by")
	if err != nil {
		return err
	}

	results, err := h.store.SortedResults(c.Request().Context(), column)
	if err != nil {
		if errors.Is(err, db.ErrInvalidSortColumn) {
			return errs.NewBadRequestError("Invalid order_by parameter")
		}
		return err
	}
	return c.JSON(http.StatusOK, results)
}

package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/racedb/db"
	"github.com/padraicbc/racedb/errs"
	"github.com/padraicbc/racedb/sample"
	"github.com/padraicbc/racedb/validation"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store  *db.Store
	sample *sample.Generator
	log    *zap.Logger
}

// New creates a Handler backed by the given store client.
func New(store *db.Store, gen *sample.Generator, log *zap.Logger) *Handler {
	return &Handler{store: store, sample: gen, log: log}
}

// pathID reads the integer {id} path parameter.
func pathID(c echo.Context) (int64, error) {
	var id int64
	err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError()
	return id, validation.Params(err)
}

// lookupError maps a store lookup failure to the client-facing error.
func lookupError(err error, entity string) error {
	if errors.Is(err, db.ErrNotFound) {
		return errs.NewNotFoundError(entity + " not found")
	}
	return err
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GenerateSampleData seeds the store with one batch of demonstration rows.
func (h *Handler) GenerateSampleData(c echo.Context) error {
	counts, err := h.sample.Generate(c.Request().Context())
	if err != nil {
		return err
	}

	h.log.Info("sample data generated",
		zap.Int("stables", counts.Stables),
		zap.Int("pilots", counts.Pilots),
		zap.Int("stages", counts.Stages),
		zap.Int("results", counts.Results),
	)
	return c.JSON(http.StatusOK, messageResponse{Message: "Sample data generated successfully"})
}

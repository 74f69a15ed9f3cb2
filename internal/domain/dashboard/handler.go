package dashboard

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/infisparks/medfordhrms-sub001/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/dashboard", auth.RequireRole("admin", "frontdesk"))
	g.GET("/stats", h.Stats)
	g.GET("/series", h.Series)
	api.GET("/patients/:id/billing", h.PatientBilling, auth.RequireRole("admin", "frontdesk"))
}

func parseWindow(c echo.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "from date is required (YYYY-MM-DD)")
	}
	to := from
	if raw := c.QueryParam("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
	}
	return from, to, nil
}

func (h *Handler) Stats(c echo.Context) error {
	from, to, err := parseWindow(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.Stats(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

// Series returns just the per-day buckets of the stats window, for charts.
func (h *Handler) Series(c echo.Context) error {
	from, to, err := parseWindow(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.Stats(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"series":      stats.Series,
		"busiest_day": stats.BusiestDay,
	})
}

func (h *Handler) PatientBilling(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	hist, err := h.svc.History(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, hist)
}

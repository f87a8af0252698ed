package insight

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelens/carelens/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	readGroup.GET("/patients/:patientId/summary", h.GetSummary)
	readGroup.GET("/patients/:patientId/trends", h.GetTrends)
	readGroup.GET("/patients/:patientId/priority-actions", h.GetPriorityActions)
}

// GetSummary runs the full derivation pipeline.
//
//	GET /patients/:patientId/summary?top=3&at=2026-01-15T00:00:00Z
//
// "at" pins the evaluation time (RFC 3339), so a summary can be reproduced
// after the fact. "top" caps the ranked actions.
func (h *Handler) GetSummary(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	at, err := parseAt(c.QueryParam("at"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'at' timestamp, expected RFC 3339")
	}
	top, err := parseTop(c.QueryParam("top"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'top' count")
	}

	summary, err := h.svc.Summary(c.Request().Context(), patientID, at, top)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetTrends(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	trends, err := h.svc.Trends(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, trends)
}

func (h *Handler) GetPriorityActions(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	at, err := parseAt(c.QueryParam("at"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'at' timestamp, expected RFC 3339")
	}
	top, err := parseTop(c.QueryParam("top"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'top' count")
	}

	actions, err := h.svc.PriorityActions(c.Request().Context(), patientID, at, top)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, actions)
}

func parseAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func parseTop(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

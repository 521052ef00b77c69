package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	scheduleerrors "github.com/control-room-cisa/server-planillero-sub000/internal/schedule/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/apperror"
	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func rangeParams(c *gin.Context) (string, string, bool) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		writeServiceError(c, scheduleerrors.ErrMissingRange)
		return "", "", false
	}
	return from, to, true
}

func (h *Handler) GetDaily(c *gin.Context) {
	resp, err := h.service.GetDailySchedule(c.Request.Context(), c.Param("employeeId"), c.Param("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRangeHours(c *gin.Context) {
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	resp, err := h.service.GetRangeHourCount(c.Request.Context(), c.Param("employeeId"), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRangeApportionment(c *gin.Context) {
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	resp, err := h.service.GetRangeApportionment(c.Request.Context(), c.Param("employeeId"), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestReport(c *gin.Context) {
	var req RangeReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RequestRangeReport(c.Request.Context(), c.Param("employeeId"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, resp, nil)
}

package holiday

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("date")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusNoContent, nil, nil)
}

func (h *Handler) GetRange(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	resp, err := h.service.GetRange(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

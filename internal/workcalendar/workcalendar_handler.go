package workcalendar

import (
	"net/http"

	"workflowhr/internal/shared/apperror"
	"workflowhr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("workcalendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workcalendar.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("working days request failed",
		zap.String("method", c.Request.Method),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("company_id")

	cfg, err := h.service.GetOrCreateConfig(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToResponse(cfg), nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToResponse(cfg), nil)
}

func mapToResponse(cfg WorkingDaysConfig) ConfigResponse {
	return ConfigResponse{
		CompanyID:          cfg.CompanyID.String(),
		WorkingHoursPerDay: cfg.WorkingHoursPerDay.String(),
		MondayWorking:      cfg.MondayWorking,
		TuesdayWorking:     cfg.TuesdayWorking,
		WednesdayWorking:   cfg.WednesdayWorking,
		ThursdayWorking:    cfg.ThursdayWorking,
		FridayWorking:      cfg.FridayWorking,
		SaturdayWorking:    cfg.SaturdayWorking,
		SundayWorking:      cfg.SundayWorking,
		WorkingDaysPerWeek: cfg.WorkingDaysPerWeek,
	}
}

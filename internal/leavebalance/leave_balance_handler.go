package leavebalance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	balanceerrors "workflowhr/internal/leavebalance/errors"
	"workflowhr/internal/shared/apperror"
	"workflowhr/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leavebalance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave balance request failed",
		zap.String("method", c.Request.Method),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetForEmployee answers GET /leave-balances/:employeeId. The read
// materializes missing rows and repairs duplicates, so employees always see
// a complete ledger for the year.
func (h *Handler) GetForEmployee(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeServiceError(c, balanceerrors.ErrInvalidYear)
			return
		}
		year = parsed
	}

	balances, err := h.service.GetOrCreateBalances(c.Request.Context(), companyID, employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, balances, nil)
}

// Cleanup answers POST /admin/leave-balances/cleanup and sweeps the whole
// ledger, not just the caller's company.
func (h *Handler) Cleanup(c *gin.Context) {
	report, err := h.service.GlobalCleanup(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report, nil)
}

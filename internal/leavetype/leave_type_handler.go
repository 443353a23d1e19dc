package leavetype

import (
	"net/http"

	"workflowhr/internal/shared/apperror"
	"workflowhr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsPaid      bool   `json:"is_paid"`
	Description string `json:"description"`
}

func (h *Handler) GetAll(c *gin.Context) {
	types, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = LeaveTypeResponse{
			ID:          lt.ID.String(),
			Name:        lt.Name,
			IsPaid:      lt.IsPaid,
			Description: lt.Description,
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

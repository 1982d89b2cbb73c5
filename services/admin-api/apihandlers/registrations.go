package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/apihelpers"
	mw "github.com/inbal0012/wild-ginger-bot-sub001/pkg/apihelpers/middlewares"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
)

func (h *HttpEndpoints) AddRegistrationsAPI(rg *gin.RouterGroup) {
	regs := rg.Group("/registrations")
	regs.Use(mw.GetAndValidateAdminUserJWT(h.tokenSignKey))
	{
		regs.GET("", h.listRegistrations)
		regs.GET("/:submissionID", h.getRegistration)
		regs.POST("/:submissionID/status", mw.RequirePayload(), h.setRegistrationStatus)
	}
}

func (h *HttpEndpoints) listRegistrations(c *gin.Context) {
	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if query.Status != "" && !registrations.IsValidStatus(query.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	items, err := h.registrationService.ListByStatus(c.Request.Context(), query.Status)
	if err != nil {
		slog.Error("failed to list registrations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}

	start, end := query.PageBounds(len(items))
	c.JSON(http.StatusOK, gin.H{
		"registrations": items[start:end],
		"total":         len(items),
		"page":          query.Page,
	})
}

func (h *HttpEndpoints) getRegistration(c *gin.Context) {
	submissionID := c.Param("submissionID")

	registration, err := h.registrationService.Get(c.Request.Context(), submissionID)
	if err != nil {
		if types.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}
		slog.Error("failed to get registration", slog.String("submissionID", submissionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get registration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": registration})
}

// StatusUpdateRequest is the request body for the status update endpoint
type StatusUpdateRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h *HttpEndpoints) setRegistrationStatus(c *gin.Context) {
	submissionID := c.Param("submissionID")

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !registrations.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	if err := h.registrationService.SetStatus(c.Request.Context(), submissionID, req.Status, req.Reason); err != nil {
		if types.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}
		slog.Error("failed to set registration status",
			slog.String("submissionID", submissionID),
			slog.String("status", req.Status),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissionID": submissionID, "status": req.Status})
}

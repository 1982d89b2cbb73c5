package apihandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mw "github.com/inbal0012/wild-ginger-bot-sub001/pkg/apihelpers/middlewares"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

func (h *HttpEndpoints) AddFormsAPI(rg *gin.RouterGroup) {
	forms := rg.Group("/forms")
	forms.Use(mw.GetAndValidateAdminUserJWT(h.tokenSignKey))
	{
		forms.GET("/active", h.listActiveForms)
		forms.GET("/:userID", h.getFormState)
		forms.DELETE("/:userID", mw.RequireOwner(), h.cancelForm)
	}
}

func (h *HttpEndpoints) listActiveForms(c *gin.Context) {
	states, err := h.formEngine.ListActiveForms(c.Request.Context())
	if err != nil {
		slog.Error("failed to list active forms", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list active forms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": states, "total": len(states)})
}

func (h *HttpEndpoints) getFormState(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	state, err := h.formEngine.GetState(c.Request.Context(), userID)
	if err != nil {
		if types.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
			return
		}
		slog.Error("failed to get form state", slog.Int64("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get form state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": state})
}

func (h *HttpEndpoints) cancelForm(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.formEngine.CancelForm(c.Request.Context(), userID); err != nil {
		slog.Error("failed to cancel form", slog.Int64("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel form"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userID": userID, "cancelled": true})
}

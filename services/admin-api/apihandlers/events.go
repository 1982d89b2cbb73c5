package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API key guard sits on the whole /v1 group.
func (h *HttpEndpoints) AddEventsAPI(rg *gin.RouterGroup) {
	eventsGroup := rg.Group("/events")
	{
		eventsGroup.GET("/upcoming", h.listUpcomingEvents)
	}
}

func (h *HttpEndpoints) listUpcomingEvents(c *gin.Context) {
	upcoming, err := h.eventService.UpcomingEvents(c.Request.Context())
	if err != nil {
		slog.Error("failed to list upcoming events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": upcoming})
}

package api

import (
	"io"
	"net/http"

	"island-eats/internal/domain/drop"
	"island-eats/internal/handler/httperr"
	"island-eats/internal/infra/notify"
	"island-eats/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DropHandler struct {
	dropQueries queries.DropQueries
	listener    *notify.Listener
}

func NewDropHandler(dropQueries queries.DropQueries, listener *notify.Listener) *DropHandler {
	return &DropHandler{
		dropQueries: dropQueries,
		listener:    listener,
	}
}

// @Summary Get drop status
// @Description Get slot availability for the current drop
// @Tags drop
// @Produce json
// @Success 200 {object} queries.DropStatusView
// @Router /drop [get]
func (h *DropHandler) GetStatus(c *gin.Context) {
	view, err := h.dropQueries.Status(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Live drop feed
// @Description Server-sent event stream of slot counter updates
// @Tags drop
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of drop status events"
// @Router /drop/live [get]
func (h *DropHandler) Live(c *gin.Context) {
	view, err := h.dropQueries.Status(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	updates, cancel := h.listener.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// First event carries the current counter so a client that connects
	// mid-drop does not wait for the next checkout to learn the state.
	c.SSEvent("status", view)
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	c.Stream(func(_ io.Writer) bool {
		select {
		case update, ok := <-updates:
			if !ok {
				return false
			}
			d := drop.Reconstruct(update.DropID, update.TotalSlots, update.OrdersCount)
			c.SSEvent("status", queries.StatusViewFromDrop(d))
			return true
		case <-clientGone:
			return false
		}
	})
}

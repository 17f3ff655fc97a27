package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/estadio/stadium-api/internal/api/middleware"
	"github.com/estadio/stadium-api/internal/config"
)

type EventStream interface {
	Serve(ctx context.Context, conn *websocket.Conn)
}

type EventsHandler struct {
	stream   EventStream
	upgrader websocket.Upgrader
}

func NewEventsHandler(conf *config.APIConfig, stream EventStream) *EventsHandler {
	return &EventsHandler{
		stream: stream,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin.
				return origin == "" || middleware.OriginAllowed(conf, origin)
			},
		},
	}
}

// HandleEvents godoc
// @Summary      Subscribe to live notifications
// @Description  Upgrades to a websocket that receives game:created, member:created and member:approved events.
// @Tags         events
// @Success      101      {string}  string "Switching Protocols to WebSocket"
// @Failure      400      {object}  response.Err
// @Router       /ws [get]
func (h *EventsHandler) HandleEvents(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	h.stream.Serve(ctx.Request.Context(), conn)
}

package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/qwerji/gameSocketRooms/internal/config"
	"github.com/qwerji/gameSocketRooms/internal/core"
	"github.com/qwerji/gameSocketRooms/internal/store"
)

// NewServer builds the HTTP server: websocket endpoint, room REST surface
// and the optional static client directory.
func NewServer(hub *core.Hub, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger, cfg.MessageRateLimit)))

	rooms := NewRoomHandlers(hub, st, logger)
	router.GET("/api/rooms", rooms.ListRooms)
	router.GET("/api/rooms/:code/events", rooms.ListRoomEvents)

	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(stdhttp.FileServer(stdhttp.Dir(cfg.StaticDir))))
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		HealthHandler:  h.Health,
		AuthHandler:    h.Auth,
		PaperHandler:   h.Paper,
		AdminHandler:   h.Admin,
		AuthMiddleware: m.Auth,
	})
}

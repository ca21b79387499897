package app

import (
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/http/middleware"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, s.Auth),
	}
}

package app

import (
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/http/handlers"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Paper  *handlers.PaperHandler
	Admin  *handlers.AdminHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(),
		Auth:   handlers.NewAuthHandler(s.Auth),
		Paper:  handlers.NewPaperHandler(s.Paper),
		Admin:  handlers.NewAdminHandler(s.Paper, s.Evaluation),
	}
}

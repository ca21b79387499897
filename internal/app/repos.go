package app

import (
	"gorm.io/gorm"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	UserToken    repos.UserTokenRepo
	Paper        repos.PaperRepo
	Notification repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		UserToken:    repos.NewUserTokenRepo(db, log),
		Paper:        repos.NewPaperRepo(db, log),
		Notification: repos.NewNotificationRepo(db, log),
	}
}

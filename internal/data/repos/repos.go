package repos

import (
	"gorm.io/gorm"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos/auth"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos/notification"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos/paper"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos/user"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo
type PaperRepo = paper.PaperRepo
type NotificationRepo = notification.NotificationRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}

func NewPaperRepo(db *gorm.DB, log *logger.Logger) PaperRepo {
	return paper.NewPaperRepo(db, log)
}

func NewNotificationRepo(db *gorm.DB, log *logger.Logger) NotificationRepo {
	return notification.NewNotificationRepo(db, log)
}

package db

import (
	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + auth
		// =========================
		&types.User{},
		&types.UserToken{},

		// =========================
		// Submission lifecycle
		// =========================
		&types.Paper{},
		&types.PaperHistoryEntry{},
		&types.PaperEvaluation{},

		// =========================
		// Notification outbox
		// =========================
		&types.NotificationEvent{},
	)
}

package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/events"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/filestore"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/sendgrid"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/services"
)

type Services struct {
	IDs        services.IDService
	Auth       services.AuthService
	Paper      services.PaperService
	Evaluation services.EvaluationService
	Dispatcher services.NotificationDispatcher
	Bus        events.Bus
	Files      filestore.Store
}

func wireServices(ctx context.Context, db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	bus, err := events.NewBusFromEnv(log)
	if err != nil {
		return Services{}, fmt.Errorf("init event bus: %w", err)
	}

	var files filestore.Store
	if cfg.FileStoreEnabled {
		files, err = filestore.NewFromEnv(ctx, log)
		if err != nil {
			return Services{}, fmt.Errorf("init file store: %w", err)
		}
	} else {
		log.Warn("GCS_BUCKET not set, file existence checks disabled")
	}

	idSvc := services.NewIDService(log, r.User, r.Paper)
	authSvc := services.NewAuthService(db, log, r.User, r.UserToken, idSvc, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	paperSvc := services.NewPaperService(db, log, r.Paper, r.User, r.Notification, idSvc, bus, files)
	evalSvc := services.NewEvaluationService(db, log, r.Paper)

	var dispatcher services.NotificationDispatcher
	if cfg.MailEnabled {
		mail, mErr := sendgrid.NewFromEnv(log)
		if mErr != nil {
			return Services{}, fmt.Errorf("init mail client: %w", mErr)
		}
		dispatcher = services.NewNotificationDispatcher(log, r.Notification, mail, bus, cfg.DispatcherWorkers, cfg.DispatcherSweepInterval)
	} else {
		log.Warn("SENDGRID_API_KEY not set, notification dispatch disabled (outbox rows stay pending)")
	}

	return Services{
		IDs:        idSvc,
		Auth:       authSvc,
		Paper:      paperSvc,
		Evaluation: evalSvc,
		Dispatcher: dispatcher,
		Bus:        bus,
		Files:      files,
	}, nil
}

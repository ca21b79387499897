package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/notification"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, e *types.NotificationEvent) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.NotificationEvent, error)
	// ListPending returns undispatched events oldest-first so a restarted
	// dispatcher can drain the outbox.
	ListPending(ctx context.Context, tx *gorm.DB, limit int) ([]*types.NotificationEvent, error)
	MarkDelivered(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, tx *gorm.DB, id uuid.UUID, dispatchErr string, at time.Time) error
	ListByPaper(ctx context.Context, tx *gorm.DB, paperID uuid.UUID) ([]*types.NotificationEvent, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	repoLog := baseLog.With("repo", "NotificationRepo")
	return &notificationRepo{db: db, log: repoLog}
}

func (nr *notificationRepo) Create(ctx context.Context, tx *gorm.DB, e *types.NotificationEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Create(e).Error
}

func (nr *notificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.NotificationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var result types.NotificationEvent
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: notification event %s", pkgerrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (nr *notificationRepo) ListPending(ctx context.Context, tx *gorm.DB, limit int) ([]*types.NotificationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if limit <= 0 {
		limit = 100
	}

	var results []*types.NotificationEvent
	if err := transaction.WithContext(ctx).
		Where("dispatch_state = ?", notification.DispatchPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *notificationRepo) MarkDelivered(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.NotificationEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"dispatch_state": notification.DispatchDelivered,
			"dispatch_error": "",
			"dispatched_at":  at,
		}).Error
}

func (nr *notificationRepo) MarkFailed(ctx context.Context, tx *gorm.DB, id uuid.UUID, dispatchErr string, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.NotificationEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"dispatch_state": notification.DispatchFailed,
			"dispatch_error": dispatchErr,
			"dispatched_at":  at,
		}).Error
}

func (nr *notificationRepo) ListByPaper(ctx context.Context, tx *gorm.DB, paperID uuid.UUID) ([]*types.NotificationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var results []*types.NotificationEvent
	if err := transaction.WithContext(ctx).
		Where("paper_id = ?", paperID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

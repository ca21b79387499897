package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/notification"
	paperdomain "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/paper"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/events"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/ctxutil"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/filestore"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type SubmitAbstractRequest struct {
	Title            string
	Authors          string
	Theme            string
	PresentationMode string
	FilePath         string
	FileName         string
}

// PaperService orchestrates every paper lifecycle mutation. Each mutation
// runs as: load aggregate, apply the in-memory transition, write the
// notification outbox row, persist with an optimistic revision check, all in
// one transaction. The event bus is only poked after commit.
type PaperService interface {
	SubmitAbstract(ctx context.Context, req SubmitAbstractRequest) (*types.Paper, error)
	GetPaper(ctx context.Context, paperID uuid.UUID) (*types.Paper, error)
	ListOwnPapers(ctx context.Context) ([]*types.Paper, error)
	ListAllPapers(ctx context.Context) ([]*types.Paper, error)

	ResubmitAbstract(ctx context.Context, paperID uuid.UUID, filePath, fileName string) (*types.Paper, error)
	SubmitFullPaper(ctx context.Context, paperID uuid.UUID, filePath, fileName string) (*types.Paper, error)

	SetStatus(ctx context.Context, paperID uuid.UUID, target paperdomain.Status, reviewComment string) (*types.Paper, error)
	ResetAbstract(ctx context.Context, paperID uuid.UUID, reason string) (*types.Paper, error)
	ResetFullPaper(ctx context.Context, paperID uuid.UUID, reason string) (*types.Paper, error)
	RecordPayment(ctx context.Context, paperID uuid.UUID, reference string) (*types.Paper, error)
}

type paperService struct {
	db               *gorm.DB
	log              *logger.Logger
	paperRepo        repos.PaperRepo
	userRepo         repos.UserRepo
	notificationRepo repos.NotificationRepo
	idService        IDService
	bus              events.Bus
	files            filestore.Store
	now              func() time.Time
}

func NewPaperService(
	db *gorm.DB,
	log *logger.Logger,
	paperRepo repos.PaperRepo,
	userRepo repos.UserRepo,
	notificationRepo repos.NotificationRepo,
	idService IDService,
	bus events.Bus,
	files filestore.Store,
) PaperService {
	return &paperService{
		db:               db,
		log:              log.With("service", "PaperService"),
		paperRepo:        paperRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		idService:        idService,
		bus:              bus,
		files:            files,
		now:              time.Now,
	}
}

func (ps *paperService) SubmitAbstract(ctx context.Context, req SubmitAbstractRequest) (*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	if err := ps.checkStoredFile(ctx, req.FilePath); err != nil {
		return nil, err
	}

	var created *types.Paper
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ictacemID, genErr := ps.idService.GeneratePaperID(ctx, tx, ps.now().Year())
		if genErr != nil {
			return genErr
		}
		p, newErr := paperdomain.New(rd.UserID, ictacemID, req.Title, req.Authors, req.Theme, req.PresentationMode, req.FilePath, req.FileName, ps.now())
		if newErr != nil {
			return newErr
		}
		if cErr := ps.paperRepo.Create(ctx, tx, p); cErr != nil {
			return fmt.Errorf("create paper: %w", cErr)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	ps.log.Info("abstract submitted", "paper_id", created.ID, "ictacem_id", created.IctacemID, "owner_id", created.OwnerID)
	return created, nil
}

func (ps *paperService) GetPaper(ctx context.Context, paperID uuid.UUID) (*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	p, err := ps.paperRepo.GetByID(ctx, nil, paperID)
	if err != nil {
		return nil, err
	}
	if !rd.IsAdmin && p.OwnerID != rd.UserID {
		return nil, fmt.Errorf("paper %s belongs to another author: %w", paperID, pkgerrors.ErrForbidden)
	}
	return p, nil
}

func (ps *paperService) ListOwnPapers(ctx context.Context) ([]*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	return ps.paperRepo.ListByOwner(ctx, nil, rd.UserID)
}

func (ps *paperService) ListAllPapers(ctx context.Context) ([]*types.Paper, error) {
	return ps.paperRepo.ListAll(ctx, nil)
}

func (ps *paperService) ResubmitAbstract(ctx context.Context, paperID uuid.UUID, filePath, fileName string) (*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	if err := ps.checkStoredFile(ctx, filePath); err != nil {
		return nil, err
	}
	return ps.mutate(ctx, paperID, func(p *types.Paper) (*outboxDraft, error) {
		if _, err := p.ResubmitAbstract(rd.UserID, filePath, fileName, ps.now()); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

func (ps *paperService) SubmitFullPaper(ctx context.Context, paperID uuid.UUID, filePath, fileName string) (*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	if err := ps.checkStoredFile(ctx, filePath); err != nil {
		return nil, err
	}
	return ps.mutate(ctx, paperID, func(p *types.Paper) (*outboxDraft, error) {
		if _, err := p.SubmitFullPaper(rd.UserID, rd.IsAdmin, filePath, fileName, ps.now()); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

func (ps *paperService) SetStatus(ctx context.Context, paperID uuid.UUID, target paperdomain.Status, reviewComment string) (*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	return ps.mutate(ctx, paperID, func(p *types.Paper) (*outboxDraft, error) {
		prev, err := p.SetStatus(target, reviewComment, ps.now())
		if err != nil {
			return nil, err
		}
		p.EnsureEvaluation().StampReviewer(rd.Name, ps.now())
		return &outboxDraft{
			eventType: statusEventType(target, reviewComment),
			metadata: map[string]any{
				"previous_status": string(prev),
				"new_status":      string(target),
				"review_comment":  reviewComment,
			},
		}, nil
	})
}

func (ps *paperService) ResetAbstract(ctx context.Context, paperID uuid.UUID, reason string) (*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	return ps.mutate(ctx, paperID, func(p *types.Paper) (*outboxDraft, error) {
		if _, err := p.ResetAbstract(rd.Name, reason, ps.now()); err != nil {
			return nil, err
		}
		return &outboxDraft{
			eventType: notification.EventAbstractReset,
			metadata: map[string]any{
				"reset_by":     rd.Name,
				"reset_reason": reason,
			},
		}, nil
	})
}

func (ps *paperService) ResetFullPaper(ctx context.Context, paperID uuid.UUID, reason string) (*types.Paper, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no authenticated user in context: %w", pkgerrors.ErrUnauthorized)
	}
	return ps.mutate(ctx, paperID, func(p *types.Paper) (*outboxDraft, error) {
		if _, err := p.ResetFullPaper(rd.Name, reason, ps.now()); err != nil {
			return nil, err
		}
		return &outboxDraft{
			eventType: notification.EventFullPaperReset,
			metadata: map[string]any{
				"reset_by":     rd.Name,
				"reset_reason": reason,
			},
		}, nil
	})
}

func (ps *paperService) RecordPayment(ctx context.Context, paperID uuid.UUID, reference string) (*types.Paper, error) {
	return ps.mutate(ctx, paperID, func(p *types.Paper) (*outboxDraft, error) {
		if err := p.RecordPayment(reference, ps.now()); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

// outboxDraft is what a transition hands back when the author should hear
// about it. The mutate helper fills in recipient and paper snapshot.
type outboxDraft struct {
	eventType notification.EventType
	metadata  map[string]any
}

func (ps *paperService) mutate(ctx context.Context, paperID uuid.UUID, apply func(p *types.Paper) (*outboxDraft, error)) (*types.Paper, error) {
	var (
		result  *types.Paper
		pending []events.Message
	)
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, gErr := ps.paperRepo.GetByID(ctx, tx, paperID)
		if gErr != nil {
			return gErr
		}
		expected := p.Revision

		draft, aErr := apply(p)
		if aErr != nil {
			return aErr
		}
		p.UpdatedAt = ps.now()

		if draft != nil {
			owner, oErr := ps.userRepo.GetByID(ctx, tx, p.OwnerID)
			if oErr != nil {
				return fmt.Errorf("load paper owner: %w", oErr)
			}
			event, bErr := buildOutboxEvent(p, owner, draft, ps.now())
			if bErr != nil {
				return bErr
			}
			if cErr := ps.notificationRepo.Create(ctx, tx, event); cErr != nil {
				return fmt.Errorf("record notification event: %w", cErr)
			}
			pending = append(pending, events.Message{EventID: event.ID, EventType: event.EventType})
		}

		if sErr := ps.paperRepo.Save(ctx, tx, p, expected); sErr != nil {
			return sErr
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, msg := range pending {
		if pubErr := ps.bus.Publish(ctx, msg); pubErr != nil {
			// The row is committed as pending; the dispatcher sweep picks
			// it up even when the publish fails.
			ps.log.Warn("post-commit event publish failed", "event_id", msg.EventID, "error", pubErr)
		}
	}
	return result, nil
}

func buildOutboxEvent(p *types.Paper, owner *types.User, draft *outboxDraft, now time.Time) (*types.NotificationEvent, error) {
	raw, err := json.Marshal(draft.metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal event metadata: %w", err)
	}
	return &types.NotificationEvent{
		ID:             uuid.New(),
		PaperID:        p.ID,
		UserID:         owner.ID,
		EventType:      draft.eventType,
		RecipientEmail: owner.Email,
		RecipientName:  owner.FullName(),
		PaperTitle:     p.Title,
		IctacemID:      p.IctacemID,
		Metadata:       datatypes.JSON(raw),
		DispatchState:  notification.DispatchPending,
		CreatedAt:      now,
	}, nil
}

func statusEventType(target paperdomain.Status, reviewComment string) notification.EventType {
	switch target {
	case paperdomain.StatusDeclined:
		return notification.EventPaperDeclined
	case paperdomain.StatusAbstractAccepted:
		return notification.EventPaperApproved
	}
	if reviewComment != "" {
		return notification.EventReviewCommentAvailable
	}
	return notification.EventStatusChanged
}

func (ps *paperService) checkStoredFile(ctx context.Context, filePath string) error {
	if ps.files == nil {
		return nil
	}
	if filePath == "" {
		return fmt.Errorf("file path required: %w", pkgerrors.ErrValidation)
	}
	exists, err := ps.files.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("check stored file: %w", err)
	}
	if !exists {
		return fmt.Errorf("file %s not found in store: %w", filePath, pkgerrors.ErrValidation)
	}
	return nil
}

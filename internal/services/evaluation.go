package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/ctxutil"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

// EvaluationService owns the confidential evaluation record. It is reachable
// only through admin routes and never feeds the notification outbox: scores
// and confidential comments are invisible to authors by construction.
type EvaluationService interface {
	Get(ctx context.Context, paperID uuid.UUID) (*types.PaperEvaluation, error)
	SetScore(ctx context.Context, paperID uuid.UUID, score int) (*types.PaperEvaluation, error)
	SetConfidentialComments(ctx context.Context, paperID uuid.UUID, text string) (*types.PaperEvaluation, error)
}

type evaluationService struct {
	db        *gorm.DB
	log       *logger.Logger
	paperRepo repos.PaperRepo
	now       func() time.Time
}

func NewEvaluationService(db *gorm.DB, log *logger.Logger, paperRepo repos.PaperRepo) EvaluationService {
	return &evaluationService{
		db:        db,
		log:       log.With("service", "EvaluationService"),
		paperRepo: paperRepo,
		now:       time.Now,
	}
}

func (es *evaluationService) Get(ctx context.Context, paperID uuid.UUID) (*types.PaperEvaluation, error) {
	p, err := es.paperRepo.GetByID(ctx, nil, paperID)
	if err != nil {
		return nil, err
	}
	if p.Evaluation == nil {
		return nil, fmt.Errorf("%w: no evaluation recorded for paper %s", pkgerrors.ErrNotFound, paperID)
	}
	return p.Evaluation, nil
}

func (es *evaluationService) SetScore(ctx context.Context, paperID uuid.UUID, score int) (*types.PaperEvaluation, error) {
	return es.update(ctx, paperID, func(p *types.Paper, reviewer string) error {
		return p.EnsureEvaluation().SetScore(score, reviewer, es.now())
	})
}

func (es *evaluationService) SetConfidentialComments(ctx context.Context, paperID uuid.UUID, text string) (*types.PaperEvaluation, error) {
	return es.update(ctx, paperID, func(p *types.Paper, reviewer string) error {
		p.EnsureEvaluation().SetConfidentialComments(text, reviewer, es.now())
		return nil
	})
}

func (es *evaluationService) update(ctx context.Context, paperID uuid.UUID, apply func(p *types.Paper, reviewer string) error) (*types.PaperEvaluation, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || !rd.IsAdmin {
		return nil, fmt.Errorf("evaluation updates are admin-only: %w", pkgerrors.ErrForbidden)
	}

	var result *types.PaperEvaluation
	err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, gErr := es.paperRepo.GetByID(ctx, tx, paperID)
		if gErr != nil {
			return gErr
		}
		expected := p.Revision

		if aErr := apply(p, rd.Name); aErr != nil {
			return aErr
		}
		p.UpdatedAt = es.now()

		if sErr := es.paperRepo.Save(ctx, tx, p, expected); sErr != nil {
			return sErr
		}
		result = p.Evaluation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

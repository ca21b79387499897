package paper

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type PaperRepo interface {
	Create(ctx context.Context, tx *gorm.DB, p *types.Paper) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Paper, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Paper, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Paper, error)
	// Save persists the whole aggregate with an optimistic revision check:
	// the paper row is updated only when its stored revision still equals
	// expectedRevision, otherwise ErrConflict is returned and nothing is
	// written. History entries and the evaluation are upserted in the same
	// transaction so ledger and status can never be applied partially.
	Save(ctx context.Context, tx *gorm.DB, p *types.Paper, expectedRevision int64) error
	IctacemIDExists(ctx context.Context, tx *gorm.DB, ictacemID string) (bool, error)
}

type paperRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaperRepo(db *gorm.DB, baseLog *logger.Logger) PaperRepo {
	repoLog := baseLog.With("repo", "PaperRepo")
	return &paperRepo{db: db, log: repoLog}
}

func (pr *paperRepo) Create(ctx context.Context, tx *gorm.DB, p *types.Paper) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Create(p).Error
}

func (pr *paperRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Paper, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Paper
	err := transaction.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("paper_history_entry.submitted_at ASC, paper_history_entry.version ASC")
		}).
		Preload("Evaluation").
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: paper %s", pkgerrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *paperRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Paper, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Paper
	if err := transaction.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("paper_history_entry.submitted_at ASC, paper_history_entry.version ASC")
		}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *paperRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Paper, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Paper
	if err := transaction.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("paper_history_entry.submitted_at ASC, paper_history_entry.version ASC")
		}).
		Preload("Evaluation").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

var paperColumns = []string{
	"status",
	"review_comment",
	"payment_reference",
	"current_abstract_path",
	"current_full_paper_path",
	"submitted_at",
	"full_paper_submitted_at",
	"revision",
	"updated_at",
}

func (pr *paperRepo) Save(ctx context.Context, tx *gorm.DB, p *types.Paper, expectedRevision int64) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	updates := map[string]any{
		"status":                  p.Status,
		"review_comment":          p.ReviewComment,
		"payment_reference":       p.PaymentReference,
		"current_abstract_path":   p.CurrentAbstractPath,
		"current_full_paper_path": p.CurrentFullPaperPath,
		"submitted_at":            p.SubmittedAt,
		"full_paper_submitted_at": p.FullPaperSubmittedAt,
		"revision":                expectedRevision + 1,
		"updated_at":              p.UpdatedAt,
	}

	res := transaction.WithContext(ctx).
		Model(&types.Paper{}).
		Where("id = ? AND revision = ?", p.ID, expectedRevision).
		Select(paperColumns).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: paper %s revision %d is stale", pkgerrors.ErrConflict, p.ID, expectedRevision)
	}
	p.Revision = expectedRevision + 1

	for i := range p.History {
		if err := transaction.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"entry_status", "reset_by", "reset_reason", "reset_at",
				}),
			}).
			Create(&p.History[i]).Error; err != nil {
			return fmt.Errorf("save history entry v%d: %w", p.History[i].Version, err)
		}
	}

	if p.Evaluation != nil {
		if err := transaction.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"score", "confidential_comments", "reviewed_by", "reviewed_at", "updated_at",
				}),
			}).
			Create(p.Evaluation).Error; err != nil {
			return fmt.Errorf("save evaluation: %w", err)
		}
	}

	return nil
}

func (pr *paperRepo) IctacemIDExists(ctx context.Context, tx *gorm.DB, ictacemID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Paper{}).
		Where("ictacem_id = ?", ictacemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

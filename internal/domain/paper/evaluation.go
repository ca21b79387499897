package paper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Evaluation is the confidential, admin-only scoring record. It is attached
// to the paper entity but fully decoupled from Status and ReviewComment, and
// no author-facing read path ever serializes it.
type Evaluation struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PaperID uuid.UUID `gorm:"type:uuid;column:paper_id;not null;uniqueIndex" json:"paper_id"`

	Score                *int   `gorm:"column:score" json:"score,omitempty"`
	ConfidentialComments string `gorm:"column:confidential_comments" json:"confidential_comments"`

	ReviewedBy string     `gorm:"column:reviewed_by" json:"reviewed_by"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Evaluation) TableName() string { return "paper_evaluation" }

// EnsureEvaluation returns the paper's evaluation record, creating the
// zero-or-one row on first use.
func (p *Paper) EnsureEvaluation() *Evaluation {
	if p.Evaluation == nil {
		p.Evaluation = &Evaluation{
			ID:      uuid.New(),
			PaperID: p.ID,
		}
	}
	return p.Evaluation
}

// StampReviewer records the evaluating admin's identity and time when the
// record has not been stamped yet.
func (e *Evaluation) StampReviewer(reviewer string, now time.Time) {
	if e.ReviewedBy == "" {
		e.ReviewedBy = reviewer
	}
	if e.ReviewedAt == nil {
		e.ReviewedAt = &now
	}
}

// SetScore validates and records the score. Bounds are inclusive.
func (e *Evaluation) SetScore(score int, reviewer string, now time.Time) error {
	if score < 0 || score > 100 {
		return errValidation(fmt.Sprintf("score %d out of range [0,100]", score))
	}
	e.Score = &score
	e.ReviewedBy = reviewer
	e.ReviewedAt = &now
	e.UpdatedAt = now
	return nil
}

// SetConfidentialComments records admin-only commentary.
func (e *Evaluation) SetConfidentialComments(text, reviewer string, now time.Time) {
	e.ConfidentialComments = text
	e.ReviewedBy = reviewer
	e.ReviewedAt = &now
	e.UpdatedAt = now
}

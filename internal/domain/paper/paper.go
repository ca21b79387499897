package paper

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Paper is the aggregate root of the submission lifecycle. The two current
// pointers are materialized views over History: they are recomputed inside
// every mutation and must always equal the current entry's path (or be nil
// when no entry is current).
type Paper struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// IctacemID is the human-readable conference identifier. It is
	// generated collision-checked at creation but carries no uniqueness
	// constraint in the schema: duplicates are possible and tolerated.
	IctacemID string `gorm:"column:ictacem_id;not null;index" json:"ictacem_id"`

	OwnerID uuid.UUID `gorm:"type:uuid;column:owner_id;not null;index" json:"owner_id"`

	Title            string `gorm:"not null" json:"title"`
	Authors          string `gorm:"not null" json:"authors"`
	Theme            string `gorm:"not null" json:"theme"`
	PresentationMode string `gorm:"column:presentation_mode;not null" json:"presentation_mode"`

	Status        Status `gorm:"not null;index" json:"status"`
	ReviewComment string `gorm:"column:review_comment" json:"review_comment"`

	PaymentReference string `gorm:"column:payment_reference" json:"payment_reference"`

	CurrentAbstractPath  *string `gorm:"column:current_abstract_path" json:"current_abstract_path"`
	CurrentFullPaperPath *string `gorm:"column:current_full_paper_path" json:"current_full_paper_path"`

	// SubmittedAt tracks the most recent current abstract submission, not
	// paper creation. Cleared on admin reset.
	SubmittedAt          *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	FullPaperSubmittedAt *time.Time `gorm:"column:full_paper_submitted_at" json:"full_paper_submitted_at"`

	// Revision backs optimistic concurrency: every aggregate save checks
	// and increments it, rejecting stale writers with a conflict.
	Revision int64 `gorm:"not null;default:0" json:"revision"`

	History []HistoryEntry `gorm:"foreignKey:PaperID" json:"history,omitempty"`

	// Evaluation is admin-only and never serialized on author-visible
	// reads.
	Evaluation *Evaluation `gorm:"foreignKey:PaperID" json:"-"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Paper) TableName() string { return "paper" }

// New creates a paper at first abstract submission: status review_awaited and
// a seeded abstract history of one current entry, version 1.
func New(ownerID uuid.UUID, ictacemID, title, authors, theme, presentationMode, filePath, fileName string, now time.Time) (*Paper, error) {
	if ownerID == uuid.Nil {
		return nil, errValidation("owner required")
	}
	for field, v := range map[string]string{
		"ictacem_id":        ictacemID,
		"title":             title,
		"authors":           authors,
		"theme":             theme,
		"presentation_mode": presentationMode,
		"file_path":         filePath,
		"file_name":         fileName,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, errValidation(field + " required")
		}
	}

	p := &Paper{
		ID:               uuid.New(),
		IctacemID:        ictacemID,
		OwnerID:          ownerID,
		Title:            title,
		Authors:          authors,
		Theme:            theme,
		PresentationMode: presentationMode,
		Status:           StatusReviewAwaited,
		SubmittedAt:      &now,
	}
	entry := AppendEntry(p.ID, StreamAbstract, nil, filePath, fileName, now)
	p.History = append(p.History, entry)
	p.refreshCurrentPointers()
	return p, nil
}

// StreamHistory returns the entries of one stream in append order.
func (p *Paper) StreamHistory(stream Stream) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(p.History))
	for _, e := range p.History {
		if e.Stream == stream {
			out = append(out, e)
		}
	}
	return out
}

func (p *Paper) streamIndexes(stream Stream) []int {
	idx := make([]int, 0, len(p.History))
	for i := range p.History {
		if p.History[i].Stream == stream {
			idx = append(idx, i)
		}
	}
	return idx
}

func (p *Paper) currentIndex(stream Stream) int {
	for _, i := range p.streamIndexes(stream) {
		if p.History[i].EntryStatus == EntryStatusCurrent {
			return i
		}
	}
	return -1
}

// refreshCurrentPointers recomputes the materialized current-path fields from
// the ledger. Called after every history mutation so the pointers can never
// drift from the entries.
func (p *Paper) refreshCurrentPointers() {
	p.CurrentAbstractPath = nil
	p.CurrentFullPaperPath = nil
	if i := p.currentIndex(StreamAbstract); i >= 0 {
		path := p.History[i].FilePath
		p.CurrentAbstractPath = &path
	}
	if i := p.currentIndex(StreamFullPaper); i >= 0 {
		path := p.History[i].FilePath
		p.CurrentFullPaperPath = &path
	}
}

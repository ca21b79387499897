package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventType enumerates the lifecycle transitions the portal notifies authors
// about. One logical event is recorded per externally observable transition.
type EventType string

const (
	EventStatusChanged          EventType = "status_changed"
	EventAbstractReset          EventType = "abstract_reset"
	EventFullPaperReset         EventType = "fullpaper_reset"
	EventReviewCommentAvailable EventType = "review_comment_available"
	EventPaperApproved          EventType = "paper_approved"
	EventPaperDeclined          EventType = "paper_declined"
)

type DispatchState string

const (
	DispatchPending   DispatchState = "pending"
	DispatchDelivered DispatchState = "delivered"
	DispatchFailed    DispatchState = "failed"
)

// Event is the persisted outbox row for one notification. It is written in
// the same transaction as the lifecycle mutation it reports, so delivery
// intent survives crashes; the dispatcher updates the dispatch fields
// afterwards and its outcome never feeds back into the lifecycle.
type Event struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PaperID uuid.UUID `gorm:"type:uuid;column:paper_id;not null;index" json:"paper_id"`
	UserID  uuid.UUID `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`

	EventType EventType `gorm:"column:event_type;not null;index" json:"event_type"`

	RecipientEmail string `gorm:"column:recipient_email;not null" json:"recipient_email"`
	RecipientName  string `gorm:"column:recipient_name" json:"recipient_name"`

	// Paper snapshot at transition time.
	PaperTitle string `gorm:"column:paper_title;not null" json:"paper_title"`
	IctacemID  string `gorm:"column:ictacem_id;not null" json:"ictacem_id"`

	// Transition-specific metadata: previous/new status, reset reason,
	// reviewer name, score where relevant.
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`

	DispatchState DispatchState `gorm:"column:dispatch_state;not null;default:pending;index" json:"dispatch_state"`
	DispatchError string        `gorm:"column:dispatch_error" json:"dispatch_error,omitempty"`
	DispatchedAt  *time.Time    `gorm:"column:dispatched_at" json:"dispatched_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Event) TableName() string { return "notification_event" }

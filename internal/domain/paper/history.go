package paper

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
)

// HistoryEntry is one physical file ever submitted on a stream. Versions are
// assigned at append time as priorCount+1 and never reused or renumbered.
// Entries stay in the ledger forever; an admin reset retires the current
// entry without deleting its file.
type HistoryEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PaperID uuid.UUID `gorm:"type:uuid;column:paper_id;not null;index" json:"paper_id"`

	Stream  Stream `gorm:"not null;index" json:"stream"`
	Version int    `gorm:"not null" json:"version"`

	FilePath string `gorm:"column:file_path;not null" json:"file_path"`
	FileName string `gorm:"column:file_name;not null" json:"file_name"`

	EntryStatus EntryStatus `gorm:"column:entry_status;not null;index" json:"entry_status"`
	SubmittedAt time.Time   `gorm:"column:submitted_at;not null" json:"submitted_at"`

	// Reset metadata: populated exactly when EntryStatus is reset_by_admin.
	ResetBy     string     `gorm:"column:reset_by" json:"reset_by,omitempty"`
	ResetReason string     `gorm:"column:reset_reason" json:"reset_reason,omitempty"`
	ResetAt     *time.Time `gorm:"column:reset_at" json:"reset_at,omitempty"`
}

func (HistoryEntry) TableName() string { return "paper_history_entry" }

// CurrentEntry returns a pointer to the single current entry of the slice,
// or nil when none is current. The pointer aliases the slice element.
func CurrentEntry(entries []HistoryEntry) *HistoryEntry {
	for i := range entries {
		if entries[i].EntryStatus == EntryStatusCurrent {
			return &entries[i]
		}
	}
	return nil
}

// NextVersion is the version an append would assign: priorCount+1.
func NextVersion(entries []HistoryEntry) int { return len(entries) + 1 }

// AppendEntry builds a new current entry for the stream. The caller is
// responsible for retiring any prior current entry first (reset-then-replace
// on the abstract stream, supersede on the full-paper stream).
func AppendEntry(paperID uuid.UUID, stream Stream, entries []HistoryEntry, filePath, fileName string, now time.Time) HistoryEntry {
	return HistoryEntry{
		ID:          uuid.New(),
		PaperID:     paperID,
		Stream:      stream,
		Version:     NextVersion(entries),
		FilePath:    filePath,
		FileName:    fileName,
		EntryStatus: EntryStatusCurrent,
		SubmittedAt: now,
	}
}

// MarkCurrentSuperseded retires the current entry of the slice, returning it.
// Idempotent: when nothing is current it returns nil and changes nothing.
func MarkCurrentSuperseded(entries []HistoryEntry) *HistoryEntry {
	cur := CurrentEntry(entries)
	if cur == nil {
		return nil
	}
	cur.EntryStatus = EntryStatusSuperseded
	return cur
}

// MarkCurrentResetByAdmin retires the current entry with reset metadata.
// Unlike supersede this is not idempotent: finding no current entry is a
// ledger anomaly surfaced as ErrNoCurrentEntry, never a silent success.
func MarkCurrentResetByAdmin(entries []HistoryEntry, resetBy, reason string, now time.Time) (*HistoryEntry, error) {
	cur := CurrentEntry(entries)
	if cur == nil {
		return nil, pkgerrors.ErrNoCurrentEntry
	}
	cur.EntryStatus = EntryStatusResetByAdmin
	cur.ResetBy = resetBy
	cur.ResetReason = reason
	cur.ResetAt = &now
	return cur, nil
}

// ValidateStream checks the ledger invariants for one stream's entries in
// append order: at most one current entry, versions 1..N with no gaps or
// repeats, and reset metadata present iff the entry was reset by an admin.
func ValidateStream(entries []HistoryEntry) error {
	currents := 0
	for i := range entries {
		e := &entries[i]
		if e.Version != i+1 {
			return fmt.Errorf("entry %d has version %d, want %d", i, e.Version, i+1)
		}
		switch e.EntryStatus {
		case EntryStatusCurrent:
			currents++
		case EntryStatusSuperseded, EntryStatusResetByAdmin:
		default:
			return fmt.Errorf("entry %d has unknown status %q", i, e.EntryStatus)
		}
		isReset := e.EntryStatus == EntryStatusResetByAdmin
		hasResetMeta := e.ResetBy != "" || e.ResetAt != nil
		if isReset && !hasResetMeta {
			return fmt.Errorf("entry %d is reset_by_admin without reset metadata", i)
		}
		if !isReset && hasResetMeta {
			return fmt.Errorf("entry %d carries reset metadata but has status %q", i, e.EntryStatus)
		}
	}
	if currents > 1 {
		return fmt.Errorf("stream has %d current entries, want at most 1", currents)
	}
	return nil
}

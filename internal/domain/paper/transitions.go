package paper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
)

// Transition methods. Each validates its precondition before touching any
// field: a rejected transition leaves the aggregate exactly as it was.

func errValidation(msg string) error {
	return fmt.Errorf("%w: %s", pkgerrors.ErrValidation, msg)
}

func errTransition(msg string) error {
	return fmt.Errorf("%w: %s", pkgerrors.ErrInvalidTransition, msg)
}

// SetStatus applies an administrator status update together with the
// author-visible review comment (which may be empty). Returns the previous
// status for the notification snapshot.
func (p *Paper) SetStatus(target Status, reviewComment string, now time.Time) (Status, error) {
	if !target.Valid() {
		return "", errValidation(fmt.Sprintf("unknown status %q", target))
	}
	if !target.AdminSettable() {
		return "", errTransition(fmt.Sprintf("status %q cannot be set directly", target))
	}
	prev := p.Status
	p.Status = target
	p.ReviewComment = reviewComment
	p.UpdatedAt = now
	return prev, nil
}

// ResetAbstract retires the current abstract entry, forcing resubmission.
// The file itself is untouched and stays reachable through history.
func (p *Paper) ResetAbstract(adminName, reason string, now time.Time) (*HistoryEntry, error) {
	if p.CurrentAbstractPath == nil {
		return nil, errTransition("abstract already reset; awaiting author resubmission")
	}
	idx := p.currentIndex(StreamAbstract)
	if idx < 0 {
		// Pointer says current but the ledger disagrees: surface the
		// anomaly instead of silently no-opping.
		return nil, fmt.Errorf("%w: abstract stream", pkgerrors.ErrNoCurrentEntry)
	}
	e := &p.History[idx]
	e.EntryStatus = EntryStatusResetByAdmin
	e.ResetBy = adminName
	e.ResetReason = reason
	e.ResetAt = &now

	p.Status = StatusAuthorResponseAwaited
	p.ReviewComment = ""
	p.SubmittedAt = nil
	p.UpdatedAt = now
	p.refreshCurrentPointers()
	return e, nil
}

// ResubmitAbstract appends a fresh abstract after an admin reset. Only the
// owning author may resubmit, and only while no abstract is current.
func (p *Paper) ResubmitAbstract(requesterID uuid.UUID, filePath, fileName string, now time.Time) (*HistoryEntry, error) {
	if requesterID != p.OwnerID {
		return nil, fmt.Errorf("%w: only the owning author may resubmit", pkgerrors.ErrForbidden)
	}
	if strings.TrimSpace(filePath) == "" || strings.TrimSpace(fileName) == "" {
		return nil, errValidation("file path and name required")
	}
	if p.CurrentAbstractPath != nil {
		return nil, errTransition("abstract is still current; an admin reset is required first")
	}
	entry := AppendEntry(p.ID, StreamAbstract, p.StreamHistory(StreamAbstract), filePath, fileName, now)
	p.History = append(p.History, entry)
	p.Status = StatusReviewAwaited
	p.ReviewComment = ""
	p.SubmittedAt = &now
	p.UpdatedAt = now
	p.refreshCurrentPointers()
	return &p.History[len(p.History)-1], nil
}

// SubmitFullPaper appends a full-paper entry, superseding any prior current
// one. Unlike the abstract stream, no intervening reset is required:
// full-paper iteration is free once the abstract is accepted and paid for.
func (p *Paper) SubmitFullPaper(requesterID uuid.UUID, isAdmin bool, filePath, fileName string, now time.Time) (*HistoryEntry, error) {
	if requesterID != p.OwnerID && !isAdmin {
		return nil, fmt.Errorf("%w: only the owning author or an admin may submit", pkgerrors.ErrForbidden)
	}
	if strings.TrimSpace(filePath) == "" || strings.TrimSpace(fileName) == "" {
		return nil, errValidation("file path and name required")
	}
	if p.Status != StatusAbstractAccepted {
		return nil, errTransition(fmt.Sprintf("full paper requires status %q, paper is %q", StatusAbstractAccepted, p.Status))
	}
	if strings.TrimSpace(p.PaymentReference) == "" {
		return nil, errTransition("full paper requires a recorded payment")
	}
	stream := p.StreamHistory(StreamFullPaper)
	if cur := CurrentEntry(stream); cur != nil && cur.FilePath == filePath {
		// Retried submissions must not mint duplicate versions.
		return nil, errTransition("file is already the current full paper")
	}
	if idx := p.currentIndex(StreamFullPaper); idx >= 0 {
		p.History[idx].EntryStatus = EntryStatusSuperseded
	}
	entry := AppendEntry(p.ID, StreamFullPaper, stream, filePath, fileName, now)
	p.History = append(p.History, entry)
	p.FullPaperSubmittedAt = &now
	p.UpdatedAt = now
	p.refreshCurrentPointers()
	return &p.History[len(p.History)-1], nil
}

// ResetFullPaper mirrors ResetAbstract for the full-paper stream.
func (p *Paper) ResetFullPaper(adminName, reason string, now time.Time) (*HistoryEntry, error) {
	if p.CurrentFullPaperPath == nil {
		return nil, errTransition("no full paper to reset")
	}
	idx := p.currentIndex(StreamFullPaper)
	if idx < 0 {
		return nil, fmt.Errorf("%w: full-paper stream", pkgerrors.ErrNoCurrentEntry)
	}
	e := &p.History[idx]
	e.EntryStatus = EntryStatusResetByAdmin
	e.ResetBy = adminName
	e.ResetReason = reason
	e.ResetAt = &now

	p.Status = StatusAuthorResponseAwaited
	p.FullPaperSubmittedAt = nil
	p.UpdatedAt = now
	p.refreshCurrentPointers()
	return e, nil
}

// RecordPayment stores the opaque payment reference that gates full-paper
// submission. It has no history or version effect.
func (p *Paper) RecordPayment(reference string, now time.Time) error {
	if strings.TrimSpace(reference) == "" {
		return errValidation("payment reference required")
	}
	if p.Status != StatusAbstractAccepted {
		return errTransition(fmt.Sprintf("payment requires status %q, paper is %q", StatusAbstractAccepted, p.Status))
	}
	p.PaymentReference = reference
	p.UpdatedAt = now
	return nil
}

// Validate checks the whole aggregate: per-stream ledger invariants plus
// pointer consistency between the materialized current paths and the ledger.
func (p *Paper) Validate() error {
	for _, stream := range []Stream{StreamAbstract, StreamFullPaper} {
		if err := ValidateStream(p.StreamHistory(stream)); err != nil {
			return fmt.Errorf("stream %s: %w", stream, err)
		}
	}
	if err := checkPointer(p.CurrentAbstractPath, CurrentEntry(p.StreamHistory(StreamAbstract))); err != nil {
		return fmt.Errorf("abstract pointer: %w", err)
	}
	if err := checkPointer(p.CurrentFullPaperPath, CurrentEntry(p.StreamHistory(StreamFullPaper))); err != nil {
		return fmt.Errorf("full-paper pointer: %w", err)
	}
	return nil
}

func checkPointer(ptr *string, cur *HistoryEntry) error {
	switch {
	case ptr == nil && cur != nil:
		return fmt.Errorf("pointer nil but entry v%d is current", cur.Version)
	case ptr != nil && cur == nil:
		return fmt.Errorf("pointer %q set but no entry is current", *ptr)
	case ptr != nil && cur != nil && *ptr != cur.FilePath:
		return fmt.Errorf("pointer %q does not match current entry path %q", *ptr, cur.FilePath)
	}
	return nil
}

package paper

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
)

func newTestPaper(t *testing.T) *Paper {
	t.Helper()
	p, err := New(uuid.New(), "ICTACEM-2024-001", "Hypersonic Boundary Layers", "A. Author, B. Author", "Aerodynamics", "oral", "/files/abstract-v1.pdf", "abstract-v1.pdf", time.Now())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func mustValidate(t *testing.T, p *Paper) {
	t.Helper()
	if err := p.Validate(); err != nil {
		t.Fatalf("aggregate invariant violated: %v", err)
	}
}

func TestNewPaperSeedsLedger(t *testing.T) {
	p := newTestPaper(t)

	if p.Status != StatusReviewAwaited {
		t.Fatalf("status = %q, want review_awaited", p.Status)
	}
	abs := p.StreamHistory(StreamAbstract)
	if len(abs) != 1 || abs[0].Version != 1 || abs[0].EntryStatus != EntryStatusCurrent {
		t.Fatalf("seeded abstract history = %+v, want [v1 current]", abs)
	}
	if p.CurrentAbstractPath == nil || *p.CurrentAbstractPath != "/files/abstract-v1.pdf" {
		t.Fatalf("CurrentAbstractPath = %v", p.CurrentAbstractPath)
	}
	if p.SubmittedAt == nil {
		t.Fatalf("SubmittedAt not stamped")
	}
	mustValidate(t, p)
}

func TestNewPaperRejectsMissingFields(t *testing.T) {
	if _, err := New(uuid.Nil, "id", "t", "a", "th", "oral", "/f", "f", time.Now()); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("nil owner error = %v, want ErrValidation", err)
	}
	if _, err := New(uuid.New(), "id", "", "a", "th", "oral", "/f", "f", time.Now()); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("empty title error = %v, want ErrValidation", err)
	}
}

func TestAbstractResetThenResubmit(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()

	entry, err := p.ResetAbstract("Dr. Chair", "needs clarification", now)
	if err != nil {
		t.Fatalf("ResetAbstract: %v", err)
	}
	if p.Status != StatusAuthorResponseAwaited {
		t.Fatalf("status after reset = %q, want author_response_awaited", p.Status)
	}
	if p.CurrentAbstractPath != nil {
		t.Fatalf("CurrentAbstractPath = %v, want nil", p.CurrentAbstractPath)
	}
	if p.SubmittedAt != nil || p.ReviewComment != "" {
		t.Fatalf("reset did not clear submitted_at/review_comment")
	}
	if entry.EntryStatus != EntryStatusResetByAdmin || entry.ResetReason != "needs clarification" {
		t.Fatalf("reset entry = %+v", entry)
	}
	// The file stays reachable through history.
	if got := p.StreamHistory(StreamAbstract); len(got) != 1 || got[0].FilePath != "/files/abstract-v1.pdf" {
		t.Fatalf("history after reset = %+v", got)
	}
	mustValidate(t, p)

	resub, err := p.ResubmitAbstract(p.OwnerID, "/files/abstract-v2.pdf", "abstract-v2.pdf", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ResubmitAbstract: %v", err)
	}
	if resub.Version != 2 || resub.EntryStatus != EntryStatusCurrent {
		t.Fatalf("resubmitted entry = %+v, want v2 current", resub)
	}
	if p.Status != StatusReviewAwaited {
		t.Fatalf("status after resubmit = %q, want review_awaited", p.Status)
	}
	if p.CurrentAbstractPath == nil || *p.CurrentAbstractPath != "/files/abstract-v2.pdf" {
		t.Fatalf("CurrentAbstractPath = %v", p.CurrentAbstractPath)
	}
	abs := p.StreamHistory(StreamAbstract)
	if len(abs) != 2 || abs[0].EntryStatus != EntryStatusResetByAdmin || abs[1].EntryStatus != EntryStatusCurrent {
		t.Fatalf("abstract history = %+v, want [v1 reset_by_admin, v2 current]", abs)
	}
	mustValidate(t, p)
}

func TestResetAbstractIdempotenceGuard(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()

	if _, err := p.ResetAbstract("Dr. Chair", "first", now); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	before := len(p.History)

	_, err := p.ResetAbstract("Dr. Chair", "second", now)
	if !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("second reset error = %v, want ErrInvalidTransition", err)
	}
	if len(p.History) != before {
		t.Fatalf("second reset mutated history")
	}
	mustValidate(t, p)
}

func TestResubmitGatedOnReset(t *testing.T) {
	p := newTestPaper(t)

	_, err := p.ResubmitAbstract(p.OwnerID, "/files/new.pdf", "new.pdf", time.Now())
	if !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("resubmit with live abstract error = %v, want ErrInvalidTransition", err)
	}

	if _, err := p.ResetAbstract("Dr. Chair", "", time.Now()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	_, err = p.ResubmitAbstract(uuid.New(), "/files/new.pdf", "new.pdf", time.Now())
	if !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("resubmit by stranger error = %v, want ErrForbidden", err)
	}
}

func TestFullPaperGating(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()

	_, err := p.SubmitFullPaper(p.OwnerID, false, "/files/full.pdf", "full.pdf", now)
	if !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("full paper before acceptance error = %v, want ErrInvalidTransition", err)
	}

	if _, err := p.SetStatus(StatusAbstractAccepted, "solid work", now); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	_, err = p.SubmitFullPaper(p.OwnerID, false, "/files/full.pdf", "full.pdf", now)
	if !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("full paper without payment error = %v, want ErrInvalidTransition", err)
	}

	if err := p.RecordPayment("PAY123", now); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	entry, err := p.SubmitFullPaper(p.OwnerID, false, "/files/full.pdf", "full.pdf", now)
	if err != nil {
		t.Fatalf("SubmitFullPaper: %v", err)
	}
	if entry.Version != 1 || entry.EntryStatus != EntryStatusCurrent {
		t.Fatalf("full paper entry = %+v, want v1 current", entry)
	}
	if p.FullPaperSubmittedAt == nil {
		t.Fatalf("FullPaperSubmittedAt not stamped")
	}
	mustValidate(t, p)
}

func TestFullPaperSupersession(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()
	if _, err := p.SetStatus(StatusAbstractAccepted, "", now); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := p.RecordPayment("PAY123", now); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if _, err := p.SubmitFullPaper(p.OwnerID, false, "/files/full-a.pdf", "full-a.pdf", now); err != nil {
		t.Fatalf("submit A: %v", err)
	}
	if _, err := p.SubmitFullPaper(p.OwnerID, false, "/files/full-b.pdf", "full-b.pdf", now); err != nil {
		t.Fatalf("submit B: %v", err)
	}

	fp := p.StreamHistory(StreamFullPaper)
	if len(fp) != 2 {
		t.Fatalf("full-paper history length = %d, want 2", len(fp))
	}
	if fp[0].EntryStatus != EntryStatusSuperseded || fp[1].EntryStatus != EntryStatusCurrent {
		t.Fatalf("full-paper history = [%q, %q], want [superseded, current]", fp[0].EntryStatus, fp[1].EntryStatus)
	}
	if p.CurrentFullPaperPath == nil || *p.CurrentFullPaperPath != "/files/full-b.pdf" {
		t.Fatalf("CurrentFullPaperPath = %v, want B's path", p.CurrentFullPaperPath)
	}
	mustValidate(t, p)

	// Retrying the exact same file must not mint a duplicate version.
	_, err := p.SubmitFullPaper(p.OwnerID, false, "/files/full-b.pdf", "full-b.pdf", now)
	if !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("duplicate submit error = %v, want ErrInvalidTransition", err)
	}
	if got := len(p.StreamHistory(StreamFullPaper)); got != 2 {
		t.Fatalf("history grew to %d after rejected duplicate", got)
	}
}

func TestFullPaperReset(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()
	if _, err := p.SetStatus(StatusAbstractAccepted, "", now); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := p.RecordPayment("PAY123", now); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if _, err := p.SubmitFullPaper(p.OwnerID, false, "/files/full-a.pdf", "full-a.pdf", now); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entry, err := p.ResetFullPaper("Dr. Chair", "formatting", now)
	if err != nil {
		t.Fatalf("ResetFullPaper: %v", err)
	}
	if entry.EntryStatus != EntryStatusResetByAdmin {
		t.Fatalf("entry status = %q, want reset_by_admin", entry.EntryStatus)
	}
	if p.Status != StatusAuthorResponseAwaited {
		t.Fatalf("status = %q, want author_response_awaited", p.Status)
	}
	if p.CurrentFullPaperPath != nil {
		t.Fatalf("CurrentFullPaperPath = %v, want nil", p.CurrentFullPaperPath)
	}
	mustValidate(t, p)

	if _, err := p.ResetFullPaper("Dr. Chair", "again", now); !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("second full-paper reset error = %v, want ErrInvalidTransition", err)
	}
}

func TestSetStatusGuards(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()

	prev, err := p.SetStatus(StatusReviewInProgress, "under review", now)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if prev != StatusReviewAwaited {
		t.Fatalf("previous status = %q, want review_awaited", prev)
	}
	if p.ReviewComment != "under review" {
		t.Fatalf("review comment = %q", p.ReviewComment)
	}

	if _, err := p.SetStatus(Status("garbage"), "", now); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("unknown status error = %v, want ErrValidation", err)
	}
	// approved is a reserved value no write path may produce.
	if _, err := p.SetStatus(StatusApproved, "", now); !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("approved status error = %v, want ErrInvalidTransition", err)
	}
	if p.Status != StatusReviewInProgress {
		t.Fatalf("rejected SetStatus mutated status to %q", p.Status)
	}
}

func TestRecordPaymentGuards(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()

	if err := p.RecordPayment("PAY123", now); !errors.Is(err, pkgerrors.ErrInvalidTransition) {
		t.Fatalf("payment before acceptance error = %v, want ErrInvalidTransition", err)
	}
	if _, err := p.SetStatus(StatusAbstractAccepted, "", now); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := p.RecordPayment("  ", now); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("blank reference error = %v, want ErrValidation", err)
	}
	if err := p.RecordPayment("PAY123", now); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if p.PaymentReference != "PAY123" {
		t.Fatalf("PaymentReference = %q", p.PaymentReference)
	}
}

func TestEvaluationScoreBounds(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()
	ev := p.EnsureEvaluation()

	for _, bad := range []int{-1, 150} {
		if err := ev.SetScore(bad, "Dr. Chair", now); !errors.Is(err, pkgerrors.ErrValidation) {
			t.Fatalf("SetScore(%d) error = %v, want ErrValidation", bad, err)
		}
	}
	for _, ok := range []int{0, 100} {
		if err := ev.SetScore(ok, "Dr. Chair", now); err != nil {
			t.Fatalf("SetScore(%d): %v", ok, err)
		}
		if ev.Score == nil || *ev.Score != ok {
			t.Fatalf("Score = %v, want %d", ev.Score, ok)
		}
	}
	if ev.ReviewedBy != "Dr. Chair" || ev.ReviewedAt == nil {
		t.Fatalf("reviewer not stamped: %+v", ev)
	}
}

func TestEnsureEvaluationReusesRecord(t *testing.T) {
	p := newTestPaper(t)
	first := p.EnsureEvaluation()
	second := p.EnsureEvaluation()
	if first != second {
		t.Fatalf("EnsureEvaluation created a second record")
	}
	if first.PaperID != p.ID {
		t.Fatalf("evaluation paper id = %v, want %v", first.PaperID, p.ID)
	}
}

func TestStampReviewerOnlyOnce(t *testing.T) {
	p := newTestPaper(t)
	now := time.Now()
	ev := p.EnsureEvaluation()

	ev.StampReviewer("Dr. First", now)
	ev.StampReviewer("Dr. Second", now.Add(time.Hour))
	if ev.ReviewedBy != "Dr. First" {
		t.Fatalf("ReviewedBy = %q, want first reviewer kept", ev.ReviewedBy)
	}
}

package paper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos/testutil"
	paperdomain "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/paper"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
)

func TestPaperRepoRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewPaperRepo(db, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, tx, "roundtrip@example.com")
	seeded := testutil.SeedPaper(t, ctx, tx, owner.ID)

	got, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IctacemID != seeded.IctacemID {
		t.Fatalf("IctacemID = %q, want %q", got.IctacemID, seeded.IctacemID)
	}
	if len(got.History) != 1 || got.History[0].Version != 1 {
		t.Fatalf("history = %+v, want seeded v1", got.History)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("loaded aggregate invalid: %v", err)
	}

	byOwner, err := repo.ListByOwner(ctx, tx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(byOwner) != 1 {
		t.Fatalf("ListByOwner returned %d papers, want 1", len(byOwner))
	}
}

func TestPaperRepoSaveRevisionCheck(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewPaperRepo(db, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, tx, "revision@example.com")
	seeded := testutil.SeedPaper(t, ctx, tx, owner.ID)

	loaded, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if _, err := loaded.SetStatus(paperdomain.StatusReviewInProgress, "checking", time.Now()); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := repo.Save(ctx, tx, loaded, loaded.Revision); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second writer holding the old revision must be rejected.
	stale := *seeded
	if _, err := stale.SetStatus(paperdomain.StatusDeclined, "", time.Now()); err != nil {
		t.Fatalf("SetStatus (stale): %v", err)
	}
	err = repo.Save(ctx, tx, &stale, 0)
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("stale Save error = %v, want ErrConflict", err)
	}

	reloaded, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID (reload): %v", err)
	}
	if reloaded.Status != paperdomain.StatusReviewInProgress {
		t.Fatalf("status = %q, want the winner's review_in_progress", reloaded.Status)
	}
	if reloaded.Revision != 1 {
		t.Fatalf("revision = %d, want 1", reloaded.Revision)
	}
}

func TestPaperRepoSavePersistsLedgerMutation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewPaperRepo(db, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, tx, "ledger@example.com")
	seeded := testutil.SeedPaper(t, ctx, tx, owner.ID)

	loaded, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := loaded.ResetAbstract("Dr. Chair", "incomplete", time.Now()); err != nil {
		t.Fatalf("ResetAbstract: %v", err)
	}
	if err := repo.Save(ctx, tx, loaded, loaded.Revision); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID (reload): %v", err)
	}
	if reloaded.CurrentAbstractPath != nil {
		t.Fatalf("CurrentAbstractPath = %v, want nil after reset", reloaded.CurrentAbstractPath)
	}
	abs := reloaded.StreamHistory(paperdomain.StreamAbstract)
	if len(abs) != 1 || abs[0].EntryStatus != paperdomain.EntryStatusResetByAdmin {
		t.Fatalf("abstract history = %+v, want [v1 reset_by_admin]", abs)
	}
	if abs[0].ResetBy != "Dr. Chair" || abs[0].ResetReason != "incomplete" {
		t.Fatalf("reset metadata not persisted: %+v", abs[0])
	}
	if err := reloaded.Validate(); err != nil {
		t.Fatalf("reloaded aggregate invalid: %v", err)
	}
}

func TestIctacemIDExists(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewPaperRepo(db, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, tx, "ictacem@example.com")
	seeded := testutil.SeedPaper(t, ctx, tx, owner.ID)

	exists, err := repo.IctacemIDExists(ctx, tx, seeded.IctacemID)
	if err != nil {
		t.Fatalf("IctacemIDExists: %v", err)
	}
	if !exists {
		t.Fatalf("IctacemIDExists = false for seeded id")
	}

	exists, err = repo.IctacemIDExists(ctx, tx, "ICTACEM-NOPE-000")
	if err != nil {
		t.Fatalf("IctacemIDExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("IctacemIDExists = true for unknown id")
	}
}

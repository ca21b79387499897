package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	paperdomain "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/paper"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		AccountID: "ACC-" + uuid.New().String()[:8],
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPaper(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) *types.Paper {
	tb.Helper()
	p, err := paperdomain.New(ownerID, "ICTACEM-TEST-"+uuid.New().String()[:6],
		"Seeded Paper", "A. Author", "Aerodynamics", "oral",
		"/files/"+uuid.New().String()+"/abstract.pdf", "abstract.pdf", time.Now())
	if err != nil {
		tb.Fatalf("build paper: %v", err)
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed paper: %v", err)
	}
	return p
}

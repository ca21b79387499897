package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos/testutil"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/ctxutil"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(gdb, log)
	tokenRepo := repos.NewUserTokenRepo(gdb, log)
	paperRepo := repos.NewPaperRepo(gdb, log)
	idSvc := NewIDService(log, userRepo, paperRepo)
	return NewAuthService(gdb, log, userRepo, tokenRepo, idSvc, "test-secret", 15*time.Minute, 24*time.Hour)
}

func TestRegisterLoginRefreshLogout(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	email := "flow-" + uuid.New().String()[:8] + "@example.org"

	user, err := svc.RegisterUser(ctx, RegisterRequest{
		Email:       email,
		Password:    "correct-horse",
		FirstName:   "Ada",
		LastName:    "Author",
		Affiliation: "IIT Kharagpur",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.HasPrefix(user.AccountID, "ACC-") {
		t.Fatalf("unexpected account id %q", user.AccountID)
	}

	if _, err := svc.RegisterUser(ctx, RegisterRequest{
		Email: email, Password: "correct-horse", FirstName: "Ada", LastName: "Dup",
	}); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Fatalf("duplicate email should fail validation, got %v", err)
	}

	if _, _, err := svc.LoginUser(ctx, email, "wrong-password"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("wrong password should be unauthorized, got %v", err)
	}

	access, refresh, err := svc.LoginUser(ctx, email, "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected token pair, got %q / %q", access, refresh)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	rd := ctxutil.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("expected request data for %s, got %+v", user.ID, rd)
	}
	if rd.IsAdmin {
		t.Fatalf("fresh registration must not be admin")
	}
	if rd.Email != email {
		t.Fatalf("expected email claim %q, got %q", email, rd.Email)
	}

	rd.RefreshToken = refresh
	newAccess, newRefresh, err := svc.RefreshUser(ctxutil.WithRequestData(ctx, rd))
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token was not rotated")
	}

	// The old refresh token is dead after rotation.
	rd.RefreshToken = refresh
	if _, _, err := svc.RefreshUser(ctxutil.WithRequestData(ctx, rd)); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("stale refresh token should be unauthorized, got %v", err)
	}

	authedCtx, err = svc.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("set context from rotated token: %v", err)
	}
	if err := svc.LogoutUser(authedCtx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	rd = ctxutil.GetRequestData(authedCtx)
	rd.RefreshToken = newRefresh
	if _, _, err := svc.RefreshUser(ctxutil.WithRequestData(ctx, rd)); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("refresh after logout should be unauthorized, got %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.SetContextFromToken(ctx, "not-a-jwt"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, ""); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"gorm.io/gorm"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

// IDService mints the user-facing identifiers: the account ID shown on a
// user's profile and the conference paper ID printed on correspondence. Both
// are generated with a collision-checked retry loop; the paper ID carries no
// uniqueness constraint in the schema, so the check there is best effort.
type IDService interface {
	GenerateAccountID(ctx context.Context, tx *gorm.DB) (string, error)
	GeneratePaperID(ctx context.Context, tx *gorm.DB, year int) (string, error)
}

type idService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	paperRepo repos.PaperRepo
}

func NewIDService(log *logger.Logger, userRepo repos.UserRepo, paperRepo repos.PaperRepo) IDService {
	return &idService{
		log:       log.With("service", "IDService"),
		userRepo:  userRepo,
		paperRepo: paperRepo,
	}
}

const idGenMaxAttempts = 8

func (is *idService) GenerateAccountID(ctx context.Context, tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < idGenMaxAttempts; attempt++ {
		candidate, err := randomDigits("ACC-", 8)
		if err != nil {
			return "", fmt.Errorf("generate account id: %w", err)
		}
		exists, err := is.userRepo.AccountIDExists(ctx, tx, candidate)
		if err != nil {
			return "", fmt.Errorf("check account id collision: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		is.log.Warn("account id collision, retrying", "attempt", attempt+1)
	}
	return "", fmt.Errorf("exhausted account id generation attempts")
}

func (is *idService) GeneratePaperID(ctx context.Context, tx *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("ICTACEM-%d-", year)
	for attempt := 0; attempt < idGenMaxAttempts; attempt++ {
		candidate, err := randomDigits(prefix, 5)
		if err != nil {
			return "", fmt.Errorf("generate paper id: %w", err)
		}
		exists, err := is.paperRepo.IctacemIDExists(ctx, tx, candidate)
		if err != nil {
			return "", fmt.Errorf("check paper id collision: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		is.log.Warn("paper id collision, retrying", "attempt", attempt+1)
	}
	return "", fmt.Errorf("exhausted paper id generation attempts")
}

func randomDigits(prefix string, n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return prefix + string(digits), nil
}

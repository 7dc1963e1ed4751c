package directory

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GormActorVerifier implements ActorVerifier against the users table.
// Passwords are compared against stored bcrypt hashes.
type GormActorVerifier struct {
	db *gorm.DB
}

// NewGormActorVerifier creates a new GORM actor verifier.
func NewGormActorVerifier(db *gorm.DB) *GormActorVerifier {
	return &GormActorVerifier{db: db}
}

// Verify checks the actor's password. An unknown user reports not-found; a
// known user with a wrong password reports unauthorized.
func (v *GormActorVerifier) Verify(ctx context.Context, userID kernel.UUID, password string) (ports.Actor, error) {
	if err := userID.Validate(); err != nil {
		return ports.Actor{}, err
	}
	if password == "" {
		return ports.Actor{}, errs.NewValueIsRequiredError("password")
	}

	var dto UserDTO
	if err := v.db.WithContext(ctx).First(&dto, "id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Actor{}, errs.NewObjectNotFoundError("userId", userID.String())
		}
		return ports.Actor{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dto.PasswordHash), []byte(password)); err != nil {
		return ports.Actor{}, errs.NewUnauthorizedError(userID.String())
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Actor{}, err
	}

	return ports.Actor{ID: id, Name: dto.Name}, nil
}

// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"booktrader/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create an account.
type SignupInput struct {
	Name     string `json:"name" mapstructure:"name" validate:"required"`
	Email    string `json:"email" mapstructure:"email" validate:"required,email"`
	Location string `json:"location" mapstructure:"location"`
	Password string `json:"password" mapstructure:"password" validate:"required,min=6"`
}

// LoginInput defines the data required to log in with credentials.
type LoginInput struct {
	Email    string `json:"email" mapstructure:"email" validate:"required,email"`
	Password string `json:"password" mapstructure:"password" validate:"required"`
}

// UpdateLocalUserInput carries the replacement session for the local
// session-mutation operation. Logout=true discards the session instead.
type UpdateLocalUserInput struct {
	ID        int64  `json:"id" mapstructure:"id"`
	Name      string `json:"name" mapstructure:"name"`
	Email     string `json:"email" mapstructure:"email"`
	Location  string `json:"location" mapstructure:"location"`
	AuthToken string `json:"authToken" mapstructure:"authToken"`
	Logout    bool   `json:"logout" mapstructure:"logout"`
}

// UpdateDetailInput updates one profile field of the authenticated user.
type UpdateDetailInput struct {
	Key   string `json:"key" mapstructure:"key" validate:"required,oneof=name loc pw"`
	Value string `json:"value" mapstructure:"value" validate:"required"`
}

// SessionUsecase defines the session-related business operations. This is
// the contract the delivery layer depends on.
type SessionUsecase interface {
	// LocalUser resolves the persisted session, revalidating its token
	// remotely. It never fails: any failure along the way yields nil,
	// meaning "not signed in".
	LocalUser(ctx context.Context) *entity.Session

	Signup(ctx context.Context, input SignupInput) (*entity.Session, error)
	Login(ctx context.Context, input LoginInput) (*entity.Session, error)

	// UpdateLocalUser replaces or discards the local session. Persistence
	// failures are swallowed; the operation always succeeds.
	UpdateLocalUser(ctx context.Context, input UpdateLocalUserInput) error

	UpdateDetail(ctx context.Context, input UpdateDetailInput) error
}

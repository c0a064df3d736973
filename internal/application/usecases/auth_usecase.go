package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/auth"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
)

// LoginInput é o corpo de POST /auth/login
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session é a sessão emitida no login
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  *entity.Identity
}

// AuthUseCase emite, valida e revoga sessões
type AuthUseCase struct {
	authenticator auth.Authenticator
	tokens        *auth.TokenManager
	revocations   repository.RevocationStore
	log           logger.Logger
}

func NewAuthUseCase(authenticator auth.Authenticator, tokens *auth.TokenManager, revocations repository.RevocationStore, log logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		authenticator: authenticator,
		tokens:        tokens,
		revocations:   revocations,
		log:           log,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	identity, err := uc.authenticator.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		uc.log.Warn("Login recusado", logger.String("email", in.Email), logger.Error(err))
		return nil, err
	}
	if !entity.ValidRole(identity.Role) {
		return nil, fmt.Errorf("%w: rol %q", errs.ErrForbidden, identity.Role)
	}

	token, expiresAt, err := uc.tokens.Issue(*identity)
	if err != nil {
		return nil, err
	}
	uc.log.Info("Login", logger.String("user_id", identity.UserID), logger.String("role", identity.Role))
	return &Session{Token: token, ExpiresAt: expiresAt, Identity: identity}, nil
}

// Authenticate valida o token do cookie e recusa sessões revogadas
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, errs.ErrUnauthorized
	}
	identity, _, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.revocations.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: sesión cerrada", errs.ErrUnauthorized)
	}
	return identity, nil
}

// Logout revoga o token até a sua expiração; token inválido não é erro
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	identity, expiresAt, err := uc.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := uc.revocations.Revoke(ctx, identity.TokenID, expiresAt); err != nil {
		return err
	}
	uc.log.Info("Logout", logger.String("user_id", identity.UserID))
	return nil
}

// SessionTTL é a duração do cookie de sessão
func (uc *AuthUseCase) SessionTTL() time.Duration {
	return uc.tokens.TTL()
}

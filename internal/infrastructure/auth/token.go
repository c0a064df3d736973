package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "encuestas-dashboard-api"

// SessionClaims são as claims do cookie de sessão
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager emite e valida os tokens de sessão. A expiração é fixa: não há renovação.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL devolve a duração das sessões emitidas
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue assina um token para a identidade; o jti permite revogar a sessão no logout
func (m *TokenManager) Issue(identity entity.Identity) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := SessionClaims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UserID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("erro ao assinar token de sessão: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse valida assinatura, emissor e expiração e devolve a identidade do token
func (m *TokenManager) Parse(token string) (*entity.Identity, time.Time, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, time.Time{}, fmt.Errorf("%w: sesión expirada", errs.ErrUnauthorized)
		}
		return nil, time.Time{}, fmt.Errorf("%w: token inválido", errs.ErrUnauthorized)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, time.Time{}, fmt.Errorf("%w: token incompleto", errs.ErrUnauthorized)
	}

	return &entity.Identity{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    claims.Role,
		TokenID: claims.ID,
	}, claims.ExpiresAt.Time, nil
}

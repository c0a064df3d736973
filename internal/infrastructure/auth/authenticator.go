package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
)

// Authenticator verifica credenciais e devolve a identidade do usuário
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.Identity, error)
}

// LocalAuthenticator valida a senha contra o hash bcrypt da tabela users
type LocalAuthenticator struct {
	users repositories.IUserRepository
}

func NewLocalAuthenticator(users repositories.IUserRepository) *LocalAuthenticator {
	return &LocalAuthenticator{users: users}
}

func (a *LocalAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" || !CheckPassword(user.PasswordHash, password) {
		return nil, errs.ErrInvalidCredentials
	}

	return &entity.Identity{
		UserID: strconv.FormatInt(user.ID, 10),
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}

// passwordSignIn é o trecho do cliente GoTrue usado no login
type passwordSignIn interface {
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
}

// SupabaseAuthenticator delega a verificação de senha ao GoTrue do Supabase.
// O papel vem de app_metadata.role; sem ele o usuário entra como analista.
type SupabaseAuthenticator struct {
	client passwordSignIn
}

func NewSupabaseAuthenticator(url, key string) (*SupabaseAuthenticator, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente supabase: %w", err)
	}
	return &SupabaseAuthenticator{client: client.Auth}, nil
}

func (a *SupabaseAuthenticator) Authenticate(_ context.Context, email, password string) (*entity.Identity, error) {
	resp, err := a.client.SignInWithEmailPassword(strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidCredentials, err)
	}
	return identityFromSupabase(resp.User), nil
}

func identityFromSupabase(user types.User) *entity.Identity {
	role := entity.RoleAnalyst
	if r, ok := user.AppMetadata["role"].(string); ok && entity.ValidRole(r) {
		role = r
	}

	name, _ := user.UserMetadata["name"].(string)
	return &entity.Identity{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   name,
		Role:   role,
	}
}

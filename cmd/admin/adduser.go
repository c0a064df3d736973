package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/auth"
	"github.com/spf13/cobra"
)

func addUserCommand() *cobra.Command {
	var email, name, password, role string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Cria um usuário local com senha bcrypt",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := newUser(email, name, password, role)
			if err != nil {
				return err
			}

			e, cleanup, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := repositories.NewUserRepository(e.db).Create(cmd.Context(), user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (id %d, rol %s)\n", user.Email, user.ID, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "correo del usuario")
	cmd.Flags().StringVar(&name, "name", "", "nombre")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")
	cmd.Flags().StringVar(&role, "role", entity.RoleAnalyst, "admin o analista")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUser(email, name, password, role string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("correo inválido: %q", email)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("la contraseña debe tener al menos 8 caracteres")
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("rol inválido: %q", role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entities.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entity"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
)

// IncidentInput é o corpo de POST /incidents
type IncidentInput struct {
	Description string `json:"description" validate:"required,max=2000"`
}

type IncidentUseCase struct {
	repo repositories.IIncidentRepository
}

func NewIncidentUseCase(repo repositories.IIncidentRepository) *IncidentUseCase {
	return &IncidentUseCase{repo: repo}
}

func (uc *IncidentUseCase) List(ctx context.Context, params repositories.IncidentListParams) ([]entities.Incident, int64, error) {
	if params.From != nil && params.To != nil && !params.To.After(*params.From) {
		return nil, 0, errs.NewValidation("to", "la fecha final debe ser posterior a la inicial")
	}
	return uc.repo.List(ctx, params)
}

// Create registra a incidencia em nome do usuário autenticado
func (uc *IncidentUseCase) Create(ctx context.Context, in IncidentInput, by *entity.Identity) (*entities.Incident, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	incident := &entities.Incident{
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if by != nil {
		incident.CreatedBy = by.Email
	}
	if err := uc.repo.Create(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

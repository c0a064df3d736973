package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

// IncidentListParams filtra a listagem por período de criação; To é exclusivo
type IncidentListParams struct {
	Page  int
	Limit int
	From  *time.Time
	To    *time.Time
}

type IIncidentRepository interface {
	List(ctx context.Context, params IncidentListParams) ([]entities.Incident, int64, error)
	Create(ctx context.Context, incident *entities.Incident) error
}

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// List retorna as incidencias mais recentes primeiro
func (r *IncidentRepository) List(ctx context.Context, params IncidentListParams) ([]entities.Incident, int64, error) {
	var incidents []entities.Incident
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Incident{})
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at < ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar incidencias: %w", err)
	}

	page, limit := normalizePaging(params.Page, params.Limit)
	err := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&incidents).Error
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar incidencias: %w", err)
	}

	limaLocation := utils.GetLimaLocation()
	for i := range incidents {
		incidents[i].CreatedAt = incidents[i].CreatedAt.In(limaLocation)
	}
	return incidents, total, nil
}

func (r *IncidentRepository) Create(ctx context.Context, incident *entities.Incident) error {
	if err := r.db.WithContext(ctx).Create(incident).Error; err != nil {
		return fmt.Errorf("erro ao registrar incidencia: %w", err)
	}
	return nil
}

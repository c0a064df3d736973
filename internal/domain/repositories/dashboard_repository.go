package repositories

import (
	"context"
	"fmt"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"gorm.io/gorm"
)

// RollupLevel é a unidade de agrupamento dos rollups
type RollupLevel string

const (
	RollupRegion     RollupLevel = "region"
	RollupSubRegion  RollupLevel = "subregion"
	RollupSchool     RollupLevel = "school"
	RollupManagement RollupLevel = "management"
)

// RollupScope restringe os rollups; campos nulos não filtram
type RollupScope struct {
	SurveyID    *int64
	RegionID    *int64
	SubRegionID *int64
}

type IDashboardRepository interface {
	CountSchoolsByManagement(ctx context.Context) ([]entities.ManagementCount, error)
	CountDistinctSubRegions(ctx context.Context) (int64, error)
	CountDistinctRegions(ctx context.Context) (int64, error)
	CountParticipationsByManagement(ctx context.Context, scope RollupScope) ([]entities.ManagementCount, error)
	Rollup(ctx context.Context, level RollupLevel, scope RollupScope) ([]entities.ManagementCount, error)
}

// DashboardRepository implementa as contagens dos cards e rollups
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountSchoolsByManagement conta escolas por texto de gestão
func (r *DashboardRepository) CountSchoolsByManagement(ctx context.Context) ([]entities.ManagementCount, error) {
	var rows []entities.ManagementCount
	err := r.db.WithContext(ctx).
		Table("schools").
		Select("COALESCE(management, '') AS management, COUNT(*) AS count").
		Group("management").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao contar escolas: %w", err)
	}
	return rows, nil
}

// CountDistinctSubRegions conta UGELs com ao menos uma escola
func (r *DashboardRepository) CountDistinctSubRegions(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("schools").
		Distinct("subregion_id").
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("erro ao contar UGELs: %w", err)
	}
	return total, nil
}

// CountDistinctRegions conta DREs com ao menos uma UGEL
func (r *DashboardRepository) CountDistinctRegions(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("subregions").
		Distinct("region_id").
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("erro ao contar DREs: %w", err)
	}
	return total, nil
}

// participationsBase junta participações completas com a hierarquia da escola
func (r *DashboardRepository) participationsBase(ctx context.Context, scope RollupScope) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("survey_participations p").
		Joins("JOIN schools s ON s.id = p.school_id").
		Joins("JOIN subregions sr ON sr.id = s.subregion_id").
		Joins("JOIN regions r ON r.id = sr.region_id").
		Where("p.completed_at IS NOT NULL")

	if scope.SurveyID != nil {
		query = query.Where("p.survey_id = ?", *scope.SurveyID)
	}
	if scope.RegionID != nil {
		query = query.Where("r.id = ?", *scope.RegionID)
	}
	if scope.SubRegionID != nil {
		query = query.Where("sr.id = ?", *scope.SubRegionID)
	}
	return query
}

// CountParticipationsByManagement conta participações completas por gestão da escola
func (r *DashboardRepository) CountParticipationsByManagement(ctx context.Context, scope RollupScope) ([]entities.ManagementCount, error) {
	var rows []entities.ManagementCount
	err := r.participationsBase(ctx, scope).
		Select("COALESCE(s.management, '') AS management, COUNT(p.id) AS count").
		Group("s.management").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao contar participações: %w", err)
	}
	return rows, nil
}

var rollupKeys = map[RollupLevel]struct {
	id   string
	name string
}{
	RollupRegion:    {id: "r.id", name: "r.name"},
	RollupSubRegion: {id: "sr.id", name: "sr.name"},
	RollupSchool:    {id: "s.id", name: "s.name"},
}

// Rollup conta participações completas por unidade e gestão, ordenadas por nome
func (r *DashboardRepository) Rollup(ctx context.Context, level RollupLevel, scope RollupScope) ([]entities.ManagementCount, error) {
	if level == RollupManagement {
		return r.CountParticipationsByManagement(ctx, scope)
	}

	key, ok := rollupKeys[level]
	if !ok {
		return nil, fmt.Errorf("nível de rollup desconhecido: %s", level)
	}

	var rows []entities.ManagementCount
	err := r.participationsBase(ctx, scope).
		Select(fmt.Sprintf("%s AS key_id, %s AS key_name, COALESCE(s.management, '') AS management, COUNT(p.id) AS count", key.id, key.name)).
		Group(fmt.Sprintf("%s, %s, s.management", key.id, key.name)).
		Order(fmt.Sprintf("%s ASC, %s ASC", key.name, key.id)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular rollup por %s: %w", level, err)
	}
	return rows, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"gorm.io/gorm"
)

type IHierarchyRepository interface {
	ListRegions(ctx context.Context) ([]entities.Region, error)
	ListSubRegions(ctx context.Context, regionID int64) ([]entities.SubRegion, error)
	ListSchools(ctx context.Context, subRegionID int64) ([]entities.School, error)
	FindRegion(ctx context.Context, id int64) (*entities.Region, error)
	FindSubRegion(ctx context.Context, id int64) (*entities.SubRegion, error)
	FindSchoolPlacement(ctx context.Context, schoolID int64) (*entities.SchoolPlacement, error)
}

// HierarchyRepository lê DRE, UGEL e escolas
type HierarchyRepository struct {
	db *gorm.DB
}

func NewHierarchyRepository(db *gorm.DB) *HierarchyRepository {
	return &HierarchyRepository{db: db}
}

func (r *HierarchyRepository) ListRegions(ctx context.Context) ([]entities.Region, error) {
	var regions []entities.Region
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("erro ao buscar DREs: %w", err)
	}
	return regions, nil
}

func (r *HierarchyRepository) ListSubRegions(ctx context.Context, regionID int64) ([]entities.SubRegion, error) {
	var subRegions []entities.SubRegion
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("name ASC").
		Find(&subRegions).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar UGELs da DRE %d: %w", regionID, err)
	}
	return subRegions, nil
}

func (r *HierarchyRepository) ListSchools(ctx context.Context, subRegionID int64) ([]entities.School, error) {
	var schools []entities.School
	err := r.db.WithContext(ctx).
		Where("subregion_id = ?", subRegionID).
		Order("name ASC").
		Find(&schools).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar escolas da UGEL %d: %w", subRegionID, err)
	}
	return schools, nil
}

func (r *HierarchyRepository) FindRegion(ctx context.Context, id int64) (*entities.Region, error) {
	var region entities.Region
	if err := r.db.WithContext(ctx).First(&region, id).Error; err != nil {
		return nil, notFound(err, "DRE")
	}
	return &region, nil
}

func (r *HierarchyRepository) FindSubRegion(ctx context.Context, id int64) (*entities.SubRegion, error) {
	var subRegion entities.SubRegion
	if err := r.db.WithContext(ctx).First(&subRegion, id).Error; err != nil {
		return nil, notFound(err, "UGEL")
	}
	return &subRegion, nil
}

const schoolPlacementSQL = `
SELECT
  s.id AS school_id,
  s.name AS school_name,
  sr.id AS sub_region_id,
  sr.name AS sub_region_name,
  r.id AS region_id,
  r.name AS region_name
FROM schools s
JOIN subregions sr ON sr.id = s.subregion_id
JOIN regions r ON r.id = sr.region_id
WHERE s.id = ?`

// FindSchoolPlacement devolve a escola com os nomes da UGEL e DRE
func (r *HierarchyRepository) FindSchoolPlacement(ctx context.Context, schoolID int64) (*entities.SchoolPlacement, error) {
	var rows []entities.SchoolPlacement
	if err := r.db.WithContext(ctx).Raw(schoolPlacementSQL, schoolID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("erro ao buscar escola %d: %w", schoolID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("escola %d: %w", schoolID, errs.ErrNotFound)
	}
	return &rows[0], nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, errs.ErrNotFound)
	}
	return fmt.Errorf("erro ao buscar %s: %w", what, err)
}

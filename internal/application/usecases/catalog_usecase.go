package usecases

import (
	"context"
	"fmt"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
)

// CatalogUseCase alimenta os seletores de DRE, UGEL e escola com cache em memória
type CatalogUseCase struct {
	hierarchy repositories.IHierarchyRepository
	cache     *cache.Cache
}

func NewCatalogUseCase(hierarchy repositories.IHierarchyRepository, c *cache.Cache) *CatalogUseCase {
	return &CatalogUseCase{hierarchy: hierarchy, cache: c}
}

func (uc *CatalogUseCase) Regions(ctx context.Context) ([]entities.Region, error) {
	return cache.Remember(uc.cache, catalogCachePrefix+"regions", func() ([]entities.Region, error) {
		return uc.hierarchy.ListRegions(ctx)
	})
}

func (uc *CatalogUseCase) SubRegions(ctx context.Context, regionID int64) ([]entities.SubRegion, error) {
	key := fmt.Sprintf("%ssubregions:%d", catalogCachePrefix, regionID)
	return cache.Remember(uc.cache, key, func() ([]entities.SubRegion, error) {
		return uc.hierarchy.ListSubRegions(ctx, regionID)
	})
}

func (uc *CatalogUseCase) Schools(ctx context.Context, subRegionID int64) ([]entities.School, error) {
	key := fmt.Sprintf("%sschools:%d", catalogCachePrefix, subRegionID)
	return cache.Remember(uc.cache, key, func() ([]entities.School, error) {
		return uc.hierarchy.ListSchools(ctx, subRegionID)
	})
}

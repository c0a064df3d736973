package usecases

import (
	"context"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/report"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"golang.org/x/sync/errgroup"
)

// DashboardUseCase calcula os cards de totais e os rollups por unidade
type DashboardUseCase struct {
	repo repositories.IDashboardRepository
}

func NewDashboardUseCase(repo repositories.IDashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Totals executa as quatro contagens em paralelo. Os splits de UGEL e DRE usam a
// aproximação distinta-1 porque essas tabelas não têm tipo de gestão.
func (uc *DashboardUseCase) Totals(ctx context.Context, scope repositories.RollupScope) (*entities.DashboardTotals, error) {
	var (
		schools        []entities.ManagementCount
		participations []entities.ManagementCount
		subRegions     int64
		regions        int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schools, err = uc.repo.CountSchoolsByManagement(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		subRegions, err = uc.repo.CountDistinctSubRegions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		regions, err = uc.repo.CountDistinctRegions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		participations, err = uc.repo.CountParticipationsByManagement(ctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entities.DashboardTotals{
		Schools:        report.SplitCounts(schools),
		SubRegions:     report.ApproximateDistinctSplit(subRegions),
		Regions:        report.ApproximateDistinctSplit(regions),
		Participations: report.SplitCounts(participations),
	}, nil
}

// Rollup devolve as linhas do nível pedido, ordenadas por nome
func (uc *DashboardUseCase) Rollup(ctx context.Context, level string, scope repositories.RollupScope) ([]entities.RollupRow, error) {
	l := repositories.RollupLevel(level)
	switch l {
	case repositories.RollupRegion, repositories.RollupSubRegion, repositories.RollupSchool, repositories.RollupManagement:
	default:
		return nil, errs.NewValidation("level", "nivel no soportado; use region, subregion, school o management")
	}

	rows, err := uc.repo.Rollup(ctx, l, scope)
	if err != nil {
		return nil, err
	}
	if l == repositories.RollupManagement {
		return report.RollupByManagement(rows), nil
	}
	return report.RollupByKey(rows), nil
}

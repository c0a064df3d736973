package usecases

import (
	"context"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
)

type fakeReportRepo struct {
	participations []int64
	catalog        []model.QuestionCatalogRow
	counts         []model.AnswerCountRow

	selectCalls  int
	catalogCalls int
	countCalls   int
	lastFilter   model.ReportFilter
}

func (f *fakeReportRepo) SelectParticipations(_ context.Context, filter model.ReportFilter) ([]int64, error) {
	f.selectCalls++
	f.lastFilter = filter
	return f.participations, nil
}

func (f *fakeReportRepo) GetQuestionCatalog(_ context.Context, _ int64) ([]model.QuestionCatalogRow, error) {
	f.catalogCalls++
	return f.catalog, nil
}

func (f *fakeReportRepo) CountAnswers(_ context.Context, _ []int64) ([]model.AnswerCountRow, error) {
	f.countCalls++
	return f.counts, nil
}

type fakeHierarchyRepo struct {
	regions    map[int64]entities.Region
	subRegions map[int64]entities.SubRegion
	placements map[int64]entities.SchoolPlacement
	listCalls  int
}

func (f *fakeHierarchyRepo) ListRegions(_ context.Context) ([]entities.Region, error) {
	f.listCalls++
	out := []entities.Region{}
	for _, r := range f.regions {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeHierarchyRepo) ListSubRegions(_ context.Context, regionID int64) ([]entities.SubRegion, error) {
	f.listCalls++
	out := []entities.SubRegion{}
	for _, s := range f.subRegions {
		if s.RegionID == regionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeHierarchyRepo) ListSchools(_ context.Context, _ int64) ([]entities.School, error) {
	f.listCalls++
	return []entities.School{}, nil
}

func (f *fakeHierarchyRepo) FindRegion(_ context.Context, id int64) (*entities.Region, error) {
	r, ok := f.regions[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &r, nil
}

func (f *fakeHierarchyRepo) FindSubRegion(_ context.Context, id int64) (*entities.SubRegion, error) {
	s, ok := f.subRegions[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &s, nil
}

func (f *fakeHierarchyRepo) FindSchoolPlacement(_ context.Context, id int64) (*entities.SchoolPlacement, error) {
	p, ok := f.placements[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

type fakeSurveyRepo struct {
	surveys map[int64]*entities.Survey
	created *entities.Survey
	updated *entities.Survey
	deleted int64
	err     error
}

func (f *fakeSurveyRepo) List(_ context.Context, _ repositories.SurveyListParams) ([]entities.Survey, int64, error) {
	out := []entities.Survey{}
	for _, s := range f.surveys {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSurveyRepo) FindByID(_ context.Context, id int64, _ bool) (*entities.Survey, error) {
	s, ok := f.surveys[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return s, nil
}

func (f *fakeSurveyRepo) Create(_ context.Context, survey *entities.Survey) error {
	if f.err != nil {
		return f.err
	}
	survey.ID = int64(len(f.surveys) + 1)
	f.created = survey
	f.surveys[survey.ID] = survey
	return nil
}

func (f *fakeSurveyRepo) Update(_ context.Context, survey *entities.Survey) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.surveys[survey.ID]; !ok {
		return errs.ErrNotFound
	}
	f.updated = survey
	f.surveys[survey.ID] = survey
	return nil
}

func (f *fakeSurveyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.surveys[id]; !ok {
		return errs.ErrNotFound
	}
	f.deleted = id
	delete(f.surveys, id)
	return nil
}

type fakeRosterRepo struct {
	entries []entities.RosterEntry
	skipped []entities.ImportRowError
	err     error
	batches []entities.ImportBatch
}

func (f *fakeRosterRepo) UpsertRoster(_ context.Context, entries []entities.RosterEntry) (int, []entities.ImportRowError, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	f.entries = entries
	return len(entries) - len(f.skipped), f.skipped, nil
}

func (f *fakeRosterRepo) SaveBatch(_ context.Context, batch *entities.ImportBatch) error {
	f.batches = append(f.batches, *batch)
	return nil
}

func (f *fakeRosterRepo) ListBatches(_ context.Context, _, _ int) ([]entities.ImportBatch, int64, error) {
	return f.batches, int64(len(f.batches)), nil
}

type fakeDashboardRepo struct {
	schools        []entities.ManagementCount
	participations []entities.ManagementCount
	rollup         []entities.ManagementCount
	subRegions     int64
	regions        int64
	err            error
	lastLevel      repositories.RollupLevel
}

func (f *fakeDashboardRepo) CountSchoolsByManagement(_ context.Context) ([]entities.ManagementCount, error) {
	return f.schools, f.err
}

func (f *fakeDashboardRepo) CountDistinctSubRegions(_ context.Context) (int64, error) {
	return f.subRegions, nil
}

func (f *fakeDashboardRepo) CountDistinctRegions(_ context.Context) (int64, error) {
	return f.regions, nil
}

func (f *fakeDashboardRepo) CountParticipationsByManagement(_ context.Context, _ repositories.RollupScope) ([]entities.ManagementCount, error) {
	return f.participations, nil
}

func (f *fakeDashboardRepo) Rollup(_ context.Context, level repositories.RollupLevel, _ repositories.RollupScope) ([]entities.ManagementCount, error) {
	f.lastLevel = level
	return f.rollup, f.err
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

package repositories

import (
	"context"
	"fmt"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type IReportRepository interface {
	SelectParticipations(ctx context.Context, f model.ReportFilter) ([]int64, error)
	GetQuestionCatalog(ctx context.Context, surveyID int64) ([]model.QuestionCatalogRow, error)
	CountAnswers(ctx context.Context, participationIDs []int64) ([]model.AnswerCountRow, error)
}

// ReportRepository implementa as consultas do pipeline de relatórios
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// participationQuery monta a seleção de participações completas; cada filtro presente só
// acrescenta um predicado de igualdade
func participationQuery(db *gorm.DB, f model.ReportFilter) *gorm.DB {
	query := db.Model(&entities.SurveyParticipation{}).
		Where("survey_id = ?", f.SurveyID).
		Where("completed_at IS NOT NULL")

	if f.RegionID != nil {
		query = query.Where("region_id = ?", *f.RegionID)
	}
	if f.SubRegionID != nil {
		query = query.Where("subregion_id = ?", *f.SubRegionID)
	}
	if f.SchoolID != nil {
		query = query.Where("school_id = ?", *f.SchoolID)
	}
	if f.EducationLevel != nil {
		query = query.Where("education_level = ?", *f.EducationLevel)
	}
	if f.Grade != nil {
		query = query.Where("grade = ?", *f.Grade)
	}
	return query
}

// SelectParticipations devolve os ids das participações completas que casam com o filtro
func (r *ReportRepository) SelectParticipations(ctx context.Context, f model.ReportFilter) ([]int64, error) {
	var ids []int64
	if err := participationQuery(r.db.WithContext(ctx), f).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("erro ao selecionar participações: %w", err)
	}
	return ids, nil
}

const questionCatalogSQL = `
SELECT
  q.id AS question_id,
  q.order_index,
  q.prefix,
  q.text AS question_text,
  o.id AS option_id,
  o.text AS option_text
FROM questions q
LEFT JOIN options o ON o.question_id = q.id
WHERE q.survey_id = ?
ORDER BY q.order_index ASC, q.id ASC, o.id ASC`

// GetQuestionCatalog devolve perguntas e opções da encuesta na ordem de exibição
func (r *ReportRepository) GetQuestionCatalog(ctx context.Context, surveyID int64) ([]model.QuestionCatalogRow, error) {
	var rows []model.QuestionCatalogRow
	if err := r.db.WithContext(ctx).Raw(questionCatalogSQL, surveyID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("erro ao buscar perguntas da encuesta %d: %w", surveyID, err)
	}
	return rows, nil
}

const answerCountSQL = `
SELECT
  a.question_id,
  a.option_id,
  COUNT(*) AS count
FROM answers a
WHERE a.participation_id = ANY(?)
GROUP BY a.question_id, a.option_id`

// CountAnswers conta respostas por (pergunta, opção) das participações informadas
func (r *ReportRepository) CountAnswers(ctx context.Context, participationIDs []int64) ([]model.AnswerCountRow, error) {
	if len(participationIDs) == 0 {
		return []model.AnswerCountRow{}, nil
	}

	var rows []model.AnswerCountRow
	if err := r.db.WithContext(ctx).Raw(answerCountSQL, pq.Array(participationIDs)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("erro ao contar respostas: %w", err)
	}
	return rows, nil
}

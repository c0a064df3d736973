package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

// SurveyListParams são os filtros e a paginação da listagem de encuestas
type SurveyListParams struct {
	Page          int
	Limit         int
	SortBy        string
	SortDirection string
	Active        *bool
}

type ISurveyRepository interface {
	List(ctx context.Context, params SurveyListParams) ([]entities.Survey, int64, error)
	FindByID(ctx context.Context, id int64, withQuestions bool) (*entities.Survey, error)
	Create(ctx context.Context, survey *entities.Survey) error
	Update(ctx context.Context, survey *entities.Survey) error
	Delete(ctx context.Context, id int64) error
}

// SurveyRepository implementa o CRUD de encuestas; escritas sempre em transação
type SurveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

var surveySortColumns = map[string]string{
	"created_at": "created_at",
	"title":      "title",
	"starts_at":  "starts_at",
	"ends_at":    "ends_at",
	"id":         "id",
}

// List retorna as encuestas paginadas
func (r *SurveyRepository) List(ctx context.Context, params SurveyListParams) ([]entities.Survey, int64, error) {
	var surveys []entities.Survey
	var total int64

	limaLocation := utils.GetLimaLocation()

	query := r.db.WithContext(ctx).Model(&entities.Survey{})
	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar encuestas: %w", err)
	}

	page, limit := normalizePaging(params.Page, params.Limit)

	sortBy, ok := surveySortColumns[params.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortDirection := "DESC"
	if strings.EqualFold(params.SortDirection, "asc") {
		sortDirection = "ASC"
	}

	err := query.
		Order(fmt.Sprintf("%s %s, id %s", sortBy, sortDirection, sortDirection)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&surveys).Error
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar encuestas: %w", err)
	}

	for i := range surveys {
		surveys[i].CreatedAt = surveys[i].CreatedAt.In(limaLocation)
		surveys[i].UpdatedAt = surveys[i].UpdatedAt.In(limaLocation)
	}

	return surveys, total, nil
}

// FindByID busca a encuesta; com withQuestions carrega perguntas por ordem e opções por id
func (r *SurveyRepository) FindByID(ctx context.Context, id int64, withQuestions bool) (*entities.Survey, error) {
	var survey entities.Survey

	query := r.db.WithContext(ctx)
	if withQuestions {
		query = query.
			Preload("Questions", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_index ASC, id ASC")
			}).
			Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			})
	}

	if err := query.First(&survey, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("encuesta %d: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("erro ao buscar encuesta %d: %w", id, err)
	}
	return &survey, nil
}

// Create grava encuesta, perguntas e opções em uma única transação
func (r *SurveyRepository) Create(ctx context.Context, survey *entities.Survey) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := survey.Questions
		survey.Questions = nil

		if err := tx.Create(survey).Error; err != nil {
			return errs.FromDB(err)
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].SurveyID = survey.ID
			options := questions[i].Options
			questions[i].Options = nil

			if err := tx.Create(&questions[i]).Error; err != nil {
				return errs.FromDB(err)
			}
			for j := range options {
				options[j].ID = 0
				options[j].QuestionID = questions[i].ID
				if err := tx.Create(&options[j]).Error; err != nil {
					return errs.FromDB(err)
				}
			}
			questions[i].Options = options
		}
		survey.Questions = questions

		return resolveNextQuestions(tx, survey.Questions)
	})
	if err != nil {
		return fmt.Errorf("erro ao criar encuesta: %w", err)
	}
	return nil
}

// Update aplica os dados da encuesta em transação: perguntas e opções com id são atualizadas,
// sem id são criadas e as ausentes são removidas, desde que não tenham respostas
func (r *SurveyRepository) Update(ctx context.Context, survey *entities.Survey) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.Survey
		if err := tx.Preload("Questions.Options").First(&current, survey.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("encuesta %d: %w", survey.ID, errs.ErrNotFound)
			}
			return err
		}

		err := tx.Model(&current).
			Select("title", "description", "starts_at", "ends_at", "active", "education_level").
			Updates(map[string]interface{}{
				"title":           survey.Title,
				"description":     survey.Description,
				"starts_at":       survey.StartsAt,
				"ends_at":         survey.EndsAt,
				"active":          survey.Active,
				"education_level": survey.EducationLevel,
			}).Error
		if err != nil {
			return errs.FromDB(err)
		}

		existingQuestions := make(map[int64]entities.Question, len(current.Questions))
		existingOptions := make(map[int64]int64)
		for _, q := range current.Questions {
			existingQuestions[q.ID] = q
			for _, o := range q.Options {
				existingOptions[o.ID] = q.ID
			}
		}

		keptQuestions := make(map[int64]bool)
		keptOptions := make(map[int64]bool)
		for _, q := range survey.Questions {
			if q.ID == 0 {
				continue
			}
			if _, ok := existingQuestions[q.ID]; !ok {
				return errs.NewValidation("questions", fmt.Sprintf("la pregunta %d no pertenece a la encuesta", q.ID))
			}
			keptQuestions[q.ID] = true
			for _, o := range q.Options {
				if o.ID == 0 {
					continue
				}
				if owner, ok := existingOptions[o.ID]; !ok || owner != q.ID {
					return errs.NewValidation("options", fmt.Sprintf("la opción %d no pertenece a la pregunta %d", o.ID, q.ID))
				}
				keptOptions[o.ID] = true
			}
		}

		var removedQuestions, removedOptions []int64
		for id, q := range existingQuestions {
			if !keptQuestions[id] {
				removedQuestions = append(removedQuestions, id)
				continue
			}
			for _, o := range q.Options {
				if !keptOptions[o.ID] {
					removedOptions = append(removedOptions, o.ID)
				}
			}
		}

		if err := ensureUnanswered(tx, removedQuestions, removedOptions); err != nil {
			return err
		}
		if len(removedOptions) > 0 {
			if err := tx.Where("id IN ?", removedOptions).Delete(&entities.Option{}).Error; err != nil {
				return err
			}
		}
		if len(removedQuestions) > 0 {
			if err := tx.Where("question_id IN ?", removedQuestions).Delete(&entities.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", removedQuestions).Delete(&entities.Question{}).Error; err != nil {
				return err
			}
		}

		// libera a ordem antes de reaplicar, para trocas de posição não violarem o índice único
		if err := tx.Exec("UPDATE questions SET order_index = -id WHERE survey_id = ?", survey.ID).Error; err != nil {
			return err
		}

		for i := range survey.Questions {
			q := &survey.Questions[i]
			q.SurveyID = survey.ID
			options := q.Options
			q.Options = nil

			if q.ID == 0 {
				if err := tx.Create(q).Error; err != nil {
					return errs.FromDB(err)
				}
			} else {
				err := tx.Model(&entities.Question{ID: q.ID}).Updates(map[string]interface{}{
					"order_index": q.OrderIndex,
					"prefix":      q.Prefix,
					"text":        q.Text,
				}).Error
				if err != nil {
					return errs.FromDB(err)
				}
			}

			for j := range options {
				o := &options[j]
				o.QuestionID = q.ID
				if o.ID == 0 {
					if err := tx.Create(o).Error; err != nil {
						return errs.FromDB(err)
					}
					continue
				}
				err := tx.Model(&entities.Option{ID: o.ID}).Updates(map[string]interface{}{
					"text":             o.Text,
					"next_question_id": o.NextQuestionID,
				}).Error
				if err != nil {
					return errs.FromDB(err)
				}
			}
			q.Options = options
		}

		return resolveNextQuestions(tx, survey.Questions)
	})
	if err != nil {
		return fmt.Errorf("erro ao atualizar encuesta %d: %w", survey.ID, err)
	}
	return nil
}

// Delete remove a encuesta e tudo o que depende dela
func (r *SurveyRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participations := tx.Model(&entities.SurveyParticipation{}).Select("id").Where("survey_id = ?", id)
		if err := tx.Where("participation_id IN (?)", participations).Delete(&entities.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&entities.SurveyParticipation{}).Error; err != nil {
			return err
		}

		questions := tx.Model(&entities.Question{}).Select("id").Where("survey_id = ?", id)
		if err := tx.Where("question_id IN (?)", questions).Delete(&entities.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&entities.Question{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entities.Survey{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("encuesta %d: %w", id, errs.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("erro ao excluir encuesta %d: %w", id, err)
	}
	return nil
}

// ensureUnanswered impede remover perguntas ou opções que já têm respostas
func ensureUnanswered(tx *gorm.DB, questionIDs, optionIDs []int64) error {
	if len(questionIDs) == 0 && len(optionIDs) == 0 {
		return nil
	}

	query := tx.Model(&entities.Answer{})
	switch {
	case len(questionIDs) > 0 && len(optionIDs) > 0:
		query = query.Where("question_id IN ? OR option_id IN ?", questionIDs, optionIDs)
	case len(questionIDs) > 0:
		query = query.Where("question_id IN ?", questionIDs)
	default:
		query = query.Where("option_id IN ?", optionIDs)
	}

	var answered int64
	if err := query.Count(&answered).Error; err != nil {
		return err
	}
	if answered > 0 {
		return fmt.Errorf("%w: hay respuestas registradas para las preguntas u opciones eliminadas", errs.ErrConflict)
	}
	return nil
}

// resolveNextQuestions converte NextQuestionOrder em NextQuestionID depois que as perguntas têm id
func resolveNextQuestions(tx *gorm.DB, questions []entities.Question) error {
	byOrder := make(map[int]int64, len(questions))
	for _, q := range questions {
		byOrder[q.OrderIndex] = q.ID
	}

	for i := range questions {
		for j := range questions[i].Options {
			o := &questions[i].Options[j]
			if o.NextQuestionOrder == nil {
				continue
			}
			target, ok := byOrder[*o.NextQuestionOrder]
			if !ok {
				return errs.NewValidation("next_question_order", fmt.Sprintf("no existe una pregunta con orden %d", *o.NextQuestionOrder))
			}
			o.NextQuestionID = &target
			if err := tx.Model(&entities.Option{ID: o.ID}).Update("next_question_id", target).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func normalizePaging(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

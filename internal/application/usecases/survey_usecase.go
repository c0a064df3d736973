package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
)

// OptionInput é uma opção no payload de criação/edição; sem id é criada
type OptionInput struct {
	ID                *int64 `json:"id"`
	Text              string `json:"text" validate:"required,max=500"`
	NextQuestionID    *int64 `json:"next_question_id"`
	NextQuestionOrder *int   `json:"next_question_order" validate:"omitempty,min=1"`
}

// QuestionInput é uma pergunta no payload; OrderIndex é único dentro da encuesta
type QuestionInput struct {
	ID         *int64        `json:"id"`
	OrderIndex int           `json:"order_index" validate:"required,min=1"`
	Prefix     string        `json:"prefix" validate:"max=200"`
	Text       string        `json:"text" validate:"required,max=1000"`
	Options    []OptionInput `json:"options" validate:"dive"`
}

// SurveyInput é o corpo de POST e PUT /surveys
type SurveyInput struct {
	Title          string          `json:"title" validate:"required,max=255"`
	Description    string          `json:"description" validate:"max=2000"`
	StartsAt       *time.Time      `json:"starts_at"`
	EndsAt         *time.Time      `json:"ends_at"`
	Active         bool            `json:"active"`
	EducationLevel string          `json:"education_level" validate:"max=50"`
	Questions      []QuestionInput `json:"questions" validate:"dive"`
}

// Validate aplica as tags e as regras entre campos
func (in SurveyInput) Validate() error {
	if err := utils.ValidateStruct(in); err != nil {
		return err
	}
	if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
		return errs.NewValidation("ends_at", "la fecha de fin no puede ser anterior a la fecha de inicio")
	}

	orders := make(map[int]bool, len(in.Questions))
	for i, q := range in.Questions {
		if orders[q.OrderIndex] {
			return errs.NewValidation(fmt.Sprintf("questions[%d].order_index", i), "orden repetido")
		}
		orders[q.OrderIndex] = true

		texts := make(map[string]bool, len(q.Options))
		for j, o := range q.Options {
			key := strings.ToLower(strings.TrimSpace(o.Text))
			if texts[key] {
				return errs.NewValidation(fmt.Sprintf("questions[%d].options[%d].text", i, j), "opción repetida")
			}
			texts[key] = true
		}
	}
	return nil
}

func (in SurveyInput) toEntity(id int64) *entities.Survey {
	survey := &entities.Survey{
		ID:             id,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		StartsAt:       in.StartsAt,
		EndsAt:         in.EndsAt,
		Active:         in.Active,
		EducationLevel: in.EducationLevel,
		Questions:      make([]entities.Question, 0, len(in.Questions)),
	}
	for _, q := range in.Questions {
		question := entities.Question{
			ID:         deref(q.ID),
			SurveyID:   id,
			OrderIndex: q.OrderIndex,
			Prefix:     q.Prefix,
			Text:       strings.TrimSpace(q.Text),
			Options:    make([]entities.Option, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, entities.Option{
				ID:                deref(o.ID),
				Text:              strings.TrimSpace(o.Text),
				NextQuestionID:    o.NextQuestionID,
				NextQuestionOrder: o.NextQuestionOrder,
			})
		}
		survey.Questions = append(survey.Questions, question)
	}
	return survey
}

func deref(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// SurveyUseCase implementa o CRUD de encuestas
type SurveyUseCase struct {
	surveyRepo repositories.ISurveyRepository
	cache      *cache.Cache
	log        logger.Logger
}

func NewSurveyUseCase(surveyRepo repositories.ISurveyRepository, c *cache.Cache, log logger.Logger) *SurveyUseCase {
	return &SurveyUseCase{
		surveyRepo: surveyRepo,
		cache:      c,
		log:        log,
	}
}

func (u *SurveyUseCase) List(ctx context.Context, params repositories.SurveyListParams) ([]entities.Survey, int64, error) {
	return u.surveyRepo.List(ctx, params)
}

func (u *SurveyUseCase) Get(ctx context.Context, id int64) (*entities.Survey, error) {
	return u.surveyRepo.FindByID(ctx, id, true)
}

// Create grava a encuesta completa e devolve o registro recarregado
func (u *SurveyUseCase) Create(ctx context.Context, in SurveyInput) (*entities.Survey, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	survey := in.toEntity(0)
	if err := u.surveyRepo.Create(ctx, survey); err != nil {
		return nil, err
	}
	u.log.Info("Encuesta criada", logger.Int64("survey_id", survey.ID), logger.Int("questions", len(survey.Questions)))
	return u.surveyRepo.FindByID(ctx, survey.ID, true)
}

// Update substitui os dados da encuesta; perguntas omitidas são removidas se não tiverem respostas
func (u *SurveyUseCase) Update(ctx context.Context, id int64, in SurveyInput) (*entities.Survey, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := u.surveyRepo.Update(ctx, in.toEntity(id)); err != nil {
		return nil, err
	}
	u.cache.Delete(questionCacheKey(id))
	u.log.Info("Encuesta atualizada", logger.Int64("survey_id", id))
	return u.surveyRepo.FindByID(ctx, id, true)
}

func (u *SurveyUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.surveyRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.cache.Delete(questionCacheKey(id))
	u.log.Info("Encuesta removida", logger.Int64("survey_id", id))
	return nil
}

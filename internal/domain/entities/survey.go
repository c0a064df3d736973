package entities

import (
	"time"
)

// Survey representa uma encuesta administrada nas escolas
type Survey struct {
	ID             int64      `json:"id" gorm:"primaryKey;column:id"`
	Title          string     `json:"title" gorm:"column:title;type:text;not null"`
	Description    string     `json:"description" gorm:"column:description;type:text"`
	StartsAt       *time.Time `json:"starts_at" gorm:"column:starts_at"`
	EndsAt         *time.Time `json:"ends_at" gorm:"column:ends_at"`
	Active         bool       `json:"active" gorm:"column:active;default:false"`
	EducationLevel string     `json:"education_level" gorm:"column:education_level;type:text"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at"`

	// Relações
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

func (Survey) TableName() string { return "surveys" }

// Question é uma pergunta da encuesta; OrderIndex define a ordem de exibição
type Question struct {
	ID         int64     `json:"id" gorm:"primaryKey;column:id"`
	SurveyID   int64     `json:"survey_id" gorm:"column:survey_id;not null;index"`
	OrderIndex int       `json:"order_index" gorm:"column:order_index;not null"`
	Prefix     string    `json:"prefix" gorm:"column:prefix;type:text"`
	Text       string    `json:"text" gorm:"column:text;type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`

	Options []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string { return "questions" }

// Option é uma alternativa de resposta. NextQuestionID só é usado pela interface
type Option struct {
	ID             int64  `json:"id" gorm:"primaryKey;column:id"`
	QuestionID     int64  `json:"question_id" gorm:"column:question_id;not null;index"`
	Text           string `json:"text" gorm:"column:text;type:text;not null"`
	NextQuestionID *int64 `json:"next_question_id" gorm:"column:next_question_id"`

	// NextQuestionOrder referencia a pergunta seguinte pela ordem, resolvida ao salvar
	NextQuestionOrder *int `json:"next_question_order,omitempty" gorm:"-"`
}

func (Option) TableName() string { return "options" }

package entities

import "time"

// SurveyParticipation é uma tentativa de um estudante; só conta quando CompletedAt não é nulo
type SurveyParticipation struct {
	ID             int64      `json:"id" gorm:"primaryKey;column:id"`
	SurveyID       int64      `json:"survey_id" gorm:"column:survey_id;not null"`
	SchoolID       int64      `json:"school_id" gorm:"column:school_id;not null"`
	RegionID       int64      `json:"region_id" gorm:"column:region_id"`
	SubRegionID    int64      `json:"subregion_id" gorm:"column:subregion_id"`
	EducationLevel string     `json:"education_level" gorm:"column:education_level;type:text"`
	Grade          string     `json:"grade" gorm:"column:grade;type:text"`
	Section        string     `json:"section" gorm:"column:section;type:text"`
	StartedAt      time.Time  `json:"started_at" gorm:"column:started_at"`
	CompletedAt    *time.Time `json:"completed_at" gorm:"column:completed_at"`

	Survey  Survey   `json:"-" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
	School  School   `json:"-" gorm:"foreignKey:SchoolID"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:ParticipationID;constraint:OnDelete:CASCADE"`
}

func (SurveyParticipation) TableName() string { return "survey_participations" }

// IsComplete indica se a participação entra nos relatórios
func (p SurveyParticipation) IsComplete() bool {
	return p.CompletedAt != nil
}

// Answer registra a opção escolhida para uma pergunta; OptionID pode ser nulo
type Answer struct {
	ID              int64  `json:"id" gorm:"primaryKey;column:id"`
	ParticipationID int64  `json:"participation_id" gorm:"column:participation_id;not null;index"`
	QuestionID      int64  `json:"question_id" gorm:"column:question_id;not null"`
	OptionID        *int64 `json:"option_id" gorm:"column:option_id"`

	Question Question `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	Option   *Option  `json:"-" gorm:"foreignKey:OptionID;constraint:OnDelete:SET NULL"`
}

func (Answer) TableName() string { return "answers" }

package entities

import "time"

// Incident é uma ocorrência registrada pela equipe
type Incident struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	Description string    `json:"description" gorm:"column:description;type:text;not null"`
	CreatedBy   string    `json:"created_by" gorm:"column:created_by;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;index"`
}

func (Incident) TableName() string { return "incidents" }

package entities

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ImportStatusCommitted = "committed"
	ImportStatusFailed    = "failed"
)

// ImportBatch guarda a auditoria de cada carga de nómina
type ImportBatch struct {
	ID         string         `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	Filename   string         `json:"filename" gorm:"column:filename;type:text"`
	UploadedBy string         `json:"uploaded_by" gorm:"column:uploaded_by;type:text"`
	Status     string         `json:"status" gorm:"column:status;type:text;not null"`
	TotalRows  int            `json:"total_rows" gorm:"column:total_rows"`
	Imported   int            `json:"imported" gorm:"column:imported"`
	Skipped    int            `json:"skipped" gorm:"column:skipped"`
	Failure    string         `json:"failure,omitempty" gorm:"column:failure;type:text"`
	Errors     datatypes.JSON `json:"errors" gorm:"column:errors;type:jsonb"`
	CreatedAt  time.Time      `json:"created_at" gorm:"column:created_at"`
}

func (ImportBatch) TableName() string { return "import_batches" }

// ImportRowError descreve uma linha ignorada na carga
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

package migrations

import (
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"

	"gorm.io/gorm"
)

// Migrate cria ou atualiza as tabelas; a ordem respeita as chaves estrangeiras
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Region{},
		&entities.SubRegion{},
		&entities.School{},
		&entities.RosterEntry{},
		&entities.Survey{},
		&entities.Question{},
		&entities.Option{},
		&entities.SurveyParticipation{},
		&entities.Answer{},
		&entities.User{},
		&entities.Incident{},
		&entities.ImportBatch{},
	)
}

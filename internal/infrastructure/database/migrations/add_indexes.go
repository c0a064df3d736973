package migrations

import (
	"gorm.io/gorm"
)

var indexStatements = []string{
	// Seleção de participações completas por filtro hierárquico
	`CREATE INDEX IF NOT EXISTS idx_participations_survey_completed ON survey_participations (survey_id, region_id, subregion_id, school_id) WHERE completed_at IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_participations_school ON survey_participations (school_id)`,
	// Agregação de respostas
	`CREATE INDEX IF NOT EXISTS idx_answers_participation_question ON answers (participation_id, question_id, option_id)`,
	`CREATE INDEX IF NOT EXISTS idx_answers_option ON answers (option_id)`,
	// Ordem de exibição
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_questions_survey_order ON questions (survey_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_options_question ON options (question_id, id)`,
	// Listagens
	`CREATE INDEX IF NOT EXISTS idx_incidents_created_at ON incidents (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_import_batches_created_at ON import_batches (created_at DESC)`,
}

// AddIndexes adiciona os índices usados pelos relatórios e listagens
func AddIndexes(db *gorm.DB) error {
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

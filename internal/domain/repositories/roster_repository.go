package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const rosterBatchSize = 500

type IRosterRepository interface {
	UpsertRoster(ctx context.Context, entries []entities.RosterEntry) (int, []entities.ImportRowError, error)
	SaveBatch(ctx context.Context, batch *entities.ImportBatch) error
	ListBatches(ctx context.Context, page, limit int) ([]entities.ImportBatch, int64, error)
}

// RosterRepository grava a nómina de estudantes e a auditoria das cargas
type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

type schoolCode struct {
	ID   int64
	Code string
}

// UpsertRoster grava as linhas em uma única transação. Linhas com escola desconhecida ou
// repetidas são ignoradas e devolvidas; qualquer erro de banco desfaz a carga inteira.
func (r *RosterRepository) UpsertRoster(ctx context.Context, entries []entities.RosterEntry) (int, []entities.ImportRowError, error) {
	var skipped []entities.ImportRowError
	imported := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		codes := make([]string, 0, len(entries))
		seenCode := make(map[string]bool)
		for _, e := range entries {
			if !seenCode[e.SchoolCode] {
				seenCode[e.SchoolCode] = true
				codes = append(codes, e.SchoolCode)
			}
		}

		schoolIDs := make(map[string]int64, len(codes))
		for start := 0; start < len(codes); start += rosterBatchSize {
			end := start + rosterBatchSize
			if end > len(codes) {
				end = len(codes)
			}
			var found []schoolCode
			if err := tx.Model(&entities.School{}).Select("id, code").Where("code IN ?", codes[start:end]).Scan(&found).Error; err != nil {
				return fmt.Errorf("erro ao resolver escolas: %w", err)
			}
			for _, s := range found {
				schoolIDs[s.Code] = s.ID
			}
		}

		type rosterKey struct {
			schoolID int64
			student  string
		}
		latest := make(map[rosterKey]int)
		valid := make([]entities.RosterEntry, 0, len(entries))
		for _, e := range entries {
			id, ok := schoolIDs[e.SchoolCode]
			if !ok {
				skipped = append(skipped, entities.ImportRowError{
					Row:   e.SourceRow,
					Error: fmt.Sprintf("institución educativa no encontrada: %s", e.SchoolCode),
				})
				continue
			}
			e.SchoolID = id
			key := rosterKey{schoolID: id, student: e.StudentCode}
			if prev, dup := latest[key]; dup {
				skipped = append(skipped, entities.ImportRowError{
					Row:   valid[prev].SourceRow,
					Error: fmt.Sprintf("estudiante %s repetido; se usa la fila %d", e.StudentCode, e.SourceRow),
				})
				valid[prev] = e
				continue
			}
			latest[key] = len(valid)
			valid = append(valid, e)
		}

		if len(valid) == 0 {
			return nil
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "school_id"}, {Name: "student_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_names", "last_names", "education_level", "grade", "section", "updated_at"}),
		}).CreateInBatches(&valid, rosterBatchSize).Error
		if err != nil {
			return fmt.Errorf("erro ao gravar nómina: %w", err)
		}
		imported = len(valid)
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	sort.SliceStable(skipped, func(i, j int) bool { return skipped[i].Row < skipped[j].Row })
	return imported, skipped, nil
}

// SaveBatch grava o registro de auditoria da carga
func (r *RosterRepository) SaveBatch(ctx context.Context, batch *entities.ImportBatch) error {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		return fmt.Errorf("erro ao registrar carga: %w", err)
	}
	return nil
}

// ListBatches retorna as cargas mais recentes primeiro
func (r *RosterRepository) ListBatches(ctx context.Context, page, limit int) ([]entities.ImportBatch, int64, error) {
	var batches []entities.ImportBatch
	var total int64

	if err := r.db.WithContext(ctx).Model(&entities.ImportBatch{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar cargas: %w", err)
	}

	page, limit = normalizePaging(page, limit)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&batches).Error
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar cargas: %w", err)
	}
	return batches, total, nil
}

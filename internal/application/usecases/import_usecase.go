package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/importer"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportSummary é a resposta de uma carga de nómina
type ImportSummary struct {
	BatchID   string                    `json:"batch_id"`
	Status    string                    `json:"status"`
	TotalRows int                       `json:"total_rows"`
	Imported  int                       `json:"imported"`
	Skipped   int                       `json:"skipped"`
	Errors    []entities.ImportRowError `json:"errors"`
}

// ImportUseCase processa cargas de nómina e registra a auditoria de cada uma
type ImportUseCase struct {
	roster  repositories.IRosterRepository
	cache   *cache.Cache
	metrics *metrics.Metrics
	log     logger.Logger
	maxRows int
}

func NewImportUseCase(roster repositories.IRosterRepository, c *cache.Cache, m *metrics.Metrics, log logger.Logger, maxRows int) *ImportUseCase {
	return &ImportUseCase{
		roster:  roster,
		cache:   c,
		metrics: m,
		log:     log,
		maxRows: maxRows,
	}
}

// Import lê o arquivo e grava as linhas válidas em uma transação. Linhas inválidas são
// ignoradas e listadas; um erro de banco desfaz a carga inteira e a registra como falha.
func (uc *ImportUseCase) Import(ctx context.Context, r io.Reader, filename, uploadedBy string) (*ImportSummary, error) {
	batch := &entities.ImportBatch{
		ID:         uuid.NewString(),
		Filename:   filename,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now(),
	}

	parsed, err := importer.Parse(r, filename, uc.maxRows)
	if err != nil {
		uc.fail(ctx, batch, err)
		return nil, err
	}
	batch.TotalRows = parsed.TotalRows

	imported, skipped, err := uc.roster.UpsertRoster(ctx, parsed.Entries)
	if err != nil {
		uc.fail(ctx, batch, err)
		return nil, err
	}

	rowErrors := append(append([]entities.ImportRowError{}, parsed.Errors...), skipped...)
	sort.SliceStable(rowErrors, func(i, j int) bool { return rowErrors[i].Row < rowErrors[j].Row })

	batch.Status = entities.ImportStatusCommitted
	batch.Imported = imported
	batch.Skipped = len(rowErrors)
	batch.Errors = encodeRowErrors(rowErrors)
	if err := uc.roster.SaveBatch(ctx, batch); err != nil {
		uc.log.Warn("Falha ao registrar auditoria da carga", logger.String("batch_id", batch.ID), logger.Error(err))
	}

	uc.cache.DeletePrefix(catalogCachePrefix)
	uc.metrics.ObserveImport(batch.Status, imported, batch.Skipped)
	uc.log.Info("Nómina importada",
		logger.String("batch_id", batch.ID),
		logger.String("filename", filename),
		logger.Int("imported", imported),
		logger.Int("skipped", batch.Skipped),
	)

	return &ImportSummary{
		BatchID:   batch.ID,
		Status:    batch.Status,
		TotalRows: batch.TotalRows,
		Imported:  imported,
		Skipped:   batch.Skipped,
		Errors:    rowErrors,
	}, nil
}

// Batches lista a auditoria das cargas
func (uc *ImportUseCase) Batches(ctx context.Context, page, limit int) ([]entities.ImportBatch, int64, error) {
	return uc.roster.ListBatches(ctx, page, limit)
}

func (uc *ImportUseCase) fail(ctx context.Context, batch *entities.ImportBatch, cause error) {
	batch.Status = entities.ImportStatusFailed
	batch.Failure = cause.Error()
	batch.Errors = encodeRowErrors(nil)

	var ve *errs.ValidationError
	if errors.As(cause, &ve) {
		uc.log.Warn("Carga rejeitada", logger.String("filename", batch.Filename), logger.Error(cause))
	} else {
		uc.log.Error("Falha ao importar nómina", logger.String("filename", batch.Filename), logger.Error(cause))
	}

	if err := uc.roster.SaveBatch(ctx, batch); err != nil {
		uc.log.Warn("Falha ao registrar auditoria da carga", logger.String("batch_id", batch.ID), logger.Error(err))
	}
	uc.metrics.ObserveImport(batch.Status, 0, 0)
}

func encodeRowErrors(rowErrors []entities.ImportRowError) datatypes.JSON {
	if rowErrors == nil {
		rowErrors = []entities.ImportRowError{}
	}
	raw, err := json.Marshal(rowErrors)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

package report

import (
	"strings"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
)

// ManagementType é a classificação pública/privada de uma escola
type ManagementType string

const (
	ManagementPublic  ManagementType = "public"
	ManagementPrivate ManagementType = "private"
)

// ClassifyManagement trata como privada toda gestão que contenha "privad", sem diferenciar
// maiúsculas ou acentos; qualquer outro texto, inclusive vazio, é pública
func ClassifyManagement(management string) ManagementType {
	if strings.Contains(utils.FoldText(management), "privad") {
		return ManagementPrivate
	}
	return ManagementPublic
}

// Add acumula uma contagem no split correto
func addToSplit(s *entities.ManagementSplit, management string, count int64) {
	s.Total += count
	if ClassifyManagement(management) == ManagementPrivate {
		s.PrivateCount += count
	} else {
		s.PublicCount += count
	}
}

// SplitCounts soma linhas (gestão, quantidade) em um único split
func SplitCounts(rows []entities.ManagementCount) entities.ManagementSplit {
	var s entities.ManagementSplit
	for _, row := range rows {
		addToSplit(&s, row.Management, row.Count)
	}
	return s
}

// RollupByKey agrupa as linhas por unidade mantendo a ordem em que chegam da consulta
func RollupByKey(rows []entities.ManagementCount) []entities.RollupRow {
	result := []entities.RollupRow{}
	index := make(map[int64]int)
	for _, row := range rows {
		i, ok := index[row.KeyID]
		if !ok {
			result = append(result, entities.RollupRow{ID: row.KeyID, Name: row.KeyName})
			i = len(result) - 1
			index[row.KeyID] = i
		}
		addToSplit(&result[i].ManagementSplit, row.Management, row.Count)
	}
	return result
}

// RollupByManagement devolve as duas linhas do split por tipo de gestão
func RollupByManagement(rows []entities.ManagementCount) []entities.RollupRow {
	s := SplitCounts(rows)
	return []entities.RollupRow{
		{Name: "Pública", ManagementSplit: entities.ManagementSplit{Total: s.PublicCount, PublicCount: s.PublicCount}},
		{Name: "Privada", ManagementSplit: entities.ManagementSplit{Total: s.PrivateCount, PrivateCount: s.PrivateCount}},
	}
}

// ApproximateDistinctSplit reproduz a regra herdada dos cards de UGEL e DRE: públicas é a
// contagem distinta menos 1 e o restante fica como privada. Não é uma regra de negócio validada.
func ApproximateDistinctSplit(distinct int64) entities.ManagementSplit {
	public := distinct - 1
	if public < 0 {
		public = 0
	}
	return entities.ManagementSplit{
		Total:        distinct,
		PublicCount:  public,
		PrivateCount: distinct - public,
	}
}

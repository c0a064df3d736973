package report

import (
	"fmt"
	"sort"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
)

// NoOptionLabel agrupa respostas sem opção vinculada
const NoOptionLabel = "Sin opción"

type questionMeta struct {
	id      int64
	order   int
	prefix  string
	text    string
	options map[int64]string
}

type questionCells struct {
	byOption map[int64]int64
	noOption int64
}

// Aggregate agrupa as contagens por pergunta e opção em uma única passada.
// Perguntas saem por OrderIndex crescente (empate por id); opções por id crescente, com a
// sentinela NoOptionLabel por último. Perguntas sem respostas continuam na saída com Options vazio.
func Aggregate(catalog []model.QuestionCatalogRow, counts []model.AnswerCountRow) []model.QuestionResult {
	metas := make(map[int64]*questionMeta)
	for _, row := range catalog {
		m, ok := metas[row.QuestionID]
		if !ok {
			m = &questionMeta{
				id:      row.QuestionID,
				order:   row.OrderIndex,
				prefix:  row.Prefix,
				text:    row.Text,
				options: make(map[int64]string),
			}
			metas[row.QuestionID] = m
		}
		if row.OptionID != nil {
			label := ""
			if row.OptionText != nil {
				label = *row.OptionText
			}
			m.options[*row.OptionID] = label
		}
	}

	cells := make(map[int64]*questionCells)
	for _, row := range counts {
		c, ok := cells[row.QuestionID]
		if !ok {
			c = &questionCells{byOption: make(map[int64]int64)}
			cells[row.QuestionID] = c
		}
		if row.OptionID == nil {
			c.noOption += row.Count
			continue
		}
		c.byOption[*row.OptionID] += row.Count
	}

	ordered := make([]*questionMeta, 0, len(metas))
	for _, m := range metas {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].order != ordered[j].order {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].id < ordered[j].id
	})

	// respostas de perguntas fora do catálogo vão para o fim, por id
	var orphans []*questionMeta
	for qid := range cells {
		if _, ok := metas[qid]; !ok {
			orphans = append(orphans, &questionMeta{
				id:      qid,
				text:    fmt.Sprintf("Pregunta #%d", qid),
				options: map[int64]string{},
			})
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].id < orphans[j].id })
	ordered = append(ordered, orphans...)

	results := make([]model.QuestionResult, 0, len(ordered))
	for _, m := range ordered {
		results = append(results, model.QuestionResult{
			QuestionID: m.id,
			OrderIndex: m.order,
			Prefix:     m.prefix,
			Text:       m.text,
			Options:    buildOptions(m, cells[m.id]),
		})
	}
	return results
}

func buildOptions(m *questionMeta, c *questionCells) []model.OptionCount {
	options := []model.OptionCount{}
	if c == nil {
		return options
	}

	ids := make([]int64, 0, len(c.byOption))
	for id, n := range c.byOption {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		label, ok := m.options[id]
		if !ok {
			label = fmt.Sprintf("Opción #%d", id)
		}
		optionID := id
		options = append(options, model.OptionCount{
			OptionID: &optionID,
			Label:    label,
			Count:    c.byOption[id],
		})
	}

	if c.noOption > 0 {
		options = append(options, model.OptionCount{
			Label: NoOptionLabel,
			Count: c.noOption,
		})
	}
	return options
}

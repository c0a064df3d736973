package report

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
)

// NoAnswersLabel é a linha inserida no documento quando a pergunta não tem respostas
const NoAnswersLabel = "Sin respuestas"

const (
	csvBOM       = "\ufeff"
	csvDelimiter = ";"
	csvLineEnd   = "\r\n"
)

// ChartSeries converte o relatório na série consumida pelos gráficos
func ChartSeries(r *model.AggregatedReport) []model.ChartSeries {
	series := []model.ChartSeries{}
	if r == nil {
		return series
	}
	for _, q := range r.Questions {
		points := make([]model.ChartPoint, 0, len(q.Options))
		for _, o := range q.Options {
			points = append(points, model.ChartPoint{Name: o.Label, Value: o.Count})
		}
		series = append(series, model.ChartSeries{
			QuestionID: q.QuestionID,
			Prefix:     q.Prefix,
			Question:   q.Text,
			Data:       points,
		})
	}
	return series
}

// DocumentRows achata o relatório em linhas (pergunta, opção, quantidade) para o PDF
func DocumentRows(r *model.AggregatedReport) []model.DocumentRow {
	rows := []model.DocumentRow{}
	if r == nil {
		return rows
	}
	for _, q := range r.Questions {
		if len(q.Options) == 0 {
			rows = append(rows, model.DocumentRow{
				QuestionID:   q.QuestionID,
				QuestionText: q.Text,
				OptionText:   NoAnswersLabel,
			})
			continue
		}
		for _, o := range q.Options {
			rows = append(rows, model.DocumentRow{
				QuestionID:   q.QuestionID,
				QuestionText: q.Text,
				OptionText:   o.Label,
				Count:        o.Count,
			})
		}
	}
	return rows
}

// PageRows recorta a página pedida; page começa em 1
func PageRows(rows []model.DocumentRow, page, limit int) []model.DocumentRow {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return []model.DocumentRow{}
	}
	start := (page - 1) * limit
	if start >= len(rows) {
		return []model.DocumentRow{}
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// CSVHeader devolve o cabeçalho de cada granularidade de exportação
func CSVHeader(g model.Granularity) []string {
	tail := []string{"Encuesta", "Pregunta", "Opción", "Cantidad"}
	switch g {
	case model.GranularityRegion:
		return append([]string{"DRE"}, tail...)
	case model.GranularitySubRegion:
		return append([]string{"DRE", "UGEL"}, tail...)
	case model.GranularitySchool:
		return append([]string{"DRE", "UGEL", "Institución educativa"}, tail...)
	default:
		return tail
	}
}

// CSVRowCount é o número de linhas de dados que WriteCSV geraria
func CSVRowCount(r *model.AggregatedReport) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, q := range r.Questions {
		n += len(q.Options)
	}
	return n
}

// WriteCSV escreve o relatório com BOM UTF-8, separador ";", textos sempre entre aspas e
// números sem aspas. Devolve o número de linhas de dados escritas.
func WriteCSV(w io.Writer, g model.Granularity, r *model.AggregatedReport) (int, error) {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(csvBOM); err != nil {
		return 0, err
	}

	header := CSVHeader(g)
	quotedHeader := make([]string, len(header))
	for i, h := range header {
		quotedHeader[i] = quote(h)
	}
	if _, err := bw.WriteString(strings.Join(quotedHeader, csvDelimiter) + csvLineEnd); err != nil {
		return 0, err
	}

	lead := leadingColumns(g, r)
	written := 0
	for _, q := range r.Questions {
		for _, o := range q.Options {
			fields := make([]string, 0, len(lead)+4)
			for _, col := range lead {
				fields = append(fields, quote(col))
			}
			fields = append(fields,
				quote(r.Context.SurveyTitle),
				quote(q.Text),
				quote(o.Label),
				strconv.FormatInt(o.Count, 10),
			)
			if _, err := bw.WriteString(strings.Join(fields, csvDelimiter) + csvLineEnd); err != nil {
				return written, err
			}
			written++
		}
	}

	return written, bw.Flush()
}

func leadingColumns(g model.Granularity, r *model.AggregatedReport) []string {
	switch g {
	case model.GranularityRegion:
		return []string{r.Context.RegionName}
	case model.GranularitySubRegion:
		return []string{r.Context.RegionName, r.Context.SubRegionName}
	case model.GranularitySchool:
		return []string{r.Context.RegionName, r.Context.SubRegionName, r.Context.SchoolName}
	default:
		return nil
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

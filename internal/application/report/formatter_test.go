package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *model.AggregatedReport {
	catalog := []model.QuestionCatalogRow{
		catalogRow(1, 1, "Q1", 1, "A"),
		catalogRow(1, 1, "Q1", 2, "B"),
	}
	counts := []model.AnswerCountRow{
		{QuestionID: 1, OptionID: id(1), Count: 2},
		{QuestionID: 1, OptionID: id(2), Count: 1},
	}
	return &model.AggregatedReport{
		Context:        model.ReportContext{SurveyTitle: "Clima escolar"},
		Participations: 3,
		Questions:      Aggregate(catalog, counts),
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, model.GranularitySurvey, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\ufeff"), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"Encuesta";"Pregunta";"Opción";"Cantidad"`, lines[0])
	assert.Equal(t, `"Clima escolar";"Q1";"A";2`, lines[1])
	assert.Equal(t, `"Clima escolar";"Q1";"B";1`, lines[2])
}

func TestWriteCSVEscapesQuotesAndDelimiters(t *testing.T) {
	r := sampleReport()
	r.Context.SurveyTitle = `Encuesta "2025"; piloto`

	var buf bytes.Buffer
	_, err := WriteCSV(&buf, model.GranularitySurvey, r)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Encuesta ""2025""; piloto";"Q1";"A";2`)
}

func TestWriteCSVLeadingColumnsByGranularity(t *testing.T) {
	r := sampleReport()
	r.Context.RegionName = "DRE Lima"
	r.Context.SubRegionName = "UGEL 03"
	r.Context.SchoolName = "IE 1234"

	tests := []struct {
		g      model.Granularity
		header string
		first  string
	}{
		{model.GranularityRegion, `"DRE";"Encuesta"`, `"DRE Lima";"Clima escolar"`},
		{model.GranularitySubRegion, `"DRE";"UGEL";"Encuesta"`, `"DRE Lima";"UGEL 03";"Clima escolar"`},
		{model.GranularitySchool, `"DRE";"UGEL";"Institución educativa";"Encuesta"`, `"DRE Lima";"UGEL 03";"IE 1234";"Clima escolar"`},
	}
	for _, tt := range tests {
		t.Run(tt.g.String(), func(t *testing.T) {
			var buf bytes.Buffer
			_, err := WriteCSV(&buf, tt.g, r)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimPrefix(buf.String(), "\ufeff"), "\r\n")
			assert.True(t, strings.HasPrefix(lines[0], tt.header), lines[0])
			assert.True(t, strings.HasPrefix(lines[1], tt.first), lines[1])
		})
	}
}

func TestCSVRowCount(t *testing.T) {
	assert.Equal(t, 2, CSVRowCount(sampleReport()))
	assert.Equal(t, 0, CSVRowCount(nil))
}

func TestDocumentRowsInsertNoAnswersRow(t *testing.T) {
	catalog := []model.QuestionCatalogRow{
		catalogRow(1, 1, "Q1", 1, "A"),
		catalogRow(2, 2, "Q2", 2, "B"),
	}
	counts := []model.AnswerCountRow{{QuestionID: 1, OptionID: id(1), Count: 4}}
	rows := DocumentRows(&model.AggregatedReport{Questions: Aggregate(catalog, counts)})

	require.Len(t, rows, 2)
	assert.Equal(t, model.DocumentRow{QuestionID: 1, QuestionText: "Q1", OptionText: "A", Count: 4}, rows[0])
	assert.Equal(t, model.DocumentRow{QuestionID: 2, QuestionText: "Q2", OptionText: NoAnswersLabel}, rows[1])
}

func TestPageRows(t *testing.T) {
	rows := make([]model.DocumentRow, 5)
	for i := range rows {
		rows[i].Count = int64(i)
	}

	assert.Len(t, PageRows(rows, 1, 2), 2)
	assert.Equal(t, int64(4), PageRows(rows, 3, 2)[0].Count)
	assert.Empty(t, PageRows(rows, 4, 2))
	assert.Empty(t, PageRows(rows, 1, 0))
}

func TestChartSeriesKeepsEmptyQuestions(t *testing.T) {
	r := &model.AggregatedReport{Questions: Aggregate([]model.QuestionCatalogRow{catalogRow(1, 1, "Q", 1, "a")}, nil)}
	series := ChartSeries(r)
	require.Len(t, series, 1)
	assert.NotNil(t, series[0].Data)
	assert.Empty(t, series[0].Data)
}

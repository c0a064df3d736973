package report

import (
	"testing"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(v int64) *int64 { return &v }

func str(v string) *string { return &v }

func catalogRow(qid int64, order int, text string, oid int64, otext string) model.QuestionCatalogRow {
	row := model.QuestionCatalogRow{QuestionID: qid, OrderIndex: order, Text: text}
	if oid > 0 {
		row.OptionID = id(oid)
		row.OptionText = str(otext)
	}
	return row
}

func TestAggregateSafeAtSchoolScenario(t *testing.T) {
	catalog := []model.QuestionCatalogRow{
		catalogRow(1, 1, "Do you feel safe at school?", 1, "Yes"),
		catalogRow(1, 1, "Do you feel safe at school?", 2, "No"),
	}
	// três participações completas: Yes, Yes, No
	counts := []model.AnswerCountRow{
		{QuestionID: 1, OptionID: id(2), Count: 1},
		{QuestionID: 1, OptionID: id(1), Count: 2},
	}

	report := &model.AggregatedReport{Questions: Aggregate(catalog, counts)}
	series := ChartSeries(report)

	require.Len(t, series, 1)
	assert.Equal(t, "Do you feel safe at school?", series[0].Question)
	assert.Equal(t, []model.ChartPoint{{Name: "Yes", Value: 2}, {Name: "No", Value: 1}}, series[0].Data)
}

func TestAggregateOrdersQuestionsByOrderIndex(t *testing.T) {
	catalog := []model.QuestionCatalogRow{
		catalogRow(10, 3, "C", 100, "c1"),
		catalogRow(11, 1, "A", 101, "a1"),
		catalogRow(12, 2, "B", 102, "b1"),
		catalogRow(13, 2, "B2", 0, ""),
	}
	counts := []model.AnswerCountRow{
		{QuestionID: 10, OptionID: id(100), Count: 500},
		{QuestionID: 11, OptionID: id(101), Count: 1},
	}

	for i := 0; i < 3; i++ {
		got := Aggregate(catalog, counts)
		texts := make([]string, len(got))
		for j, q := range got {
			texts[j] = q.Text
		}
		assert.Equal(t, []string{"A", "B", "B2", "C"}, texts)
	}
}

func TestAggregateOrdersOptionsByID(t *testing.T) {
	catalog := []model.QuestionCatalogRow{
		catalogRow(1, 1, "Q", 7, "siete"),
		catalogRow(1, 1, "Q", 3, "tres"),
		catalogRow(1, 1, "Q", 5, "cinco"),
	}
	counts := []model.AnswerCountRow{
		{QuestionID: 1, OptionID: id(7), Count: 9},
		{QuestionID: 1, OptionID: id(3), Count: 1},
		{QuestionID: 1, OptionID: id(5), Count: 4},
	}

	got := Aggregate(catalog, counts)
	require.Len(t, got, 1)
	labels := []string{}
	for _, o := range got[0].Options {
		labels = append(labels, o.Label)
	}
	assert.Equal(t, []string{"tres", "cinco", "siete"}, labels)
}

func TestAggregateKeepsNullOptionAnswers(t *testing.T) {
	catalog := []model.QuestionCatalogRow{catalogRow(1, 1, "Q", 1, "Sí")}
	counts := []model.AnswerCountRow{
		{QuestionID: 1, OptionID: id(1), Count: 3},
		{QuestionID: 1, OptionID: nil, Count: 2},
		{QuestionID: 1, OptionID: nil, Count: 1},
	}

	got := Aggregate(catalog, counts)
	require.Len(t, got[0].Options, 2)
	last := got[0].Options[1]
	assert.Equal(t, NoOptionLabel, last.Label)
	assert.Nil(t, last.OptionID)
	assert.Equal(t, int64(3), last.Count)
	assert.Equal(t, int64(6), got[0].Total())
}

func TestAggregatePreservesTotals(t *testing.T) {
	catalog := []model.QuestionCatalogRow{
		catalogRow(1, 1, "Q1", 1, "a"),
		catalogRow(1, 1, "Q1", 2, "b"),
		catalogRow(2, 2, "Q2", 3, "c"),
	}
	counts := []model.AnswerCountRow{
		{QuestionID: 1, OptionID: id(1), Count: 4},
		{QuestionID: 1, OptionID: id(1), Count: 1},
		{QuestionID: 1, OptionID: id(2), Count: 2},
		{QuestionID: 2, OptionID: nil, Count: 5},
		{QuestionID: 99, OptionID: id(50), Count: 1},
	}

	var want int64
	for _, c := range counts {
		want += c.Count
	}

	got := Aggregate(catalog, counts)
	var total int64
	for _, q := range got {
		total += q.Total()
	}
	assert.Equal(t, want, total)
	assert.Equal(t, "Pregunta #99", got[len(got)-1].Text)
	assert.Equal(t, "Opción #50", got[len(got)-1].Options[0].Label)
}

func TestAggregateQuestionWithoutAnswersHasEmptyOptions(t *testing.T) {
	got := Aggregate([]model.QuestionCatalogRow{catalogRow(1, 1, "Q", 1, "a")}, nil)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Options)
	assert.Empty(t, got[0].Options)
	assert.True(t, (&model.AggregatedReport{Questions: got}).IsEmpty())
}

package main

import (
	"fmt"
	"io"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/report"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func summaryCommand() *cobra.Command {
	var raw report.RawFilter

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Imprime o relatório agregado de uma encuesta",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer cleanup()

			uc := usecases.NewReportUseCase(
				repositories.NewReportRepository(e.db),
				repositories.NewHierarchyRepository(e.db),
				repositories.NewSurveyRepository(e.db),
				e.cache, nil, e.log,
			)
			result, err := uc.Build(cmd.Context(), raw, model.GranularitySurvey)
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&raw.Survey, "survey", "", "ID de la encuesta")
	cmd.Flags().StringVar(&raw.Region, "region", "", "ID de la DRE")
	cmd.Flags().StringVar(&raw.SubRegion, "subregion", "", "ID de la UGEL")
	cmd.Flags().StringVar(&raw.School, "school", "", "ID de la institución educativa")
	cmd.Flags().StringVar(&raw.EducationLevel, "level", "", "nivel educativo")
	cmd.Flags().StringVar(&raw.Grade, "grade", "", "grado")
	_ = cmd.MarkFlagRequired("survey")
	return cmd
}

// renderSummary escreve uma tabela por relatório com as linhas do documento PDF
func renderSummary(w io.Writer, r *model.AggregatedReport) {
	title := r.Context.SurveyTitle
	if title == "" {
		title = fmt.Sprintf("Encuesta %d", r.Filter.SurveyID)
	}
	fmt.Fprintf(w, "%s: %d participaciones\n", title, r.Participations)

	if r.IsEmpty() {
		fmt.Fprintln(w, "sin respuestas para los filtros indicados")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pregunta", "Opción", "Cantidad"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 60, AutoMerge: true},
		{Number: 3, Align: text.AlignRight},
	})
	for _, row := range report.DocumentRows(r) {
		t.AppendRow(table.Row{row.QuestionText, row.OptionText, row.Count})
	}
	t.Render()
}

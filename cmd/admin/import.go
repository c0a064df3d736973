package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/usecases"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/repositories"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func importCommand() *cobra.Command {
	var uploadedBy string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Importa uma nómina .xlsx ou .csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			e, cleanup, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer cleanup()

			uc := usecases.NewImportUseCase(repositories.NewRosterRepository(e.db), e.cache, nil, e.log, e.cfg.ImportMaxRows)
			summary, err := uc.Import(cmd.Context(), f, filepath.Base(args[0]), uploadedBy)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "lote %s: %d filas, %d importadas, %d omitidas\n",
				summary.BatchID, summary.TotalRows, summary.Imported, summary.Skipped)
			if len(summary.Errors) > 0 {
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Fila", "Error"})
				for _, rowErr := range summary.Errors {
					t.AppendRow(table.Row{rowErr.Row, rowErr.Error})
				}
				t.Render()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&uploadedBy, "by", "cli", "responsable registrado en la auditoría")
	return cmd
}

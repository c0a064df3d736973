package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/utils"
	"github.com/xuri/excelize/v2"
)

const headerRow = 1

// RosterRow é uma linha da planilha de nómina já mapeada pelas colunas
type RosterRow struct {
	Row            int    `json:"row"`
	SchoolCode     string `json:"codigo_modular" validate:"required,max=20"`
	StudentCode    string `json:"codigo_estudiante" validate:"required,max=30"`
	FirstNames     string `json:"nombres" validate:"max=200"`
	LastNames      string `json:"apellidos" validate:"max=200"`
	EducationLevel string `json:"nivel" validate:"required"`
	Grade          string `json:"grado" validate:"max=20"`
	Section        string `json:"seccion" validate:"max=20"`
}

// Result reúne as linhas válidas e as rejeitadas de um arquivo
type Result struct {
	TotalRows int
	Entries   []entities.RosterEntry
	Errors    []entities.ImportRowError
}

var ErrUnsupportedFormat = errors.New("formato de archivo no soportado; use .xlsx o .csv")

// columnAliases mapeia cabeçalhos normalizados para o campo da linha
var columnAliases = map[string]string{
	"codigo_modular":    "codigo_modular",
	"cod_mod":           "codigo_modular",
	"codigo_ie":         "codigo_modular",
	"codigo_estudiante": "codigo_estudiante",
	"cod_estudiante":    "codigo_estudiante",
	"dni":               "codigo_estudiante",
	"nombres":           "nombres",
	"apellidos":         "apellidos",
	"nivel":             "nivel",
	"nivel_educativo":   "nivel",
	"grado":             "grado",
	"seccion":           "seccion",
}

var requiredColumns = []string{"codigo_modular", "codigo_estudiante", "nivel"}

// Parse lê uma nómina .xlsx (primeira aba) ou .csv (; ou ,). Linhas inválidas são
// reportadas com o número da linha no arquivo; erros de formato abortam a leitura.
func Parse(r io.Reader, filename string, maxRows int) (*Result, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, errs.NewValidation("file", ErrUnsupportedFormat.Error())
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < headerRow {
		return nil, errs.NewValidation("file", "el archivo está vacío")
	}

	columns, err := mapColumns(rows[headerRow-1])
	if err != nil {
		return nil, err
	}

	data := rows[headerRow:]
	if maxRows > 0 && len(data) > maxRows {
		return nil, errs.NewValidation("file", fmt.Sprintf("el archivo supera el máximo de %d filas", maxRows))
	}

	result := &Result{}
	for i, cells := range data {
		if isBlank(cells) {
			continue
		}
		result.TotalRows++

		row := buildRow(columns, cells, i+headerRow+1)
		if msg := ValidateRow(row); msg != "" {
			result.Errors = append(result.Errors, entities.ImportRowError{Row: row.Row, Error: msg})
			continue
		}
		result.Entries = append(result.Entries, row.Entry())
	}
	return result, nil
}

// ValidateRow devolve a mensagem de erro da linha ou "" se for válida
func ValidateRow(row RosterRow) string {
	err := utils.ValidateStruct(row)
	if err == nil {
		return ""
	}
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}

	fields := make([]string, 0, len(ve.Fields))
	for f := range ve.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+ve.Fields[f])
	}
	return strings.Join(parts, "; ")
}

// Entry converte a linha na entidade gravada pelo repositório
func (r RosterRow) Entry() entities.RosterEntry {
	return entities.RosterEntry{
		SchoolCode:     r.SchoolCode,
		StudentCode:    r.StudentCode,
		FirstNames:     r.FirstNames,
		LastNames:      r.LastNames,
		EducationLevel: r.EducationLevel,
		Grade:          r.Grade,
		Section:        r.Section,
		SourceRow:      r.Row,
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.NewValidation("file", "no se pudo leer el archivo xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.NewValidation("file", "el archivo no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler csv: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errs.NewValidation("file", "csv mal formado: "+err.Error())
	}
	return rows, nil
}

// detectDelimiter escolhe ; quando a primeira linha tem mais ; do que vírgulas
func detectDelimiter(content []byte) rune {
	first := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		first = content[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, h := range header {
		if field, ok := columnAliases[utils.NormalizeHeader(h)]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errs.NewValidation("file", "faltan columnas: "+strings.Join(missing, ", "))
	}
	return columns, nil
}

func buildRow(columns map[string]int, cells []string, rowNumber int) RosterRow {
	get := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}
	return RosterRow{
		Row:            rowNumber,
		SchoolCode:     get("codigo_modular"),
		StudentCode:    get("codigo_estudiante"),
		FirstNames:     get("nombres"),
		LastNames:      get("apellidos"),
		EducationLevel: get("nivel"),
		Grade:          get("grado"),
		Section:        get("seccion"),
	}
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

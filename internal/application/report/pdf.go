package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/go-pdf/fpdf"
)

const (
	pdfQuestionWidth = 95.0
	pdfOptionWidth   = 65.0
	pdfCountWidth    = 30.0
	pdfLineHeight    = 6.0
	pdfWrapHeight    = 4.5
)

// pdfCompress é desligado nos testes para ler o texto das páginas
var pdfCompress = true

// RenderPDF gera o documento tabular a partir das linhas já achatadas
func RenderPDF(w io.Writer, r *model.AggregatedReport, rows []model.DocumentRow, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(r.Context.SurveyTitle, true)
	pdf.SetCreator("encuestas-dashboard-api", true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetCompression(pdfCompress)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 236, 245)
		pdf.CellFormat(pdfQuestionWidth, pdfLineHeight, tr("Pregunta"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfOptionWidth, pdfLineHeight, tr("Opción"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfCountWidth, pdfLineHeight, tr("Cantidad"), "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, tr(r.Context.SurveyTitle), "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range contextLines(r, generatedAt) {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	header()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range rows {
		question := wrapCell(pdf, tr(row.QuestionText), pdfQuestionWidth)
		option := wrapCell(pdf, tr(row.OptionText), pdfOptionWidth)
		height := rowHeight(max(len(question), len(option)))

		if pdf.GetY()+height > pageHeight-bottom-3 {
			pdf.AddPage()
			header()
		}
		x, y := pdf.GetXY()
		drawCell(pdf, x, y, pdfQuestionWidth, height, question, "L")
		drawCell(pdf, x+pdfQuestionWidth, y, pdfOptionWidth, height, option, "L")
		drawCell(pdf, x+pdfQuestionWidth+pdfOptionWidth, y, pdfCountWidth, height,
			[]string{strconv.FormatInt(row.Count, 10)}, "R")
		pdf.SetXY(x, y+height)
	}

	if pdf.Err() {
		return fmt.Errorf("erro ao montar pdf: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func contextLines(r *model.AggregatedReport, generatedAt time.Time) []string {
	lines := []string{}
	if r.Context.RegionName != "" {
		lines = append(lines, "DRE: "+r.Context.RegionName)
	}
	if r.Context.SubRegionName != "" {
		lines = append(lines, "UGEL: "+r.Context.SubRegionName)
	}
	if r.Context.SchoolName != "" {
		lines = append(lines, "Institución educativa: "+r.Context.SchoolName)
	}
	lines = append(lines,
		fmt.Sprintf("Participaciones completas: %d", r.Participations),
		"Generado: "+generatedAt.Format("02/01/2006 15:04"),
	)
	return lines
}

// wrapCell quebra o texto já traduzido em linhas que cabem na coluna, sem cortar conteúdo
func wrapCell(pdf *fpdf.Fpdf, s string, width float64) []string {
	lines := pdf.SplitLines([]byte(s), width)
	if len(lines) == 0 {
		return []string{""}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = string(line)
	}
	return out
}

// rowHeight mantém a altura de uma linha simples e cresce com a célula mais alta
func rowHeight(lines int) float64 {
	if lines <= 1 {
		return pdfLineHeight
	}
	return float64(lines)*pdfWrapHeight + (pdfLineHeight - pdfWrapHeight)
}

// drawCell desenha a borda com a altura da linha e escreve as linhas da célula
func drawCell(pdf *fpdf.Fpdf, x, y, width, height float64, lines []string, align string) {
	pdf.Rect(x, y, width, height, "D")
	lineHeight := pdfLineHeight
	if len(lines) > 1 {
		lineHeight = pdfWrapHeight
	}
	top := y + (height-float64(len(lines))*lineHeight)/2
	for i, line := range lines {
		pdf.SetXY(x, top+float64(i)*lineHeight)
		pdf.CellFormat(width, lineHeight, line, "", 0, align, false, 0, "")
	}
}

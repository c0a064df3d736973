package model

// Granularity define o nível de detalhe das exportações
type Granularity int

const (
	GranularitySurvey Granularity = iota
	GranularityRegion
	GranularitySubRegion
	GranularitySchool
)

func (g Granularity) String() string {
	switch g {
	case GranularityRegion:
		return "region"
	case GranularitySubRegion:
		return "subregion"
	case GranularitySchool:
		return "school"
	default:
		return "survey"
	}
}

// ReportFilter é o filtro hierárquico já validado; ponteiros nulos não restringem
type ReportFilter struct {
	SurveyID       int64
	RegionID       *int64
	SubRegionID    *int64
	SchoolID       *int64
	EducationLevel *string
	Grade          *string
}

// QuestionCatalogRow é uma linha pergunta × opção da encuesta (opção nula quando não há opções)
type QuestionCatalogRow struct {
	QuestionID int64   `gorm:"column:question_id"`
	OrderIndex int     `gorm:"column:order_index"`
	Prefix     string  `gorm:"column:prefix"`
	Text       string  `gorm:"column:question_text"`
	OptionID   *int64  `gorm:"column:option_id"`
	OptionText *string `gorm:"column:option_text"`
}

// AnswerCountRow é a contagem de respostas por (pergunta, opção)
type AnswerCountRow struct {
	QuestionID int64  `gorm:"column:question_id"`
	OptionID   *int64 `gorm:"column:option_id"`
	Count      int64  `gorm:"column:count"`
}

// OptionCount é uma célula do relatório agregado
type OptionCount struct {
	OptionID *int64 `json:"option_id"`
	Label    string `json:"label"`
	Count    int64  `json:"count"`
}

// QuestionResult agrupa as contagens de uma pergunta
type QuestionResult struct {
	QuestionID int64         `json:"question_id"`
	OrderIndex int           `json:"order_index"`
	Prefix     string        `json:"prefix,omitempty"`
	Text       string        `json:"text"`
	Options    []OptionCount `json:"options"`
}

// Total soma as contagens de todas as opções da pergunta
func (q QuestionResult) Total() int64 {
	var total int64
	for _, o := range q.Options {
		total += o.Count
	}
	return total
}

// ReportContext carrega os nomes usados nas colunas das exportações
type ReportContext struct {
	SurveyTitle   string `json:"survey_title"`
	RegionName    string `json:"region_name,omitempty"`
	SubRegionName string `json:"subregion_name,omitempty"`
	SchoolName    string `json:"school_name,omitempty"`
}

// AggregatedReport é o resultado único a partir do qual todos os formatos são gerados
type AggregatedReport struct {
	Filter         ReportFilter     `json:"-"`
	Context        ReportContext    `json:"context"`
	Participations int              `json:"participations"`
	Questions      []QuestionResult `json:"questions"`
}

// IsEmpty indica que não há nenhuma resposta contada
func (r *AggregatedReport) IsEmpty() bool {
	if r == nil {
		return true
	}
	for _, q := range r.Questions {
		if q.Total() > 0 {
			return false
		}
	}
	return true
}

// DocumentRow é a linha tabular usada na exportação PDF
type DocumentRow struct {
	QuestionID   int64  `json:"question_id"`
	QuestionText string `json:"question_text"`
	OptionText   string `json:"option_text"`
	Count        int64  `json:"count"`
}

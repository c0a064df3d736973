package report

import (
	"strconv"
	"strings"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
)

// Campos do filtro hierárquico
const (
	FieldSurvey         = "survey"
	FieldRegion         = "region"
	FieldSubRegion      = "subregion"
	FieldSchool         = "school"
	FieldEducationLevel = "educationLevel"
	FieldGrade          = "grade"
)

var missingMessages = map[string]string{
	FieldSurvey:    "Seleccione una encuesta",
	FieldRegion:    "Seleccione una DRE",
	FieldSubRegion: "Seleccione una UGEL",
	FieldSchool:    "Seleccione una institución educativa",
}

// RawFilter são os parâmetros como chegaram na query string
type RawFilter struct {
	Survey         string
	Region         string
	SubRegion      string
	School         string
	EducationLevel string
	Grade          string
}

func (r RawFilter) value(field string) string {
	switch field {
	case FieldSurvey:
		return r.Survey
	case FieldRegion:
		return r.Region
	case FieldSubRegion:
		return r.SubRegion
	case FieldSchool:
		return r.School
	case FieldEducationLevel:
		return r.EducationLevel
	case FieldGrade:
		return r.Grade
	}
	return ""
}

// RequiredFields devolve os filtros obrigatórios de cada granularidade de exportação
func RequiredFields(g model.Granularity) []string {
	switch g {
	case model.GranularityRegion:
		return []string{FieldSurvey, FieldRegion}
	case model.GranularitySubRegion:
		return []string{FieldSurvey, FieldRegion, FieldSubRegion}
	case model.GranularitySchool:
		return []string{FieldSurvey, FieldSchool}
	default:
		return []string{FieldSurvey}
	}
}

// ResolveFilter valida o filtro. A encuesta é sempre obrigatória; os demais campos só restringem.
// Não há checagem de consistência entre escola, UGEL e DRE: combinações incoerentes resultam em
// relatório vazio.
func ResolveFilter(raw RawFilter, required ...string) (model.ReportFilter, error) {
	var f model.ReportFilter

	required = append([]string{FieldSurvey}, required...)
	for _, field := range required {
		if strings.TrimSpace(raw.value(field)) == "" {
			msg, ok := missingMessages[field]
			if !ok {
				msg = "Falta el filtro " + field
			}
			return f, errs.NewMissingFilter(field, msg)
		}
	}

	surveyID, err := parseID(FieldSurvey, raw.Survey)
	if err != nil {
		return f, errs.NewMissingFilter(FieldSurvey, missingMessages[FieldSurvey])
	}
	f.SurveyID = *surveyID

	if f.RegionID, err = parseID(FieldRegion, raw.Region); err != nil {
		return f, err
	}
	if f.SubRegionID, err = parseID(FieldSubRegion, raw.SubRegion); err != nil {
		return f, err
	}
	if f.SchoolID, err = parseID(FieldSchool, raw.School); err != nil {
		return f, err
	}
	f.EducationLevel = optionalString(raw.EducationLevel)
	f.Grade = optionalString(raw.Grade)

	return f, nil
}

func parseID(field, value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil, errs.NewValidation(field, "identificador inválido")
	}
	return &id, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

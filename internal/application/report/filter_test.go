package report

import (
	"errors"
	"testing"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/application/domain/model"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFilterRequiresSurvey(t *testing.T) {
	_, err := ResolveFilter(RawFilter{Region: "3"})

	var mf *errs.MissingFilterError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, FieldSurvey, mf.Field)
	assert.Equal(t, "Seleccione una encuesta", mf.Message)
}

func TestResolveFilterNonNumericSurveyIsMissing(t *testing.T) {
	_, err := ResolveFilter(RawFilter{Survey: "abc"})

	var mf *errs.MissingFilterError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, "Seleccione una encuesta", mf.Message)
}

func TestResolveFilterOptionalFieldsNarrow(t *testing.T) {
	f, err := ResolveFilter(RawFilter{Survey: "1", School: "44", Grade: " 3ro "})
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.SurveyID)
	assert.Nil(t, f.RegionID)
	assert.Nil(t, f.SubRegionID)
	require.NotNil(t, f.SchoolID)
	assert.Equal(t, int64(44), *f.SchoolID)
	require.NotNil(t, f.Grade)
	assert.Equal(t, "3ro", *f.Grade)
	assert.Nil(t, f.EducationLevel)
}

func TestResolveFilterDoesNotCheckHierarchy(t *testing.T) {
	// escola de outra UGEL passa; o resultado apenas fica vazio
	f, err := ResolveFilter(RawFilter{Survey: "1", Region: "1", SubRegion: "99", School: "7"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), *f.SubRegionID)
}

func TestResolveFilterRejectsBadIDs(t *testing.T) {
	for _, raw := range []RawFilter{
		{Survey: "1", Region: "-2"},
		{Survey: "1", School: "x"},
	} {
		_, err := ResolveFilter(raw)
		var ve *errs.ValidationError
		assert.True(t, errors.As(err, &ve), "%+v", raw)
	}
}

func TestResolveFilterRequiredByGranularity(t *testing.T) {
	tests := []struct {
		name    string
		g       model.Granularity
		raw     RawFilter
		missing string
	}{
		{"survey ok", model.GranularitySurvey, RawFilter{Survey: "1"}, ""},
		{"region missing", model.GranularityRegion, RawFilter{Survey: "1"}, FieldRegion},
		{"subregion missing", model.GranularitySubRegion, RawFilter{Survey: "1", Region: "2"}, FieldSubRegion},
		{"subregion without region", model.GranularitySubRegion, RawFilter{Survey: "1", SubRegion: "2"}, FieldRegion},
		{"school missing", model.GranularitySchool, RawFilter{Survey: "1", Region: "2"}, FieldSchool},
		{"school ok", model.GranularitySchool, RawFilter{Survey: "1", School: "5"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveFilter(tt.raw, RequiredFields(tt.g)...)
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}
			var mf *errs.MissingFilterError
			require.True(t, errors.As(err, &mf))
			assert.Equal(t, tt.missing, mf.Field)
		})
	}
}

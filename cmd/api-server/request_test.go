package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/validator"
)

func TestDefaultIntQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want int
	}{
		{"/doctor/assessments", 10},
		{"/doctor/assessments?per_page=25", 25},
		{"/doctor/assessments?per_page=abc", 10},
		{"/doctor/assessments?per_page=", 10},
		{"/doctor/assessments?per_page=-3", -3},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.url, nil)
		assert.Equalf(t, tt.want, defaultIntQueryParams(req, "per_page", 10), "url %s", tt.url)
	}
}

func TestOptionalStringQueryParams(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/doctor/assessments?username=doe&risk=", nil)

	username := optionalStringQueryParams(req, "username")
	require.NotNil(t, username)
	assert.Equal(t, "doe", *username)

	assert.Nil(t, optionalStringQueryParams(req, "risk"))
	assert.Nil(t, optionalStringQueryParams(req, "missing"))
}

func TestOptionalDateQueryParams(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x?start_date=2025-03-04&bad=04/03/2025", nil)

	date, present, err := optionalDateQueryParams(req, "start_date")
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), *date)

	_, present, err = optionalDateQueryParams(req, "bad")
	assert.True(t, present)
	assert.Error(t, err)

	date, present, err = optionalDateQueryParams(req, "missing")
	assert.NoError(t, err)
	assert.False(t, present)
	assert.Nil(t, date)
}

func TestAssessmentFilterFromRequest(t *testing.T) {
	t.Parallel()

	app := testApplication()

	req := httptest.NewRequest(http.MethodGet,
		"/doctor/assessments?risk=HIGH&username=doe&start_date=2025-01-01&end_date=2025-01-31", nil)

	var v validator.Validator
	filter := app.assessmentFilterFromRequest(req, &v)
	require.False(t, v.HasErrors())

	require.NotNil(t, filter.Risk)
	assert.Equal(t, model.RiskHigh, *filter.Risk)

	require.NotNil(t, filter.Username)
	assert.Equal(t, "doe", *filter.Username)

	require.NotNil(t, filter.From)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), *filter.From)

	// The end date covers the whole of January 31st.
	require.NotNil(t, filter.To)
	assert.True(t, filter.To.After(time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)))
	assert.True(t, filter.To.Before(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAssessmentFilterFromRequest_InvalidValues(t *testing.T) {
	t.Parallel()

	app := testApplication()

	req := httptest.NewRequest(http.MethodGet,
		"/doctor/assessments?risk=EXTREME&start_date=January&end_date=2025-13-45", nil)

	var v validator.Validator
	filter := app.assessmentFilterFromRequest(req, &v)

	require.True(t, v.HasErrors())
	assert.Contains(t, v.FieldErrors, "risk")
	assert.Contains(t, v.FieldErrors, "start_date")
	assert.Contains(t, v.FieldErrors, "end_date")

	assert.Nil(t, filter.Risk)
	assert.Nil(t, filter.From)
	assert.Nil(t, filter.To)
}

func TestRoundPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		probability float64
		want        float64
	}{
		{0, 0},
		{1, 100},
		{0.42, 42},
		{0.123456, 12.35},
		{0.99999, 100},
		{0.005, 0.5},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, roundPercent(tt.probability), "roundPercent(%v)", tt.probability)
	}
}

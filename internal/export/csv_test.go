package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/cadscreen/internal/model"
)

func sampleRow() model.AssessmentWithUser {
	return model.AssessmentWithUser{
		Assessment: model.Assessment{
			ID:        17,
			CreatedAt: time.Date(2025, time.March, 4, 10, 30, 0, 0, time.UTC),
			UserID:    3,
			FeatureVector: model.FeatureVector{
				Age:                     60,
				Anaemia:                 0,
				CreatininePhosphokinase: 250,
				Diabetes:                1,
				EjectionFraction:        38,
				HighBloodPressure:       0,
				Platelets:               262000,
				SerumCreatinine:         1.1,
				SerumSodium:             137,
				Sex:                     1,
				Smoking:                 0,
				Time:                    115,
			},
			Probability:  0.42,
			RiskCategory: model.RiskMedium,
		},
		Username: "jdoe",
	}
}

func TestWriteAssessmentsCSV_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteAssessmentsCSV(&buf, nil))

	wantHeader := "id,user_id,username,created_at,probability,risk_category," +
		strings.Join(model.FeatureColumns, ",")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, wantHeader, lines[0])
}

func TestWriteAssessmentsCSV_Row(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteAssessmentsCSV(&buf, []model.AssessmentWithUser{sampleRow()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	require.Len(t, row, len(Columns))

	assert.Equal(t, "17", row[0])
	assert.Equal(t, "3", row[1])
	assert.Equal(t, "jdoe", row[2])
	assert.Equal(t, "2025-03-04T10:30:00Z", row[3])
	assert.Equal(t, "0.42", row[4])
	assert.Equal(t, "MEDIUM", row[5])
	assert.Equal(t, "60", row[6])
	assert.Equal(t, "262000", row[12])
	assert.Equal(t, "1.1", row[13])
	assert.Equal(t, "115", row[17])
}

func TestWriteAssessmentsCSV_QuotesSpecialCharacters(t *testing.T) {
	t.Parallel()

	row := sampleRow()
	row.Username = `smith, "the doc"`

	var buf bytes.Buffer
	require.NoError(t, WriteAssessmentsCSV(&buf, []model.AssessmentWithUser{row}))

	// The raw output must escape the embedded quotes and comma.
	assert.Contains(t, buf.String(), `"smith, ""the doc"""`)

	// And it must parse back to the original value.
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, row.Username, records[1][2])
}

func TestWriteAssessmentsCSV_TimestampsInUTC(t *testing.T) {
	t.Parallel()

	row := sampleRow()
	row.CreatedAt = time.Date(2025, time.March, 4, 10, 30, 0, 0, time.FixedZone("CET", 3600))

	var buf bytes.Buffer
	require.NoError(t, WriteAssessmentsCSV(&buf, []model.AssessmentWithUser{row}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04T09:30:00Z", records[1][3])
}

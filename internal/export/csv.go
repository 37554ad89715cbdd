// Package export renders query result sets as delimited text. It never
// filters or reorders rows; the repository decides what goes in and in what
// order.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/avoronov/cadscreen/internal/model"
)

// Columns is the fixed header of an assessment export: record metadata first,
// then the feature values in dataset order.
var Columns = func() []string {
	cols := []string{"id", "user_id", "username", "created_at", "probability", "risk_category"}
	return append(cols, model.FeatureColumns...)
}()

// WriteAssessmentsCSV writes the fixed header followed by one line per row.
// Quoting and delimiter escaping follow RFC 4180 via encoding/csv.
func WriteAssessmentsCSV(w io.Writer, rows []model.AssessmentWithUser) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			strconv.FormatInt(row.UserID, 10),
			row.Username,
			row.CreatedAt.UTC().Format(time.RFC3339),
			formatFloat(row.Probability),
			string(row.RiskCategory),
		}
		for _, v := range row.FeatureVector.Ordered() {
			record = append(record, formatFloat(v))
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

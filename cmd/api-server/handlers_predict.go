package main

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/avoronov/cadscreen/internal/classifier"
	"github.com/avoronov/cadscreen/internal/database"
	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/request"
	"github.com/avoronov/cadscreen/internal/response"
)

type predictionResult struct {
	Probability    float64            `json:"probability"`
	RiskCategory   model.RiskCategory `json:"riskCategory"`
	Recommendation string             `json:"recommendation"`
}

// handlePredict scores a form submission from the patient UI.
func (app *application) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	features := make(map[string]float64, len(app.classifier.FeatureNames()))
	for _, name := range app.classifier.FeatureNames() {
		val := r.PostFormValue(name)
		if val == "" {
			app.badRequest(w, r, fmt.Errorf("%w: %s", classifier.ErrMissingFeature, name))
			return
		}

		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			app.badRequest(w, r, fmt.Errorf("invalid value for %s", name))
			return
		}
		features[name] = f
	}

	app.scoreAndRespond(w, r, features)
}

// handleAPIPredict scores a JSON submission.
func (app *application) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	var features map[string]float64
	if err := request.DecodeJSON(w, r, &features); err != nil {
		app.badRequest(w, r, err)
		return
	}

	app.scoreAndRespond(w, r, features)
}

func (app *application) scoreAndRespond(w http.ResponseWriter, r *http.Request, features map[string]float64) {
	ctx := r.Context()
	logger := app.requestLogger(r)

	probability, err := app.classifier.Score(features)
	if err != nil {
		if errors.Is(err, classifier.ErrMissingFeature) {
			app.badRequest(w, r, err)
			return
		}

		app.serverError(w, r, err)
		return
	}

	category := classifier.Categorize(probability)

	principal, _ := principalFrom(r)
	dao := database.NewAssessmentDAO(logger, app.db)

	// Recording is non-fatal: the caller still gets the computed result
	// even when the storage backend is down.
	_, err = dao.Insert(ctx, database.InsertAssessmentDTO{
		UserID:       principal.UserID,
		Features:     model.FeatureVectorFromMap(features),
		Probability:  probability,
		RiskCategory: category,
	})
	if err != nil {
		logger.Warn("failed to record assessment", "user", principal.UserID, "error", err)
	}

	result := predictionResult{
		Probability:    roundPercent(probability),
		RiskCategory:   category,
		Recommendation: classifier.Recommendation(category),
	}

	if err := response.JSON(w, http.StatusOK, result); err != nil {
		app.serverError(w, r, err)
	}
}

// handlePatientDashboard lists the authenticated patient's own history.
func (app *application) handlePatientDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, _ := principalFrom(r)
	dao := database.NewAssessmentDAO(app.requestLogger(r), app.db)

	assessments, err := dao.ListForPatient(ctx, principal.UserID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := response.JSONObject{
		"username":    principal.Username,
		"assessments": assessments,
	}

	if err := response.JSON(w, http.StatusOK, data); err != nil {
		app.serverError(w, r, err)
	}
}

// roundPercent converts a [0,1] probability to the 0-100 scale rounded to
// two decimals, which is what the prediction responses report.
func roundPercent(p float64) float64 {
	return math.Round(p*100*100) / 100
}

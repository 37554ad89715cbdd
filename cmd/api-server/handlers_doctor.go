package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avoronov/cadscreen/internal/database"
	"github.com/avoronov/cadscreen/internal/export"
	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/response"
	"github.com/avoronov/cadscreen/internal/validator"
)

type assessmentDTO struct {
	ID           model.ID            `json:"id"`
	UserID       model.ID            `json:"userId"`
	Username     string              `json:"username,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	Features     model.FeatureVector `json:"features"`
	Probability  float64             `json:"probability"`
	RiskCategory model.RiskCategory  `json:"riskCategory"`
}

func assessmentToDTO(a model.AssessmentWithUser) assessmentDTO {
	return assessmentDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		Username:     a.Username,
		CreatedAt:    a.CreatedAt,
		Features:     a.FeatureVector,
		Probability:  a.Probability,
		RiskCategory: a.RiskCategory,
	}
}

// assessmentFilterFromRequest parses the shared doctor-side filter params:
// risk, username, start_date, end_date.
func (app *application) assessmentFilterFromRequest(r *http.Request, v *validator.Validator) database.AssessmentFilter {
	var filter database.AssessmentFilter

	if risk := optionalStringQueryParams(r, "risk"); risk != nil {
		validateRiskCategory(v, *risk)
		if parsed, ok := model.ParseRiskCategory(*risk); ok {
			filter.Risk = &parsed
		}
	}

	filter.Username = optionalStringQueryParams(r, "username")

	from, present, err := optionalDateQueryParams(r, "start_date")
	if present && err != nil {
		v.AddFieldError("start_date", "must be a date in the form YYYY-MM-DD")
	}
	filter.From = from

	to, present, err := optionalDateQueryParams(r, "end_date")
	if present && err != nil {
		v.AddFieldError("end_date", "must be a date in the form YYYY-MM-DD")
	}
	if to != nil {
		// The end date is inclusive through the end of that day.
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}

	return filter
}

func (app *application) handleDoctorAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var v validator.Validator
	filter := app.assessmentFilterFromRequest(r, &v)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	page := defaultIntQueryParams(r, "page", database.DefaultPage)
	perPage := defaultIntQueryParams(r, "per_page", database.DefaultPageSize)
	if page < 1 {
		page = database.DefaultPage
	}
	if perPage < 1 {
		perPage = database.DefaultPageSize
	}

	dao := database.NewAssessmentDAO(app.requestLogger(r), app.db)

	assessments, total, err := dao.ListAll(ctx, filter, page, perPage)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	dtos := make([]assessmentDTO, 0, len(assessments))
	for _, a := range assessments {
		dtos = append(dtos, assessmentToDTO(a))
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	data := response.JSONObject{
		"assessments": dtos,
		"total":       total,
		"page":        page,
		"perPage":     perPage,
		"totalPages":  totalPages,
	}

	if err := response.JSON(w, http.StatusOK, data); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDoctorAssessmentsCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var v validator.Validator
	filter := app.assessmentFilterFromRequest(r, &v)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	dao := database.NewAssessmentDAO(app.requestLogger(r), app.db)

	assessments, err := dao.ListAllFiltered(ctx, filter)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="patient_assessments.csv"`)

	if err := export.WriteAssessmentsCSV(w, assessments); err != nil {
		app.reportServerError(r, err)
	}
}

func (app *application) handleDoctorPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dao := database.NewUserDAO(app.requestLogger(r), app.db)

	patients, err := dao.FindPatients(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := response.JSONObject{"patients": patients}
	if err := response.JSON(w, http.StatusOK, data); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDoctorPatientDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := app.requestLogger(r)

	patientID, err := patientIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("invalid patient id"))
		return
	}

	userDAO := database.NewUserDAO(logger, app.db)

	patient, err := userDAO.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.notFound(w, r)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if patient.Role != model.RolePatient {
		app.notFound(w, r)
		return
	}

	assessmentDAO := database.NewAssessmentDAO(logger, app.db)

	assessments, err := assessmentDAO.ListForPatient(ctx, patient.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := response.JSONObject{
		"patient":     patient,
		"assessments": assessments,
	}

	if err := response.JSON(w, http.StatusOK, data); err != nil {
		app.serverError(w, r, err)
	}
}

package main

import (
	"net/http"

	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/response"
)

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"status": "OK"}); err != nil {
		app.serverError(w, r, err)
	}
}

// handleIndex routes the caller to their role's dashboard, or to login.
func (app *application) handleIndex(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	switch principal.Role {
	case model.RoleDoctor:
		http.Redirect(w, r, "/doctor/assessments", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/patient/dashboard", http.StatusSeeOther)
	}
}

// handleFeatures is public: it describes the input vector the classifier
// expects, in the exact order the model was trained with.
func (app *application) handleFeatures(w http.ResponseWriter, r *http.Request) {
	data := response.JSONObject{
		"features":            app.classifier.FeatureNames(),
		"featureDescriptions": app.classifier.Describe(),
	}

	if err := response.JSON(w, http.StatusOK, data); err != nil {
		app.serverError(w, r, err)
	}
}

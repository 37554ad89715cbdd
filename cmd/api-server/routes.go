package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avoronov/cadscreen/internal/model"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS)
	mux.Use(app.authenticate)

	mux.Get("/status", app.handleStatus)
	mux.Get("/", app.handleIndex)

	mux.Get("/login", app.handleLoginPage)
	mux.Post("/login", app.handleLogin)
	mux.Post("/register", app.handleRegister)
	mux.Get("/logout", app.handleLogout)

	mux.Get("/api/features", app.handleFeatures)

	mux.Group(func(mux chi.Router) {
		mux.Use(app.requireRole(model.RolePatient))

		mux.Get("/patient/dashboard", app.handlePatientDashboard)
		mux.Post("/predict", app.handlePredict)
		mux.Post("/api/predict", app.handleAPIPredict)
	})

	mux.Group(func(mux chi.Router) {
		mux.Use(app.requireRole(model.RoleDoctor))

		mux.Get("/doctor/assessments", app.handleDoctorAssessments)
		mux.Get("/doctor/assessments.csv", app.handleDoctorAssessmentsCSV)
		mux.Get("/doctor/patients", app.handleDoctorPatients)
		mux.Get("/doctor/patients/{patientId}", app.handleDoctorPatientDetails)
	})

	mux.Group(func(mux chi.Router) {
		mux.Use(app.requireAuth)

		mux.Get("/profile", app.handleProfile)
		mux.Post("/profile/update", app.handleProfileUpdate)
	})

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}

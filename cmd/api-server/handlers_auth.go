package main

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avoronov/cadscreen/internal/database"
	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/response"
	"github.com/avoronov/cadscreen/internal/session"
	"github.com/avoronov/cadscreen/internal/validator"
)

// _dummyPasswordHash is compared against when the username does not exist,
// so unknown-user and wrong-password take the same time and return the same
// signal.
var _dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func (app *application) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := principalFrom(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := response.JSONObject{"message": "log in by POSTing username and password to /login"}
	if err := response.JSON(w, http.StatusOK, data); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var (
		username        = strings.TrimSpace(r.PostFormValue("username"))
		email           = strings.TrimSpace(r.PostFormValue("email"))
		password        = r.PostFormValue("password")
		confirmPassword = r.PostFormValue("confirm_password")
		role            = r.PostFormValue("role")
	)

	if role == "" {
		role = string(model.RolePatient)
	}

	var v validator.Validator
	validateUsername(&v, username)
	validateEmail(&v, email)
	validatePassword(&v, password, confirmPassword)
	validateRole(&v, role)

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	parsedRole, _ := model.ParseRole(role)
	dao := database.NewUserDAO(app.requestLogger(r), app.db)

	_, err = dao.Insert(ctx, database.InsertUserDTO{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         parsedRole,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailTaken):
			v.AddFieldError("email", "already registered")
			app.failedValidation(w, r, v)
		case errors.Is(err, model.ErrUsernameTaken):
			v.AddFieldError("username", "already exists")
			app.failedValidation(w, r, v)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var (
		username = strings.TrimSpace(r.PostFormValue("username"))
		password = r.PostFormValue("password")
	)

	if username == "" || password == "" {
		app.invalidCredentials(w, r)
		return
	}

	dao := database.NewUserDAO(app.requestLogger(r), app.db)

	user, err := dao.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			bcrypt.CompareHashAndPassword(_dummyPasswordHash, []byte(password))
			app.invalidCredentials(w, r)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		app.invalidCredentials(w, r)
		return
	}

	token, expiry, err := app.sessions.Issue(session.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	session.WriteCookie(w, token, expiry)

	switch user.Role {
	case model.RoleDoctor:
		http.Redirect(w, r, "/doctor/assessments", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/patient/dashboard", http.StatusSeeOther)
	}
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.DeleteCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

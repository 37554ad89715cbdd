package main

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avoronov/cadscreen/internal/database"
	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/request"
	"github.com/avoronov/cadscreen/internal/response"
	"github.com/avoronov/cadscreen/internal/session"
	"github.com/avoronov/cadscreen/internal/validator"
)

func (app *application) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, _ := principalFrom(r)
	dao := database.NewUserDAO(app.requestLogger(r), app.db)

	user, err := dao.Get(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// The account behind the session is gone; drop the session.
			session.DeleteCookie(w)
			app.authenticationRequired(w, r)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"user": user}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestUpdateProfile struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	ConfirmPassword *string `json:"confirm_password"`
}

// handleProfileUpdate applies a partial update: only supplied fields change,
// each re-validated against the registration constraints.
func (app *application) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestUpdateProfile
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	var dto database.UpdateUserDTO

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		validateUsername(&v, username)
		dto.Username = &username
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		validateEmail(&v, email)
		dto.Email = &email
	}

	if input.Password != nil {
		confirm := ""
		if input.ConfirmPassword != nil {
			confirm = *input.ConfirmPassword
		}
		validatePassword(&v, *input.Password, confirm)
	}

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		hashStr := string(hash)
		dto.PasswordHash = &hashStr
	}

	if dto.Username == nil && dto.Email == nil && dto.PasswordHash == nil {
		if err := response.JSON(w, http.StatusOK, response.JSONObject{"message": "no changes"}); err != nil {
			app.serverError(w, r, err)
		}
		return
	}

	principal, _ := principalFrom(r)
	dao := database.NewUserDAO(app.requestLogger(r), app.db)

	err := dao.Update(ctx, principal.UserID, dto)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailTaken):
			v.AddFieldError("email", "already taken")
			app.failedValidation(w, r, v)
		case errors.Is(err, model.ErrUsernameTaken):
			v.AddFieldError("username", "already taken")
			app.failedValidation(w, r, v)
		case errors.Is(err, model.ErrNotFound):
			session.DeleteCookie(w)
			app.authenticationRequired(w, r)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	// A changed username invalidates the claims baked into the session
	// token, so reissue it.
	if dto.Username != nil {
		token, expiry, err := app.sessions.Issue(session.Principal{
			UserID:   principal.UserID,
			Username: *dto.Username,
			Role:     principal.Role,
		})
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		session.WriteCookie(w, token, expiry)
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"message": "profile updated"}); err != nil {
		app.serverError(w, r, err)
	}
}
